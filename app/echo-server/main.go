package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dermAssist/app/echo-server/router"
	analysisService "dermAssist/business/analysis"
	productService "dermAssist/business/product"
	profileService "dermAssist/business/profile"
	"dermAssist/business/recommend"
	"dermAssist/internal/middleware"
	"dermAssist/internal/repository/openai"
	psqlRepo "dermAssist/internal/repository/postgres"
	redisRepo "dermAssist/internal/repository/redis"
	"dermAssist/internal/rest"
	"dermAssist/pkg/config"
	"dermAssist/pkg/database"
	redisdb "dermAssist/pkg/database/redis"
	"dermAssist/pkg/logger"
	"dermAssist/pkg/metrics"
	"dermAssist/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Derm Assistant API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init LLM client
	llmClient := openai.NewClient(cfg.OpenAI)

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	onboardingRepo := psqlRepo.NewOnboardingRepository(db)
	analysisRepo := psqlRepo.NewAnalysisRepository(db)
	recCache := redisRepo.NewRecommendationCache(redisClient)

	// Init service
	productSvc := productService.NewProductService(productRepo)
	profileSvc := profileService.NewProfileService(onboardingRepo)
	analysisSvc := analysisService.NewAnalysisService(analysisRepo, llmClient)
	recommendSvc := recommend.NewRecommendService(productRepo, analysisRepo, onboardingRepo, llmClient, recCache)

	// Init handler
	productHandler := rest.NewProductHandler(productSvc)
	profileHandler := rest.NewProfileHandler(profileSvc)
	analysisHandler := rest.NewAnalysisHandler(analysisSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupAnalysisRoutes(api, analysisHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
