package router

import (
	"dermAssist/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/recommendations", handler.Recommend, authRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.GET("/products", handler.GetAllProducts)
	api.GET("/products/:id", handler.GetProductByID)
	api.POST("/products", handler.CreateProduct, authRequired, adminOnly)
	api.PUT("/products/:id", handler.UpdateProduct, authRequired, adminOnly)
	api.DELETE("/products/:id", handler.DeactivateProduct, authRequired, adminOnly)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/profile", handler.GetProfile, authRequired)
	api.PUT("/profile", handler.SaveProfile, authRequired)
}

func SetupAnalysisRoutes(api *echo.Group, handler *rest.AnalysisHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/analyses", handler.CreateAnalysis, authRequired)
	api.GET("/analyses", handler.ListAnalyses, authRequired)
	api.GET("/analyses/latest", handler.GetLatestAnalysis, authRequired)
	api.GET("/analyses/:id", handler.GetAnalysis, authRequired)
}
