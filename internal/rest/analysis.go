package rest

import (
	"context"
	"net/http"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AnalysisService interface {
	CreateAnalysis(ctx context.Context, userID uint, imageURLs []string) (*domain.SkinAnalysis, error)
	GetAnalysis(ctx context.Context, id string, userID uint) (*domain.SkinAnalysis, error)
	GetLatestAnalysis(ctx context.Context, userID uint) (*domain.SkinAnalysis, error)
	ListAnalyses(ctx context.Context, userID uint) ([]domain.SkinAnalysis, error)
}

type AnalysisHandler struct {
	analysisService AnalysisService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewAnalysisHandler(analysisService AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		validator:       validator.New(),
		// vision call may retry with backoff
		timeout: 60 * time.Second,
	}
}

type CreateAnalysisRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,max=4,dive,url"`
}

func (h *AnalysisHandler) CreateAnalysis(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	var req CreateAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_FAILED", err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analysis, err := h.analysisService.CreateAnalysis(ctx, uid, req.ImageURLs)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, response.Success(analysis))
}

func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", "analysis id is required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	analysis, err := h.analysisService.GetAnalysis(ctx, id, uid)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(analysis))
}

func (h *AnalysisHandler) GetLatestAnalysis(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	analysis, err := h.analysisService.GetLatestAnalysis(ctx, uid)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(analysis))
}

func (h *AnalysisHandler) ListAnalyses(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	analyses, err := h.analysisService.ListAnalyses(ctx, uid)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(analyses))
}
