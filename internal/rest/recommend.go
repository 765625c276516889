package rest

import (
	"context"
	"net/http"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/metrics"
	"dermAssist/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		GenerateRecommendations(ctx context.Context, userID uint, analysisID string) ([]domain.Recommendation, error)
	}

	RecommendRequest struct {
		AnalysisID string `json:"analysis_id" validate:"omitempty,uuid4"`
	}

	RecommendResponse struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
)

func NewRecommendHandler(svc RecommendService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		// generous budget: pool build + up to 3 LLM attempts with backoff
		timeout: 60 * time.Second,
	}
}

// Recommend handles POST /api/v1/recommendations.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	metrics.RecommendRequests.Inc()

	recs, err := h.recommendService.GenerateRecommendations(ctx, uid, req.AnalysisID)
	if err != nil {
		return jsonError(c, err)
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, response.Success(RecommendResponse{Recommendations: recs}))
}
