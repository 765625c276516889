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

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*domain.OnboardingProfile, error)
	SaveProfile(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error)
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type SaveProfileRequest struct {
	SkinConcerns       []string `json:"skin_concerns"`
	SkinGoals          []string `json:"skin_goals"`
	IngredientsToAvoid []string `json:"ingredients_to_avoid"`
	BudgetMinUSD       float64  `json:"budget_min_usd" validate:"gte=0"`
	BudgetMaxUSD       float64  `json:"budget_max_usd" validate:"gte=0,gtefield=BudgetMinUSD"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.profileService.GetProfile(ctx, uid)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(profile))
}

func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_FAILED", err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile := &domain.OnboardingProfile{
		UserID:             uid,
		SkinConcerns:       req.SkinConcerns,
		SkinGoals:          req.SkinGoals,
		IngredientsToAvoid: req.IngredientsToAvoid,
		BudgetMinUSD:       req.BudgetMinUSD,
		BudgetMaxUSD:       req.BudgetMaxUSD,
	}

	saved, err := h.profileService.SaveProfile(ctx, profile)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(saved))
}
