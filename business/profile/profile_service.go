package profile

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"
	"dermAssist/pkg/logger"
)

// OnboardingRepository contract interface
type OnboardingRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error)
	Upsert(ctx context.Context, profile *domain.OnboardingProfile) error
}

type profileService struct {
	onboardingRepo OnboardingRepository
}

func NewProfileService(onboardingRepo OnboardingRepository) *profileService {
	return &profileService{
		onboardingRepo: onboardingRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (*domain.OnboardingProfile, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when fetching profile")
		return nil, fmt.Errorf("context error: %w", err)
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// SaveProfile validates and upserts the onboarding profile. Saving
// marks onboarding as completed; the recommendation pipeline itself
// never writes this table.
func (s *profileService) SaveProfile(ctx context.Context, profile *domain.OnboardingProfile) (*domain.OnboardingProfile, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when saving profile")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if profile.UserID == 0 {
		logger.Error("Invalid profile data: user id is required")
		return nil, errors.New("user id is required")
	}

	if profile.BudgetMinUSD < 0 || profile.BudgetMaxUSD < 0 {
		logger.Error("Invalid profile data: budget cannot be negative")
		return nil, errors.New("budget cannot be negative")
	}

	if profile.BudgetMinUSD > profile.BudgetMaxUSD {
		logger.Error("Invalid profile data: budget min exceeds budget max",
			"budget_min", profile.BudgetMinUSD,
			"budget_max", profile.BudgetMaxUSD,
		)
		return nil, errors.New("budget min must not exceed budget max")
	}

	profile.Completed = true

	if err := s.onboardingRepo.Upsert(ctx, profile); err != nil {
		logger.Error("failed to save onboarding profile", "error", err)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Info("onboarding profile saved", "user_id", profile.UserID)

	return profile, nil
}
