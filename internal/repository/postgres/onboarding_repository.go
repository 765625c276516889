package postgres

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepository struct {
	DB *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{
		DB: db,
	}
}

func (r *OnboardingRepository) FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.OnboardingProfile{}, fmt.Errorf("context error: %w", err)
	}

	var profile domain.OnboardingProfile

	err := r.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OnboardingProfile{}, domain.ErrProfileNotFound
		}
		return domain.OnboardingProfile{}, fmt.Errorf("failed to find onboarding profile: %w", err)
	}

	return profile, nil
}

// Upsert writes the profile, replacing any previous row for the user.
func (r *OnboardingRepository) Upsert(ctx context.Context, profile *domain.OnboardingProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"skin_concerns",
				"skin_goals",
				"ingredients_to_avoid",
				"budget_min_usd",
				"budget_max_usd",
				"completed",
				"updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert onboarding profile: %w", err)
	}

	return nil
}
