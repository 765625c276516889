package profile

import (
	"context"
	"testing"

	"dermAssist/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOnboardingRepo struct {
	profile  domain.OnboardingProfile
	findErr  error
	upserted *domain.OnboardingProfile
}

func (f *fakeOnboardingRepo) FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error) {
	if f.findErr != nil {
		return domain.OnboardingProfile{}, f.findErr
	}
	return f.profile, nil
}

func (f *fakeOnboardingRepo) Upsert(ctx context.Context, profile *domain.OnboardingProfile) error {
	f.upserted = profile
	return nil
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored profile", func(t *testing.T) {
		repo := &fakeOnboardingRepo{profile: domain.OnboardingProfile{UserID: 7, BudgetMaxUSD: 80}}
		svc := NewProfileService(repo)

		got, err := svc.GetProfile(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), got.UserID)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &fakeOnboardingRepo{findErr: domain.ErrProfileNotFound}
		svc := NewProfileService(repo)

		_, err := svc.GetProfile(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("valid profile is upserted and marked completed", func(t *testing.T) {
		repo := &fakeOnboardingRepo{}
		svc := NewProfileService(repo)

		saved, err := svc.SaveProfile(ctx, &domain.OnboardingProfile{
			UserID:       3,
			BudgetMinUSD: 20,
			BudgetMaxUSD: 100,
			SkinConcerns: []string{"acne"},
		})
		require.NoError(t, err)

		assert.True(t, saved.Completed)
		require.NotNil(t, repo.upserted)
		assert.Equal(t, uint(3), repo.upserted.UserID)
	})

	t.Run("rejects missing user id", func(t *testing.T) {
		svc := NewProfileService(&fakeOnboardingRepo{})

		_, err := svc.SaveProfile(ctx, &domain.OnboardingProfile{BudgetMaxUSD: 50})
		assert.Error(t, err)
	})

	t.Run("rejects negative budget", func(t *testing.T) {
		svc := NewProfileService(&fakeOnboardingRepo{})

		_, err := svc.SaveProfile(ctx, &domain.OnboardingProfile{UserID: 3, BudgetMinUSD: -1})
		assert.Error(t, err)
	})

	t.Run("rejects inverted budget range", func(t *testing.T) {
		svc := NewProfileService(&fakeOnboardingRepo{})

		_, err := svc.SaveProfile(ctx, &domain.OnboardingProfile{
			UserID:       3,
			BudgetMinUSD: 100,
			BudgetMaxUSD: 20,
		})
		assert.Error(t, err)
	})
}
