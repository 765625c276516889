package analysis

import (
	"context"
	"errors"
	"testing"

	"dermAssist/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalysisRepo struct {
	created []domain.SkinAnalysis
	stored  domain.SkinAnalysis
	findErr error
}

func (f *fakeAnalysisRepo) Create(ctx context.Context, a *domain.SkinAnalysis) error {
	f.created = append(f.created, *a)
	return nil
}

func (f *fakeAnalysisRepo) FindCompleteByID(ctx context.Context, id string, userID uint) (domain.SkinAnalysis, error) {
	if f.findErr != nil {
		return domain.SkinAnalysis{}, f.findErr
	}
	return f.stored, nil
}

func (f *fakeAnalysisRepo) FindLatestComplete(ctx context.Context, userID uint) (domain.SkinAnalysis, error) {
	if f.findErr != nil {
		return domain.SkinAnalysis{}, f.findErr
	}
	return f.stored, nil
}

func (f *fakeAnalysisRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.SkinAnalysis, error) {
	return []domain.SkinAnalysis{f.stored}, nil
}

type fakeVision struct {
	result *domain.VisionAnalysis
	err    error
}

func (f *fakeVision) AnalyzeSkin(ctx context.Context, imageURLs []string) (*domain.VisionAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestCreateAnalysis(t *testing.T) {
	ctx := context.Background()
	images := []string{"https://cdn.example.com/face.jpg"}

	t.Run("persists a complete analysis with traits", func(t *testing.T) {
		repo := &fakeAnalysisRepo{}
		vision := &fakeVision{result: &domain.VisionAnalysis{
			Traits:  []domain.SkinTrait{{ID: "acne", Name: "Acne", Severity: domain.SeverityHigh}},
			Summary: "Breakouts along the jawline.",
		}}
		svc := NewAnalysisService(repo, vision)

		got, err := svc.CreateAnalysis(ctx, 1, images)
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.Equal(t, domain.AnalysisStatusComplete, got.Status)
		require.Len(t, got.Traits, 1)
		assert.Equal(t, "acne", got.Traits[0].ID)

		require.Len(t, repo.created, 1)
		assert.Equal(t, domain.AnalysisStatusComplete, repo.created[0].Status)
	})

	t.Run("vision failure persists a failed row and errors", func(t *testing.T) {
		repo := &fakeAnalysisRepo{}
		vision := &fakeVision{err: errors.New("provider down")}
		svc := NewAnalysisService(repo, vision)

		_, err := svc.CreateAnalysis(ctx, 1, images)
		require.Error(t, err)

		require.Len(t, repo.created, 1)
		assert.Equal(t, domain.AnalysisStatusFailed, repo.created[0].Status)
	})

	t.Run("requires a user id", func(t *testing.T) {
		svc := NewAnalysisService(&fakeAnalysisRepo{}, &fakeVision{})
		_, err := svc.CreateAnalysis(ctx, 0, images)
		assert.Error(t, err)
	})

	t.Run("requires at least one image", func(t *testing.T) {
		svc := NewAnalysisService(&fakeAnalysisRepo{}, &fakeVision{})
		_, err := svc.CreateAnalysis(ctx, 1, nil)
		assert.Error(t, err)
	})
}

func TestGetAnalysis(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored analysis", func(t *testing.T) {
		repo := &fakeAnalysisRepo{stored: domain.SkinAnalysis{ID: "an-1", Status: domain.AnalysisStatusComplete}}
		svc := NewAnalysisService(repo, &fakeVision{})

		got, err := svc.GetAnalysis(ctx, "an-1", 1)
		require.NoError(t, err)
		assert.Equal(t, "an-1", got.ID)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &fakeAnalysisRepo{findErr: domain.ErrAnalysisNotFound}
		svc := NewAnalysisService(repo, &fakeVision{})

		_, err := svc.GetAnalysis(ctx, "missing", 1)
		assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
	})
}
