package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/logger"

	"github.com/google/uuid"
)

// AnalysisRepository contract interface
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.SkinAnalysis) error
	FindCompleteByID(ctx context.Context, id string, userID uint) (domain.SkinAnalysis, error)
	FindLatestComplete(ctx context.Context, userID uint) (domain.SkinAnalysis, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.SkinAnalysis, error)
}

// VisionClient runs the vision model over uploaded photo URLs.
type VisionClient interface {
	AnalyzeSkin(ctx context.Context, imageURLs []string) (*domain.VisionAnalysis, error)
}

type analysisService struct {
	analysisRepo AnalysisRepository
	vision       VisionClient
}

func NewAnalysisService(analysisRepo AnalysisRepository, vision VisionClient) *analysisService {
	return &analysisService{
		analysisRepo: analysisRepo,
		vision:       vision,
	}
}

// CreateAnalysis runs the vision call over already-uploaded photo URLs
// and persists the outcome. A failed vision call still persists a row
// with status failed so the client can show what happened.
func (s *analysisService) CreateAnalysis(ctx context.Context, userID uint, imageURLs []string) (*domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating analysis")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, errors.New("user id is required")
	}
	if len(imageURLs) == 0 {
		return nil, errors.New("at least one image url is required")
	}

	analysis := &domain.SkinAnalysis{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    domain.AnalysisStatusPending,
		CreatedAt: time.Now(),
	}

	result, visionErr := s.vision.AnalyzeSkin(ctx, imageURLs)
	if visionErr != nil {
		logger.Error("vision analysis failed", "error", visionErr, "user_id", userID)
		analysis.Status = domain.AnalysisStatusFailed
		if err := s.analysisRepo.Create(ctx, analysis); err != nil {
			logger.Error("failed to persist failed analysis", "error", err)
		}
		return nil, fmt.Errorf("vision analysis failed: %w", visionErr)
	}

	analysis.Status = domain.AnalysisStatusComplete
	analysis.Traits = result.Traits
	analysis.Summary = result.Summary

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		logger.Error("failed to persist analysis", "error", err)
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	logger.Info("skin analysis created",
		"analysis_id", analysis.ID,
		"user_id", userID,
		"traits", len(analysis.Traits),
	)

	return analysis, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string, userID uint) (*domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	analysis, err := s.analysisRepo.FindCompleteByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return &analysis, nil
}

func (s *analysisService) GetLatestAnalysis(ctx context.Context, userID uint) (*domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	analysis, err := s.analysisRepo.FindLatestComplete(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &analysis, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, userID uint) ([]domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.analysisRepo.FindByUserID(ctx, userID)
}
