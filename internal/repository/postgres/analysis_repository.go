package postgres

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{
		DB: db,
	}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.SkinAnalysis) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create skin analysis: %w", err)
	}

	return nil
}

// FindCompleteByID fetches a completed analysis scoped to the user. A
// row belonging to another user or still pending counts as not found.
func (r *AnalysisRepository) FindCompleteByID(ctx context.Context, id string, userID uint) (domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkinAnalysis{}, fmt.Errorf("context error: %w", err)
	}

	var analysis domain.SkinAnalysis

	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.AnalysisStatusComplete).
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SkinAnalysis{}, domain.ErrAnalysisNotFound
		}
		return domain.SkinAnalysis{}, fmt.Errorf("failed to find skin analysis: %w", err)
	}

	return analysis, nil
}

func (r *AnalysisRepository) FindLatestComplete(ctx context.Context, userID uint) (domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.SkinAnalysis{}, fmt.Errorf("context error: %w", err)
	}

	var analysis domain.SkinAnalysis

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.AnalysisStatusComplete).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SkinAnalysis{}, domain.ErrAnalysisNotFound
		}
		return domain.SkinAnalysis{}, fmt.Errorf("failed to find latest skin analysis: %w", err)
	}

	return analysis, nil
}

func (r *AnalysisRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.SkinAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var analyses []domain.SkinAnalysis

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list skin analyses: %w", err)
	}

	return analyses, nil
}
