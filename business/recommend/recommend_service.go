package recommend

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"
	"dermAssist/pkg/logger"
	"dermAssist/pkg/metrics"
)

// ProductCatalog is the slice of the catalog repository this pipeline reads.
type ProductCatalog interface {
	FindActiveInBudget(ctx context.Context, minUSD, maxUSD float64) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	MaxPriceByDupeGroups(ctx context.Context, groupIDs []string) (map[string]float64, error)
}

type AnalysisRepository interface {
	FindCompleteByID(ctx context.Context, id string, userID uint) (domain.SkinAnalysis, error)
	FindLatestComplete(ctx context.Context, userID uint) (domain.SkinAnalysis, error)
}

type OnboardingRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error)
}

// Reranker is the LLM boundary; injected so tests can substitute fakes.
type Reranker interface {
	Rerank(ctx context.Context, input domain.RerankInput) (*domain.RerankOutput, error)
}

// ResultCache holds assembled results per user+analysis. Optional.
type ResultCache interface {
	Get(ctx context.Context, userID uint, analysisID string) ([]domain.Recommendation, error)
	Set(ctx context.Context, userID uint, analysisID string, recs []domain.Recommendation) error
}

type RecommendService struct {
	productRepo    ProductCatalog
	analysisRepo   AnalysisRepository
	onboardingRepo OnboardingRepository
	reranker       Reranker
	cache          ResultCache
}

func NewRecommendService(
	productRepo ProductCatalog,
	analysisRepo AnalysisRepository,
	onboardingRepo OnboardingRepository,
	reranker Reranker,
	cache ResultCache,
) *RecommendService {
	return &RecommendService{
		productRepo:    productRepo,
		analysisRepo:   analysisRepo,
		onboardingRepo: onboardingRepo,
		reranker:       reranker,
		cache:          cache,
	}
}

// GenerateRecommendations is the pipeline entry point: pool build,
// rerank, row re-fetch, assembly, in strict sequence. An empty pool
// short-circuits to an empty list with no LLM call.
func (s *RecommendService) GenerateRecommendations(ctx context.Context, userID uint, analysisID string) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	pool, err := s.buildCandidatePool(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID, pool.Analysis.ID)
		if err == nil {
			metrics.RecommendCacheHits.Inc()
			logger.Debug("Served recommendations from cache",
				"user_id", userID,
				"analysis_id", pool.Analysis.ID,
			)
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			// cache trouble degrades to a miss, never fails the request
			logger.Warn("Recommendation cache read failed", "error", err)
		}
	}

	if len(pool.Candidates) == 0 {
		logger.Info("Empty candidate pool, skipping rerank",
			"user_id", userID,
			"analysis_id", pool.Analysis.ID,
		)
		return []domain.Recommendation{}, nil
	}

	ranked, err := s.reranker.Rerank(ctx, domain.RerankInput{
		Candidates: pool.Candidates,
		Profile: domain.RerankProfile{
			SkinConcerns:       pool.Profile.SkinConcerns,
			SkinGoals:          pool.Profile.SkinGoals,
			IngredientsToAvoid: pool.Profile.IngredientsToAvoid,
			BudgetMinUSD:       pool.Profile.BudgetMinUSD,
			BudgetMaxUSD:       pool.Profile.BudgetMaxUSD,
		},
		Traits: pool.Analysis.Traits,
	})
	if err != nil {
		return nil, err
	}

	// Re-fetch full rows for exactly the candidate ids: the reranker only
	// ever saw the projection.
	rows, err := s.productRepo.FindByIDs(ctx, pool.CandidateIDs)
	if err != nil {
		return nil, err
	}

	productsByID := make(map[string]domain.Product, len(rows))
	for _, row := range rows {
		productsByID[row.ID] = row
	}

	recs, err := s.assemble(ctx, ranked.Items, productsByID, pool.Analysis.Traits, pool.Profile)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, pool.Analysis.ID, recs); err != nil {
			logger.Warn("Recommendation cache write failed", "error", err)
		}
	}

	logger.Info("Generated recommendations",
		"user_id", userID,
		"analysis_id", pool.Analysis.ID,
		"count", len(recs),
	)

	return recs, nil
}
