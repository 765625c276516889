package recommend

import (
	"context"
	"sort"
	"strings"

	"dermAssist/domain"
	"dermAssist/pkg/logger"
)

const (
	// maxPoolSize bounds the candidate payload sent to the reranker.
	maxPoolSize = 25
	// maxPerProductType keeps the pool from collapsing into one category.
	maxPerProductType = 6

	activeMatchScore = 1.0
	routineStepBonus = 0.5
)

// canonicalRoutineSteps are the four categories a balanced routine
// always covers; products in them get a small scoring bonus.
var canonicalRoutineSteps = map[string]bool{
	"Cleanser":    true,
	"Treatment":   true,
	"Moisturizer": true,
	"Sunscreen":   true,
}

type candidatePool struct {
	Candidates   []domain.CandidateProduct
	CandidateIDs []string
	Profile      domain.OnboardingProfile
	Analysis     domain.SkinAnalysis
}

// buildCandidatePool runs the SQL-filtered, scored, diversified pool
// construction. Budget and is_active filtering happen in the catalog
// query so only a bounded set is scored in memory.
func (s *RecommendService) buildCandidatePool(ctx context.Context, userID uint, analysisID string) (*candidatePool, error) {
	var (
		analysis domain.SkinAnalysis
		err      error
	)
	if analysisID != "" {
		analysis, err = s.analysisRepo.FindCompleteByID(ctx, analysisID, userID)
	} else {
		analysis, err = s.analysisRepo.FindLatestComplete(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	targetActives := MapTraitsToActives(analysis.Traits, profile.SkinGoals)

	products, err := s.productRepo.FindActiveInBudget(ctx, profile.BudgetMinUSD, profile.BudgetMaxUSD)
	if err != nil {
		return nil, err
	}

	products = FilterAllergies(products, profile.IngredientsToAvoid)

	// Stable sort: ties keep the ascending-price order from the query.
	sort.SliceStable(products, func(i, j int) bool {
		return scoreProduct(products[i], targetActives) > scoreProduct(products[j], targetActives)
	})

	diversified := diversify(products)

	candidates := make([]domain.CandidateProduct, 0, len(diversified))
	ids := make([]string, 0, len(diversified))
	for _, p := range diversified {
		candidates = append(candidates, p.ToCandidate())
		ids = append(ids, p.ID)
	}

	logger.Debug("Built candidate pool",
		"user_id", userID,
		"analysis_id", analysis.ID,
		"target_actives", len(targetActives),
		"in_budget", len(products),
		"candidates", len(candidates),
	)

	return &candidatePool{
		Candidates:   candidates,
		CandidateIDs: ids,
		Profile:      profile,
		Analysis:     analysis,
	}, nil
}

// scoreProduct gives +1 per target active found among the product's
// actives (case-insensitive substring) and +0.5 when the product sits
// in one of the canonical routine steps.
func scoreProduct(p domain.Product, targetActives []string) float64 {
	var score float64

	for _, target := range targetActives {
		lowered := strings.ToLower(target)
		for _, ingredient := range p.ActiveIngredients {
			if strings.Contains(strings.ToLower(ingredient), lowered) {
				score += activeMatchScore
				break
			}
		}
	}

	if canonicalRoutineSteps[p.ProductType] {
		score += routineStepBonus
	}

	return score
}

// diversify walks the score-ordered list, admitting at most
// maxPerProductType products per category and maxPoolSize in total.
func diversify(products []domain.Product) []domain.Product {
	admitted := make([]domain.Product, 0, maxPoolSize)
	perType := make(map[string]int)

	for _, p := range products {
		if len(admitted) >= maxPoolSize {
			break
		}
		if perType[p.ProductType] >= maxPerProductType {
			continue
		}
		perType[p.ProductType]++
		admitted = append(admitted, p)
	}

	return admitted
}
