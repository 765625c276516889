package recommend

import (
	"context"

	"dermAssist/domain"
)

// fakeCatalog serves an in-memory product slice with the same filtering
// semantics the SQL repository applies.
type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) FindActiveInBudget(ctx context.Context, minUSD, maxUSD float64) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.IsActive && p.PriceUSD >= minUSD && p.PriceUSD <= maxUSD {
			out = append(out, p)
		}
	}
	// ascending by price, stable
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].PriceUSD > out[j].PriceUSD; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Product
	for _, p := range f.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) MaxPriceByDupeGroups(ctx context.Context, groupIDs []string) (map[string]float64, error) {
	want := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		want[id] = true
	}
	out := make(map[string]float64)
	for _, p := range f.products {
		if !p.IsActive || p.DupeGroupID == "" || !want[p.DupeGroupID] {
			continue
		}
		if p.PriceUSD > out[p.DupeGroupID] {
			out[p.DupeGroupID] = p.PriceUSD
		}
	}
	return out, nil
}

type fakeAnalysisRepo struct {
	analysis domain.SkinAnalysis
	err      error
}

func (f *fakeAnalysisRepo) FindCompleteByID(ctx context.Context, id string, userID uint) (domain.SkinAnalysis, error) {
	if f.err != nil {
		return domain.SkinAnalysis{}, f.err
	}
	return f.analysis, nil
}

func (f *fakeAnalysisRepo) FindLatestComplete(ctx context.Context, userID uint) (domain.SkinAnalysis, error) {
	if f.err != nil {
		return domain.SkinAnalysis{}, f.err
	}
	return f.analysis, nil
}

type fakeOnboardingRepo struct {
	profile domain.OnboardingProfile
	err     error
}

func (f *fakeOnboardingRepo) FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error) {
	if f.err != nil {
		return domain.OnboardingProfile{}, f.err
	}
	return f.profile, nil
}

type fakeReranker struct {
	calls  int
	output *domain.RerankOutput
	err    error
}

func (f *fakeReranker) Rerank(ctx context.Context, input domain.RerankInput) (*domain.RerankOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type fakeCache struct {
	store map[string][]domain.Recommendation
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]domain.Recommendation)}
}

func (f *fakeCache) Get(ctx context.Context, userID uint, analysisID string) ([]domain.Recommendation, error) {
	f.gets++
	if recs, ok := f.store[analysisID]; ok {
		return recs, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, userID uint, analysisID string, recs []domain.Recommendation) error {
	f.sets++
	f.store[analysisID] = recs
	return nil
}
