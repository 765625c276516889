package recommend

import (
	"context"
	"strings"

	"dermAssist/domain"
	"dermAssist/pkg/logger"
)

// assemble maps ranked items back to full catalog rows, reconciles the
// retail reference price from dupe groups, derives concern tags and
// resolves vendor and URL. Items referencing unknown product ids are
// logged and skipped, so the result may hold fewer entries than the
// reranker promised.
func (s *RecommendService) assemble(
	ctx context.Context,
	items []domain.RankedItem,
	productsByID map[string]domain.Product,
	traits []domain.SkinTrait,
	profile domain.OnboardingProfile,
) ([]domain.Recommendation, error) {

	groupIDs := dupeGroupIDs(productsByID)
	dupeMax, err := s.productRepo.MaxPriceByDupeGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	userConcerns := userConcernSet(traits, profile.SkinConcerns)

	recs := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			logger.Warn("Reranker referenced a product id outside the candidate set",
				"product_id", item.ProductID,
			)
			continue
		}

		// Retail never undercuts the product's own price.
		retail := product.PriceUSD
		if product.DupeGroupID != "" {
			if groupMax, ok := dupeMax[product.DupeGroupID]; ok && groupMax > retail {
				retail = groupMax
			}
		}

		vendor := resolveVendor(item.SelectedVendor, product.Merchants)

		recs = append(recs, domain.Recommendation{
			ID:             product.ID,
			Name:           product.Name,
			ConcernTags:    concernTags(product, userConcerns),
			KeyIngredients: product.ActiveIngredients,
			PriceUSD:       product.PriceUSD,
			RetailUSD:      retail,
			Vendor:         vendor,
			URL:            resolveURL(product, vendor),
		})
	}

	return recs, nil
}

func dupeGroupIDs(productsByID map[string]domain.Product) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range productsByID {
		if p.DupeGroupID == "" || seen[p.DupeGroupID] {
			continue
		}
		seen[p.DupeGroupID] = true
		ids = append(ids, p.DupeGroupID)
	}
	return ids
}

// normalizeTag maps both trait ids ("fine-lines") and stated concerns
// ("Fine Lines") onto the same lowercase-hyphen form.
func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}

// userConcernSet is the union of moderate/high detected trait ids and
// the user's stated concerns, normalized.
func userConcernSet(traits []domain.SkinTrait, statedConcerns []string) map[string]bool {
	concerns := make(map[string]bool)

	for _, t := range traits {
		if t.Severity == domain.SeverityModerate || t.Severity == domain.SeverityHigh {
			concerns[normalizeTag(t.ID)] = true
		}
	}
	for _, c := range statedConcerns {
		if tag := normalizeTag(c); tag != "" {
			concerns[tag] = true
		}
	}

	return concerns
}

// concernTags emits a tag only when the user actually has the concern
// AND the product carries an active documented to treat it.
func concernTags(p domain.Product, userConcerns map[string]bool) []string {
	seen := make(map[string]bool)
	var tags []string

	for _, ingredient := range p.ActiveIngredients {
		lowered := strings.ToLower(ingredient)
		for _, activeKey := range knownActiveKeys {
			if !strings.Contains(lowered, activeKey) {
				continue
			}
			for _, concern := range concernsTreatedBy[activeKey] {
				if !userConcerns[concern] || seen[concern] {
					continue
				}
				seen[concern] = true
				tags = append(tags, concern)
			}
		}
	}

	return tags
}
