package recommend

import (
	"sort"
	"strings"

	"dermAssist/domain"
)

// traitActives maps detected trait ids to the actives with evidence for
// them. A trait id missing here simply contributes nothing.
var traitActives = map[string][]string{
	"acne":              {"Salicylic Acid", "Benzoyl Peroxide", "Niacinamide"},
	"blackheads":        {"Salicylic Acid", "Retinol"},
	"dryness":           {"Hyaluronic Acid", "Ceramides", "Squalane"},
	"oiliness":          {"Niacinamide", "Salicylic Acid"},
	"redness":           {"Centella Asiatica", "Azelaic Acid", "Niacinamide"},
	"hyperpigmentation": {"Vitamin C", "Alpha Arbutin", "Kojic Acid"},
	"fine-lines":        {"Retinol", "Peptides", "Vitamin C"},
	"dark-circles":      {"Caffeine", "Vitamin C"},
	"enlarged-pores":    {"Niacinamide", "Salicylic Acid"},
	"uneven-texture":    {"Glycolic Acid", "Lactic Acid", "Retinol"},
	"dullness":          {"Vitamin C", "Glycolic Acid", "Niacinamide"},
	"sensitivity":       {"Centella Asiatica", "Ceramides", "Panthenol"},
}

// goalActives maps stated goal phrases (matched case-insensitively,
// exact) to actives.
var goalActives = map[string][]string{
	"clear skin":     {"Salicylic Acid", "Niacinamide"},
	"anti-aging":     {"Retinol", "Peptides", "Vitamin C"},
	"even skin tone": {"Vitamin C", "Alpha Arbutin"},
	"hydration":      {"Hyaluronic Acid", "Ceramides"},
	"glow":           {"Vitamin C", "Glycolic Acid"},
	"minimize pores": {"Niacinamide", "Salicylic Acid"},
}

// MapTraitsToActives returns the prioritized, deduplicated target
// actives for the detected traits and stated goals. Traits are walked
// in descending severity so higher-severity actives land first;
// unknown trait ids and goal phrases are ignored.
func MapTraitsToActives(traits []domain.SkinTrait, goals []string) []string {
	ordered := make([]domain.SkinTrait, len(traits))
	copy(ordered, traits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SeverityRank() > ordered[j].SeverityRank()
	})

	seen := make(map[string]bool)
	var actives []string

	add := func(names []string) {
		for _, name := range names {
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			actives = append(actives, name)
		}
	}

	for _, trait := range ordered {
		add(traitActives[trait.ID])
	}

	for _, goal := range goals {
		add(goalActives[strings.ToLower(strings.TrimSpace(goal))])
	}

	return actives
}

// concernsTreatedBy inverts traitActives: which trait ids does a given
// active ingredient treat. Built once at package init.
var concernsTreatedBy = func() map[string][]string {
	inverted := make(map[string][]string)

	// deterministic insertion order for the inverted lists
	concerns := make([]string, 0, len(traitActives))
	for concern := range traitActives {
		concerns = append(concerns, concern)
	}
	sort.Strings(concerns)

	for _, concern := range concerns {
		for _, active := range traitActives[concern] {
			key := strings.ToLower(active)
			inverted[key] = append(inverted[key], concern)
		}
	}
	return inverted
}()

// knownActiveKeys holds the keys of concernsTreatedBy in sorted order,
// so concern-tag derivation is deterministic.
var knownActiveKeys = func() []string {
	keys := make([]string, 0, len(concernsTreatedBy))
	for k := range concernsTreatedBy {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()
