package recommend

import (
	"regexp"
	"strings"

	"dermAssist/domain"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeIngredient lowercases, strips punctuation and collapses
// whitespace so "Salicylic-Acid (2%)" and "salicylic acid 2" compare
// equal under substring matching.
func normalizeIngredient(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FilterAllergies removes products whose ingredients contain any
// avoided term. Matching is substring over normalized text, against
// both the active-ingredient list and the full-ingredient text when
// present. Substring matching over-excludes on purpose: avoiding
// "oil" also drops "Mineral Oil"; see the notes in DESIGN.md.
func FilterAllergies(products []domain.Product, avoid []string) []domain.Product {
	if len(avoid) == 0 {
		return products
	}

	terms := make([]string, 0, len(avoid))
	for _, a := range avoid {
		if t := normalizeIngredient(a); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return products
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if containsAvoided(p, terms) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

func containsAvoided(p domain.Product, terms []string) bool {
	for _, ingredient := range p.ActiveIngredients {
		normalized := normalizeIngredient(ingredient)
		for _, term := range terms {
			if strings.Contains(normalized, term) {
				return true
			}
		}
	}

	if p.AllIngredients != "" {
		normalized := normalizeIngredient(p.AllIngredients)
		for _, term := range terms {
			if strings.Contains(normalized, term) {
				return true
			}
		}
	}

	return false
}
