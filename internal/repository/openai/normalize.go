package openai

// Models occasionally rename top-level fields despite the prompt. The
// alias tables below enumerate every accepted spelling; normalization
// happens once, before schema validation, so the tolerance stays
// auditable in one place.

type fieldAliases struct {
	canonical string
	aliases   []string
}

var rerankAliases = []fieldAliases{
	{canonical: "items", aliases: []string{"recommendations", "ranked_products", "products"}},
	{canonical: "confidence", aliases: []string{"overall_confidence", "confidence_score"}},
}

var visionAliases = []fieldAliases{
	{canonical: "traits", aliases: []string{"skin_traits", "findings"}},
	{canonical: "summary", aliases: []string{"overall_summary", "description"}},
}

// normalizeAliases rewrites known alias keys to their canonical names
// in place. A canonical key already present always wins.
func normalizeAliases(obj map[string]any, tables []fieldAliases) {
	for _, t := range tables {
		if _, ok := obj[t.canonical]; ok {
			continue
		}
		for _, alias := range t.aliases {
			if v, ok := obj[alias]; ok {
				obj[t.canonical] = v
				delete(obj, alias)
				break
			}
		}
	}
}
