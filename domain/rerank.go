package domain

// RerankInput is the compact payload sent to the LLM reranker: the
// candidate pool plus the profile and traits it should rank against.
type RerankInput struct {
	Candidates []CandidateProduct `json:"candidate_products"`
	Profile    RerankProfile      `json:"user_profile"`
	Traits     []SkinTrait        `json:"detected_traits"`
}

// RerankProfile carries only the profile fields the reranker needs.
type RerankProfile struct {
	SkinConcerns       []string `json:"skin_concerns"`
	SkinGoals          []string `json:"skin_goals"`
	IngredientsToAvoid []string `json:"ingredients_to_avoid"`
	BudgetMinUSD       float64  `json:"budget_min_usd"`
	BudgetMaxUSD       float64  `json:"budget_max_usd"`
}

// RankedItem is one entry of the reranker's output. ProductID must
// reference a candidate that was sent in the request; the assembler
// skips ids it cannot resolve.
type RankedItem struct {
	ProductID      string  `json:"product_id"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
	Step           string  `json:"step"`
	SelectedVendor string  `json:"selected_vendor"`
}

// RerankOutput is the schema-validated reranker response. Items holds
// between 8 and 12 entries.
type RerankOutput struct {
	Items      []RankedItem `json:"items"`
	Confidence float64      `json:"confidence,omitempty"`
}
