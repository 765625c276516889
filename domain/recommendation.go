package domain

// Recommendation is the only type exposed across the pipeline's outward
// boundary. RetailUSD is never less than PriceUSD.
type Recommendation struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ConcernTags    []string `json:"concern_tags"`
	KeyIngredients []string `json:"key_ingredients"`
	PriceUSD       float64  `json:"price_usd"`
	RetailUSD      float64  `json:"retail_usd"`
	Vendor         string   `json:"vendor"`
	URL            string   `json:"url"`
}
