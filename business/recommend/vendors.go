package recommend

import (
	"fmt"
	"net/url"
	"strings"

	"dermAssist/domain"
)

// allowedVendors is the fixed set a Recommendation may carry. Anything
// else coming back from the reranker is discarded.
var allowedVendors = []string{"Sephora", "Ulta", "Amazon", "Dermstore"}

var vendorSearchURL = map[string]string{
	"Sephora":   "https://www.sephora.com/search?keyword=%s",
	"Ulta":      "https://www.ulta.com/shop/search?query=%s",
	"Amazon":    "https://www.amazon.com/s?k=%s",
	"Dermstore": "https://www.dermstore.com/search?q=%s",
}

func matchAllowedVendor(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, vendor := range allowedVendors {
		if strings.EqualFold(trimmed, vendor) {
			return vendor, true
		}
	}
	return "", false
}

// resolveVendor trusts the reranker's choice when allowed, falls back
// to the product's first listed merchant, and otherwise defaults to the
// first allowed vendor so the field is always populated.
func resolveVendor(selected string, merchants []string) string {
	if v, ok := matchAllowedVendor(selected); ok {
		return v
	}
	if len(merchants) > 0 {
		if v, ok := matchAllowedVendor(merchants[0]); ok {
			return v
		}
	}
	return allowedVendors[0]
}

// resolveURL prefers the catalog's product link and otherwise builds a
// vendor search URL from the encoded product name.
func resolveURL(p domain.Product, vendor string) string {
	if p.ProductLink != "" {
		return p.ProductLink
	}
	return fmt.Sprintf(vendorSearchURL[vendor], url.QueryEscape(p.Name))
}
