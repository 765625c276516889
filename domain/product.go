package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id                 TEXT PRIMARY KEY,
//     name               TEXT NOT NULL,
//     brand              TEXT,
//     product_type       TEXT,
//     price_usd          NUMERIC NOT NULL,
//     merchants          JSONB,
//     active_ingredients JSONB,
//     all_ingredients    TEXT,
//     product_link       TEXT,
//     dupe_group_id      TEXT,
//     is_active          BOOLEAN DEFAULT TRUE,
//     created_at         TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID                string                      `gorm:"primaryKey;column:id" json:"id"`
	Name              string                      `gorm:"column:name;type:text" json:"name"`
	Brand             string                      `gorm:"column:brand;type:text" json:"brand"`
	ProductType       string                      `gorm:"column:product_type;type:text" json:"product_type"`
	PriceUSD          float64                     `gorm:"column:price_usd;type:numeric" json:"price_usd"`
	Merchants         datatypes.JSONSlice[string] `gorm:"column:merchants" json:"merchants"`
	ActiveIngredients datatypes.JSONSlice[string] `gorm:"column:active_ingredients" json:"active_ingredients"`
	AllIngredients    string                      `gorm:"column:all_ingredients;type:text" json:"all_ingredients,omitempty"`
	ProductLink       string                      `gorm:"column:product_link;type:text" json:"product_link,omitempty"`
	DupeGroupID       string                      `gorm:"column:dupe_group_id;type:text" json:"dupe_group_id,omitempty"`
	IsActive          bool                        `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt         time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// CandidateProduct is the compact projection shipped to the reranker.
// Drops dupe_group_id and product_link to keep the payload small.
type CandidateProduct struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Brand             string   `json:"brand"`
	ProductType       string   `json:"product_type"`
	PriceUSD          float64  `json:"price_usd"`
	ActiveIngredients []string `json:"active_ingredients"`
	Merchants         []string `json:"merchants"`
}

func (p Product) ToCandidate() CandidateProduct {
	return CandidateProduct{
		ID:                p.ID,
		Name:              p.Name,
		Brand:             p.Brand,
		ProductType:       p.ProductType,
		PriceUSD:          p.PriceUSD,
		ActiveIngredients: p.ActiveIngredients,
		Merchants:         p.Merchants,
	}
}
