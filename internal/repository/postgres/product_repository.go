package postgres

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindActiveInBudget returns published rows within [min, max], ascending
// by price. The budget and is_active filters run in SQL so the pool
// builder only scores a bounded set in memory.
func (r *ProductRepository) FindActiveInBudget(ctx context.Context, minUSD, maxUSD float64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND price_usd >= ? AND price_usd <= ?", true, minUSD, maxUSD).
		Order("price_usd ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products in budget: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

// MaxPriceByDupeGroups returns the maximum price among active products
// per dupe group, across the whole catalog (not just the candidate set).
func (r *ProductRepository) MaxPriceByDupeGroups(ctx context.Context, groupIDs []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(groupIDs) == 0 {
		return map[string]float64{}, nil
	}

	var rows []struct {
		DupeGroupID string
		MaxPrice    float64
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Select("dupe_group_id, MAX(price_usd) AS max_price").
		Where("is_active = ? AND dupe_group_id IN ?", true, groupIDs).
		Group("dupe_group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dupe group prices: %w", err)
	}

	maxByGroup := make(map[string]float64, len(rows))
	for _, row := range rows {
		maxByGroup[row.DupeGroupID] = row.MaxPrice
	}

	return maxByGroup, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":               product.Name,
		"brand":              product.Brand,
		"product_type":       product.ProductType,
		"price_usd":          product.PriceUSD,
		"merchants":          product.Merchants,
		"active_ingredients": product.ActiveIngredients,
		"all_ingredients":    product.AllIngredients,
		"product_link":       product.ProductLink,
		"dupe_group_id":      product.DupeGroupID,
		"is_active":          product.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// Deactivate flips is_active off. Rows are never deleted so dupe-group
// price history stays queryable.
func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
