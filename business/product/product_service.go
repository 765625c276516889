package product

import (
	"context"
	"errors"
	"fmt"

	"dermAssist/domain"
	"dermAssist/pkg/logger"

	"github.com/google/uuid"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Deactivate(ctx context.Context, id string) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		logger.Error("invalid product id")
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when finding product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "error", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", "error", err)
		return nil, err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.IsActive = true

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == "" {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", "error", err)
		return nil, err
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		logger.Error("product not found", "error", err)
		return nil, domain.ErrProductNotFound
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", "error", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated successfully", "product_id", product.ID)

	return &updatedProduct, nil
}

// DeactivateProduct soft-deletes: the row stays so dupe-group retail
// pricing keeps seeing historical prices.
func (s *productService) DeactivateProduct(ctx context.Context, id string) error {
	if id == "" {
		logger.Error("Invalid product id when deactivating product")
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deactivating product")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("product not found", "error", err)
		return domain.ErrProductNotFound
	}

	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		logger.Error("failed to deactivate product", "error", err)
		return fmt.Errorf("failed to deactivate product: %w", err)
	}

	logger.Info("product deactivated", "product_id", id)

	return nil
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}
	if product.Brand == "" {
		return errors.New("product brand is required")
	}
	if product.ProductType == "" {
		return errors.New("product type is required")
	}
	if product.PriceUSD <= 0 {
		return errors.New("price must be greater than 0")
	}
	return nil
}
