package rest

import (
	"context"
	"net/http"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/logger"
	"dermAssist/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	Name              string   `json:"name" validate:"required"`
	Brand             string   `json:"brand" validate:"required"`
	ProductType       string   `json:"product_type" validate:"required"`
	PriceUSD          float64  `json:"price_usd" validate:"required,gt=0"`
	Merchants         []string `json:"merchants"`
	ActiveIngredients []string `json:"active_ingredients"`
	AllIngredients    string   `json:"all_ingredients"`
	ProductLink       string   `json:"product_link" validate:"omitempty,url"`
	DupeGroupID       string   `json:"dupe_group_id"`
}

func (req ProductRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:              req.Name,
		Brand:             req.Brand,
		ProductType:       req.ProductType,
		PriceUSD:          req.PriceUSD,
		Merchants:         req.Merchants,
		ActiveIngredients: req.ActiveIngredients,
		AllIngredients:    req.AllIngredients,
		ProductLink:       req.ProductLink,
		DupeGroupID:       req.DupeGroupID,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to list products", "error", err)
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", "product id is required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_FAILED", err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, req.toDomain())
	if err != nil {
		logger.Error("Failed to create product", "error", err)
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, response.Success(newProduct))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", "product id is required", nil))
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", err.Error(), nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", "error", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_FAILED", err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := req.toDomain()
	product.ID = id
	product.IsActive = true

	updated, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", "error", err)
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(updated))
}

func (h *ProductHandler) DeactivateProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, response.Error("BAD_REQUEST", "product id is required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeactivateProduct(ctx, id); err != nil {
		logger.Error("Failed to deactivate product", "error", err)
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success(map[string]any{"product_id": id}))
}
