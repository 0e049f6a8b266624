package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// ProductService provides the product record operations.
type ProductService interface {
	HasProducts(ctx context.Context) (bool, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
	PatchProduct(ctx context.Context, id int, in domain.ProductInput) (domain.Product, error)
	ReplaceProduct(ctx context.Context, id int, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// ProductServiceImpl implements the ProductService interface
type ProductServiceImpl struct {
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productStore store.ProductStore, logger *slog.Logger) ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductServiceImpl{
		productStore: productStore,
		logger:       logger.With("component", "product_service"),
	}
}

// HasProducts implements ProductService.
func (s *ProductServiceImpl) HasProducts(ctx context.Context) (bool, error) {
	exists, err := s.productStore.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check products: %w", err)
	}
	return exists, nil
}

// CreateProduct implements ProductService.
func (s *ProductServiceImpl) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	product, err := s.productStore.Create(ctx, func(id int) domain.Product {
		return domain.NewProduct(id, in)
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Debug("product created", "product_id", product.ID)
	return product, nil
}

// ListProducts implements ProductService.
func (s *ProductServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct implements ProductService.
func (s *ProductServiceImpl) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	product, err := s.productStore.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return product, nil
}

// PatchProduct implements ProductService. A malformed price is rejected
// before the store is touched.
func (s *ProductServiceImpl) PatchProduct(ctx context.Context, id int, in domain.ProductInput) (domain.Product, error) {
	if err := in.ValidatePatch(); err != nil {
		return domain.Product{}, err
	}

	product, err := s.productStore.Update(ctx, id, func(p domain.Product) domain.Product {
		return p.Patch(in)
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Debug("product patched", "product_id", id)
	return product, nil
}

// ReplaceProduct implements ProductService.
func (s *ProductServiceImpl) ReplaceProduct(ctx context.Context, id int, in domain.ProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}

	product, err := s.productStore.Update(ctx, id, func(p domain.Product) domain.Product {
		return p.Replace(in)
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Debug("product replaced", "product_id", id)
	return product, nil
}

// DeleteProduct implements ProductService.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id int) error {
	if err := s.productStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Debug("product deleted", "product_id", id)
	return nil
}
