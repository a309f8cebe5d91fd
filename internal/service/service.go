// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/internal/store"
)

// ProductService defines the methods for managing products.
// All mapping between the wire Dto and the Product entity happens behind this interface.
type ProductService interface {
	// Create validates and stores a new product. Any ID in the Dto is ignored.
	// Returns ErrNullReference or ErrInvalidArgument if the product is invalid.
	Create(ctx context.Context, dto product.Dto) (*product.Dto, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*product.Dto, error)

	// FindAll returns all products in store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]product.Dto, error)

	// Update replaces name, description and prices of the product with the Dto's ID.
	// Returns ErrProductNotFound if no product exists with that ID.
	// Concurrent writes to the same ID are last-write-wins; see store.ProductStore.Save.
	Update(ctx context.Context, dto product.Dto) (*product.Dto, error)

	// Delete removes a product by its ID and returns it as it was before removal.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Delete(ctx context.Context, id string) (*product.Dto, error)
}

// Service implements ProductService on top of a ProductStore without any access restriction.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

func (s *Service) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	dto.ID = ""
	p, err := product.FromDto(dto)
	if err != nil {
		return nil, err
	}

	created, err := s.repository.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return dtoOf(created), nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	p, err := s.lookupOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	return dtoOf(p), nil
}

func (s *Service) FindAll(ctx context.Context) ([]product.Dto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	dtos := make([]product.Dto, len(products))
	for i, p := range products {
		dtos[i] = product.ToDto(p)
	}
	return dtos, nil
}

func (s *Service) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	p, err := s.lookupOrFail(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	prices, err := product.DtoPrices(dto.Prices)
	if err != nil {
		return nil, err
	}
	if err := p.Update(dto.Name, dto.Description, prices); err != nil {
		return nil, err
	}

	updated, err := s.repository.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", dto.ID, err)
	}
	return dtoOf(updated), nil
}

func (s *Service) Delete(ctx context.Context, id string) (*product.Dto, error) {
	p, err := s.lookupOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repository.Delete(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return dtoOf(p), nil
}

// lookupOrFail returns the stored product with id or a ProductNotFoundError.
// It is the only place where a missing product is turned into an error.
func (s *Service) lookupOrFail(ctx context.Context, id string) (*product.Product, error) {
	if id == "" {
		return nil, perrors.InvalidArgument("Product id cannot be empty")
	}
	p, ok, err := s.repository.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	if !ok {
		return nil, perrors.NewProductNotFound(id)
	}
	return p, nil
}

func dtoOf(p *product.Product) *product.Dto {
	dto := product.ToDto(p)
	return &dto
}
