package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/superstore/internal/product"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ProductWritesMetric counts product writes by operation and outcome.
const ProductWritesMetric = "product_writes"

// MeteredService counts the write calls passing through it.
type MeteredService struct {
	next   ProductService
	writes metric.Int64Counter
}

// NewMeteredService wraps next with a product_writes counter created from meter.
func NewMeteredService(next ProductService, meter metric.Meter) (*MeteredService, error) {
	writes, err := meter.Int64Counter(ProductWritesMetric, metric.WithDescription("Total number of product writes"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", ProductWritesMetric, err)
	}
	return &MeteredService{
		next:   next,
		writes: writes,
	}, nil
}

func (s *MeteredService) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	created, err := s.next.Create(ctx, dto)
	s.record(ctx, "create", err)
	return created, err
}

func (s *MeteredService) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	return s.next.FindByID(ctx, id)
}

func (s *MeteredService) FindAll(ctx context.Context) ([]product.Dto, error) {
	return s.next.FindAll(ctx)
}

func (s *MeteredService) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	updated, err := s.next.Update(ctx, dto)
	s.record(ctx, "update", err)
	return updated, err
}

func (s *MeteredService) Delete(ctx context.Context, id string) (*product.Dto, error) {
	deleted, err := s.next.Delete(ctx, id)
	s.record(ctx, "delete", err)
	return deleted, err
}

func (s *MeteredService) record(ctx context.Context, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
