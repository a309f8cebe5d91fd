package service

import (
	"context"
	"log/slog"

	"github.com/abgdnv/superstore/internal/product"
)

// LoggingService logs the intent and outcome of every ProductService call.
type LoggingService struct {
	next   ProductService
	logger *slog.Logger
}

// NewLoggingService wraps next with intent and outcome logging.
func NewLoggingService(next ProductService, logger *slog.Logger) *LoggingService {
	return &LoggingService{
		next:   next,
		logger: logger.With("component", "product_service"),
	}
}

func (s *LoggingService) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	s.logger.InfoContext(ctx, "Creating a new product entry", "product", dto.String())
	created, err := s.next.Create(ctx, dto)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to create product entry", "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Created a new product entry", "product", created.String())
	return created, nil
}

func (s *LoggingService) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	s.logger.InfoContext(ctx, "Finding product entry", "id", id)
	found, err := s.next.FindByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to find product entry", "id", id, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Found product entry", "product", found.String())
	return found, nil
}

func (s *LoggingService) FindAll(ctx context.Context) ([]product.Dto, error) {
	s.logger.InfoContext(ctx, "Finding all product entries")
	list, err := s.next.FindAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to find product entries", "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Found product entries", "count", len(list))
	return list, nil
}

func (s *LoggingService) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	s.logger.InfoContext(ctx, "Updating product entry", "product", dto.String())
	updated, err := s.next.Update(ctx, dto)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to update product entry", "id", dto.ID, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Updated product entry", "product", updated.String())
	return updated, nil
}

func (s *LoggingService) Delete(ctx context.Context, id string) (*product.Dto, error) {
	s.logger.InfoContext(ctx, "Deleting product entry", "id", id)
	deleted, err := s.next.Delete(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to delete product entry", "id", id, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Deleted product entry", "product", deleted.String())
	return deleted, nil
}
