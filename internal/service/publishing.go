package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/pkg/messaging"
	"github.com/abgdnv/superstore/pkg/messaging/events"
)

// PublishingService emits a product event after every successful write.
// A failed publish is logged and does not fail the call, since the write is already stored.
type PublishingService struct {
	next      ProductService
	publisher messaging.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewPublishingService wraps next so that writes are announced through publisher.
func NewPublishingService(next ProductService, publisher messaging.Publisher, logger *slog.Logger) *PublishingService {
	return &PublishingService{
		next:      next,
		publisher: publisher,
		logger:    logger.With("component", "product_events"),
		now:       time.Now,
	}
}

func (s *PublishingService) Create(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	created, err := s.next.Create(ctx, dto)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewProductCreated(s.eventOf(ctx, created)))
	return created, nil
}

func (s *PublishingService) FindByID(ctx context.Context, id string) (*product.Dto, error) {
	return s.next.FindByID(ctx, id)
}

func (s *PublishingService) FindAll(ctx context.Context) ([]product.Dto, error) {
	return s.next.FindAll(ctx)
}

func (s *PublishingService) Update(ctx context.Context, dto product.Dto) (*product.Dto, error) {
	updated, err := s.next.Update(ctx, dto)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewProductUpdated(s.eventOf(ctx, updated)))
	return updated, nil
}

func (s *PublishingService) Delete(ctx context.Context, id string) (*product.Dto, error) {
	deleted, err := s.next.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewProductDeleted(events.ProductEvent{
		ProductID:  deleted.ID,
		Principal:  principalName(ctx),
		OccurredAt: s.now().UTC(),
	}))
	return deleted, nil
}

func (s *PublishingService) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

func (s *PublishingService) eventOf(ctx context.Context, dto *product.Dto) events.ProductEvent {
	// stored products never carry null amounts
	prices, _ := product.DtoPrices(dto.Prices)
	e := events.ProductEvent{
		ProductID:   dto.ID,
		Description: dto.Description,
		Prices:      prices,
		Principal:   principalName(ctx),
		OccurredAt:  s.now().UTC(),
	}
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	return e
}

func principalName(ctx context.Context) string {
	p, _ := identity.FromContext(ctx)
	return p.Name
}
