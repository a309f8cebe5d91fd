package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore wraps a ProductStore in a circuit breaker.
// While the breaker is open, calls fail fast with ErrUnavailable.
type BreakerStore struct {
	next ProductStore
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore creates a BreakerStore around next.
func NewBreakerStore(next ProductStore, cfg config.CircuitBreakerConfig) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "product-store-cb",
		MaxRequests: 3,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request says nothing about the health of the store.
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](st),
	}
}

func (b *BreakerStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	return execute(b.cb, func() (*product.Product, error) {
		return b.next.Save(ctx, p)
	})
}

func (b *BreakerStore) FindOne(ctx context.Context, id string) (*product.Product, bool, error) {
	type result struct {
		p     *product.Product
		found bool
	}
	r, err := execute(b.cb, func() (result, error) {
		p, found, err := b.next.FindOne(ctx, id)
		return result{p: p, found: found}, err
	})
	return r.p, r.found, err
}

func (b *BreakerStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	return execute(b.cb, func() ([]*product.Product, error) {
		return b.next.FindAll(ctx)
	})
}

func (b *BreakerStore) Delete(ctx context.Context, p *product.Product) error {
	_, err := execute(b.cb, func() (struct{}, error) {
		return struct{}{}, b.next.Delete(ctx, p)
	})
	return err
}

// execute runs fn through cb, translating rejections of an open breaker into ErrUnavailable.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		var zero T
		if r, ok := res.(T); ok {
			return r, err
		}
		return zero, err
	}
	return res.(T), nil
}
