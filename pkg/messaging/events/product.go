package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/superstore/pkg/messaging"
)

// ProductEvent is emitted after a product write has been stored.
type ProductEvent struct {
	subject     string
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Prices      map[string]float64 `json:"prices,omitempty"`
	Principal   string             `json:"principal,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NewProductCreated creates the event for a newly stored product.
func NewProductCreated(e ProductEvent) ProductEvent {
	e.subject = messaging.ProductCreatedSubject
	return e
}

// NewProductUpdated creates the event for a replaced product.
func NewProductUpdated(e ProductEvent) ProductEvent {
	e.subject = messaging.ProductUpdatedSubject
	return e
}

// NewProductDeleted creates the event for a removed product.
func NewProductDeleted(e ProductEvent) ProductEvent {
	e.subject = messaging.ProductDeletedSubject
	return e
}

func (e ProductEvent) Subject() string {
	return e.subject
}

func (e ProductEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
