// Package messaging defines the domain events emitted by the catalog and the port used to publish them.
package messaging

import (
	"context"
)

const (
	// ProductsStream is the JetStream stream capturing every product subject.
	ProductsStream = "PRODUCTS"
	// ProductsSubjects is the subject filter bound to ProductsStream.
	ProductsSubjects = "products.>"

	ProductCreatedSubject = "products.created"
	ProductUpdatedSubject = "products.updated"
	ProductDeletedSubject = "products.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
