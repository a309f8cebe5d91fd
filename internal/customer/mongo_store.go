package customer

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CustomersCollection is the MongoDB collection holding customer documents.
const CustomersCollection = "customers"

type customerDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
}

// MongoStore implements Store using MongoDB.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a customer Store backed by the customers collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(CustomersCollection),
	}
}

// EnsureIndexes creates the unique index on the customer name.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create customer name index: %w", err)
	}
	return nil
}

func (m *MongoStore) Save(ctx context.Context, c *Customer) (*Customer, error) {
	doc := customerDocument{
		Name:         c.Name,
		PasswordHash: c.PasswordHash,
		Roles:        c.Roles,
	}
	if doc.Roles == nil {
		doc.Roles = []string{}
	}
	result, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, perrors.ErrCustomerExists
		}
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.toCustomer(), nil
}

func (m *MongoStore) FindByName(ctx context.Context, name string) (*Customer, error) {
	var doc customerDocument
	if err := m.collection.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by name: %w", err)
	}
	return doc.toCustomer(), nil
}

func (d customerDocument) toCustomer() *Customer {
	return &Customer{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Roles:        d.Roles,
	}
}
