package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/superstore/internal/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductsCollection is the MongoDB collection holding product documents.
const ProductsCollection = "products"

// productDocument is the BSON shape of a stored product.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description *string            `bson:"description,omitempty"`
	Prices      map[string]float64 `bson:"prices"`
}

// MongoStore implements ProductStore using MongoDB as the document store.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a new instance of ProductStore backed by the products collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(ProductsCollection),
	}
}

// Save inserts a new product document or replaces the document with the same ID.
func (m *MongoStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	doc := productDocument{
		Name:        p.Name(),
		Description: p.Description(),
		Prices:      p.Prices(),
	}
	if p.ID() == "" {
		result, err := m.collection.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		doc.ID = result.InsertedID.(primitive.ObjectID)
		return withID(p, doc.ID.Hex())
	}

	id, err := primitive.ObjectIDFromHex(p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to save product with ID %s: %w", p.ID(), err)
	}
	doc.ID = id
	filter := bson.D{{Key: "_id", Value: id}}
	if _, err := m.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("failed to replace product with ID %s: %w", p.ID(), err)
	}
	return withID(p, p.ID())
}

// FindOne retrieves a product by its ID. An ID that is not a valid ObjectID matches no product.
func (m *MongoStore) FindOne(ctx context.Context, id string) (*product.Product, bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}

	var doc productDocument
	filter := bson.D{{Key: "_id", Value: objectID}}
	if err := m.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find product by ID: %w", err)
	}
	p, err := doc.toProduct()
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// FindAll retrieves all products ordered by ID, which follows insertion order for generated ObjectIDs.
func (m *MongoStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	cursor, err := m.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	list := make([]*product.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toProduct()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Delete removes the document with p's ID.
func (m *MongoStore) Delete(ctx context.Context, p *product.Product) error {
	id, err := primitive.ObjectIDFromHex(p.ID())
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", p.ID(), err)
	}
	if _, err := m.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", p.ID(), err)
	}
	return nil
}

func (d productDocument) toProduct() (*product.Product, error) {
	p, err := product.NewBuilder().
		ID(d.ID.Hex()).
		Name(d.Name).
		Description(d.Description).
		Prices(d.Prices).
		Build()
	if err != nil {
		return nil, fmt.Errorf("stored product %s is invalid: %w", d.ID.Hex(), err)
	}
	return p, nil
}
