package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/superstore/internal/product"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertProductSQL = `INSERT INTO products (name, description, prices) VALUES ($1, $2, $3) RETURNING id`
	upsertProductSQL = `INSERT INTO products (id, name, description, prices) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
		prices = EXCLUDED.prices, updated_at = now()`
	findProductSQL     = `SELECT id, name, description, prices FROM products WHERE id = $1`
	findAllProductsSQL = `SELECT id, name, description, prices FROM products ORDER BY created_at, id`
	deleteProductSQL   = `DELETE FROM products WHERE id = $1`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
// Prices are kept in a JSONB column.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// Save inserts a new product row or updates the row with the same ID.
func (s *PgStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	if p.ID() == "" {
		var id uuid.UUID
		err := s.db.QueryRow(ctx, insertProductSQL, p.Name(), p.Description(), p.Prices()).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return withID(p, id.String())
	}

	id, err := uuid.Parse(p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to save product with ID %s: %w", p.ID(), err)
	}
	if _, err := s.db.Exec(ctx, upsertProductSQL, id, p.Name(), p.Description(), p.Prices()); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", p.ID(), err)
	}
	return withID(p, p.ID())
}

// FindOne retrieves a product by its ID. An ID that is not a valid UUID matches no product.
func (s *PgStore) FindOne(ctx context.Context, id string) (*product.Product, bool, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, false, nil
	}
	p, err := scanProduct(s.db.QueryRow(ctx, findProductSQL, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, true, nil
}

// FindAll retrieves all products in creation order.
func (s *PgStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	rows, err := s.db.Query(ctx, findAllProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*product.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return list, nil
}

// Delete removes the row with p's ID.
func (s *PgStore) Delete(ctx context.Context, p *product.Product) error {
	id, err := uuid.Parse(p.ID())
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", p.ID(), err)
	}
	if _, err := s.db.Exec(ctx, deleteProductSQL, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", p.ID(), err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var (
		id          uuid.UUID
		name        string
		description *string
		prices      map[string]float64
	)
	if err := row.Scan(&id, &name, &description, &prices); err != nil {
		return nil, err
	}
	p, err := product.NewBuilder().
		ID(id.String()).
		Name(name).
		Description(description).
		Prices(prices).
		Build()
	if err != nil {
		return nil, fmt.Errorf("stored product %s is invalid: %w", id, err)
	}
	return p, nil
}
