package customer

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertCustomerSQL   = `INSERT INTO customers (name, password_hash, roles) VALUES ($1, $2, $3) RETURNING id::text`
	findCustomerSQL     = `SELECT id::text, name, password_hash, roles FROM customers WHERE name = $1`
	uniqueViolationCode = "23505"
)

// PgStore implements Store using PostgreSQL.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a customer Store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

func (s *PgStore) Save(ctx context.Context, c *Customer) (*Customer, error) {
	roles := c.Roles
	if roles == nil {
		roles = []string{}
	}
	saved := *c
	saved.Roles = roles
	if err := s.db.QueryRow(ctx, insertCustomerSQL, c.Name, c.PasswordHash, roles).Scan(&saved.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, perrors.ErrCustomerExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &saved, nil
}

func (s *PgStore) FindByName(ctx context.Context, name string) (*Customer, error) {
	var c Customer
	err := s.db.QueryRow(ctx, findCustomerSQL, name).Scan(&c.ID, &c.Name, &c.PasswordHash, &c.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by name: %w", err)
	}
	return &c, nil
}
