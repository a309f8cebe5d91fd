// Package customer manages the customers allowed to use the secured catalog API.
package customer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Customer is a registered caller of the secured API.
// PasswordHash is empty for customers provisioned from an external identity; they cannot use Basic auth.
type Customer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
}

// New creates a customer without a password.
func New(name string, roles ...string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, perrors.InvalidArgument("Customer name cannot be empty")
	}
	return &Customer{
		Name:  name,
		Roles: slices.Clone(roles),
	}, nil
}

// SetPassword stores the digest of password computed by hasher.
func (c *Customer) SetPassword(password string, hasher PasswordHasher) error {
	if password == "" {
		return perrors.InvalidArgument("Password cannot be empty")
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	c.PasswordHash = hash
	return nil
}

// LogValue keeps the password digest out of log records.
func (c *Customer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.String("name", c.Name),
		slog.Any("roles", c.Roles),
	)
}

// Store is an interface for customer storage operations.
type Store interface {
	// Save inserts a new customer and returns it with its assigned ID.
	// Returns ErrCustomerExists if the name is already taken.
	Save(ctx context.Context, c *Customer) (*Customer, error)

	// FindByName retrieves a customer by its unique name.
	// Returns ErrCustomerNotFound if no customer has the given name.
	FindByName(ctx context.Context, name string) (*Customer, error)
}

// PasswordHasher computes and checks one-way password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidCredentials if password does not match hash.
	Compare(hash, password string) error
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. A zero cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInvalidCredentials, err)
	}
	return nil
}
