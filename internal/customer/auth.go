package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/identity"
)

// Authenticator checks Basic credentials against the customer store.
type Authenticator struct {
	store  Store
	hasher PasswordHasher
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(store Store, hasher PasswordHasher) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
	}
}

// Authenticate returns the principal for name if password matches its stored digest.
// Unknown names, customers without a password and wrong passwords all yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, name, password string) (identity.Principal, error) {
	c, err := a.store.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, perrors.ErrCustomerNotFound) {
			return identity.Principal{}, perrors.ErrInvalidCredentials
		}
		return identity.Principal{}, fmt.Errorf("failed to load customer: %w", err)
	}
	if c.PasswordHash == "" {
		return identity.Principal{}, perrors.ErrInvalidCredentials
	}
	if err := a.hasher.Compare(c.PasswordHash, password); err != nil {
		return identity.Principal{}, err
	}
	return identity.Principal{Name: c.Name, Roles: slices.Clone(c.Roles)}, nil
}

// Resolve adds the roles stored on p's customer record to p.
// A principal without a record is returned unchanged.
func (a *Authenticator) Resolve(ctx context.Context, p identity.Principal) (identity.Principal, error) {
	c, err := a.store.FindByName(ctx, p.Name)
	if err != nil {
		if errors.Is(err, perrors.ErrCustomerNotFound) {
			return p, nil
		}
		return identity.Principal{}, fmt.Errorf("failed to load customer: %w", err)
	}
	return withRoles(p, c.Roles), nil
}

// Provisioner creates the customer record for a principal on its first product write.
type Provisioner struct {
	store    Store
	identity identity.Port
	logger   *slog.Logger
}

// NewProvisioner creates a new Provisioner.
func NewProvisioner(store Store, port identity.Port, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		store:    store,
		identity: port,
		logger:   logger.With("component", "customer_provisioner"),
	}
}

// BeforeCreate makes sure the calling principal has a customer record,
// creating one with the customer role when none exists.
// The returned context carries the principal extended with the record's roles,
// so a provisioned principal holds RoleCustomer for the create that follows.
func (p *Provisioner) BeforeCreate(ctx context.Context) (context.Context, error) {
	name, err := p.identity.CurrentPrincipalName(ctx)
	if err != nil {
		return ctx, err
	}
	existing, err := p.store.FindByName(ctx, name)
	if err == nil {
		return grant(ctx, existing.Roles), nil
	}
	if !errors.Is(err, perrors.ErrCustomerNotFound) {
		return ctx, fmt.Errorf("failed to look up customer %s: %w", name, err)
	}

	c, err := New(name, identity.RoleCustomer)
	if err != nil {
		return ctx, err
	}
	saved, err := p.store.Save(ctx, c)
	if err != nil {
		// a concurrent request provisioned the same principal
		if errors.Is(err, perrors.ErrCustomerExists) {
			return grant(ctx, c.Roles), nil
		}
		return ctx, fmt.Errorf("failed to provision customer %s: %w", name, err)
	}
	p.logger.InfoContext(ctx, "customer provisioned", "customer", saved)
	return grant(ctx, saved.Roles), nil
}

// grant returns ctx with roles added to its principal.
func grant(ctx context.Context, roles []string) context.Context {
	principal, _ := identity.FromContext(ctx)
	return identity.WithPrincipal(ctx, withRoles(principal, roles))
}

func withRoles(p identity.Principal, roles []string) identity.Principal {
	merged := slices.Clone(p.Roles)
	for _, role := range roles {
		if !slices.Contains(merged, role) {
			merged = append(merged, role)
		}
	}
	p.Roles = merged
	return p
}

// Seed creates a customer with the given credentials and the customer role unless the name is already taken.
// Reports whether a customer was created.
func Seed(ctx context.Context, store Store, hasher PasswordHasher, name, password string) (bool, error) {
	_, err := store.FindByName(ctx, name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, perrors.ErrCustomerNotFound) {
		return false, fmt.Errorf("failed to look up customer %s: %w", name, err)
	}

	c, err := New(name, identity.RoleCustomer)
	if err != nil {
		return false, err
	}
	if err := c.SetPassword(password, hasher); err != nil {
		return false, err
	}
	if _, err := store.Save(ctx, c); err != nil {
		if errors.Is(err, perrors.ErrCustomerExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to seed customer %s: %w", name, err)
	}
	return true, nil
}
