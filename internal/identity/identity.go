// Package identity carries the authenticated principal through a request context.
package identity

import (
	"context"
	"log/slog"
	"slices"

	perrors "github.com/abgdnv/superstore/internal/errors"
)

// RoleCustomer is the base role granted to every customer.
const RoleCustomer = "CUSTOMER"

// Principal is the authenticated caller.
type Principal struct {
	Name  string
	Roles []string
}

// HasRole reports whether the principal was granted role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Port resolves the name of the caller on whose behalf a request runs.
type Port interface {
	CurrentPrincipalName(ctx context.Context) (string, error)
}

// ContextPort implements Port by reading the principal placed in the context
// by the authentication middleware.
type ContextPort struct{}

func (ContextPort) CurrentPrincipalName(ctx context.Context) (string, error) {
	p, ok := FromContext(ctx)
	if !ok || p.Name == "" {
		return "", perrors.ErrUnauthenticated
	}
	return p.Name, nil
}

// LogAttrs adds the principal name to log records. It matches logger.AttrExtractor.
func LogAttrs(ctx context.Context) []slog.Attr {
	if p, ok := FromContext(ctx); ok && p.Name != "" {
		return []slog.Attr{slog.String("principal", p.Name)}
	}
	return nil
}
