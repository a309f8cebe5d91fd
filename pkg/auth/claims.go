package auth

import (
	"errors"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	PreferredUsernameClaim = "preferred_username"
	RolesClaim             = "roles"
)

// ErrNoSubject is returned for tokens carrying neither a preferred username nor a subject.
var ErrNoSubject = errors.New("token has no subject")

// Claims are the identity claims read from a verified token.
type Claims struct {
	Name  string
	Roles []string
}

// ClaimsFromToken reads the caller name and roles from token.
// The name is the preferred_username claim, falling back to sub.
// Non-string entries of the roles claim are ignored.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	var c Claims
	var username string
	if err := token.Get(PreferredUsernameClaim, &username); err == nil && username != "" {
		c.Name = username
	} else if sub, ok := token.Subject(); ok && sub != "" {
		c.Name = sub
	} else {
		return Claims{}, ErrNoSubject
	}

	var roles []any
	if err := token.Get(RolesClaim, &roles); err == nil {
		for _, r := range roles {
			if role, ok := r.(string); ok {
				c.Roles = append(c.Roles, role)
			}
		}
	}
	return c, nil
}
