package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/pkg/auth"
	"github.com/abgdnv/superstore/pkg/web"
)

// CustomerAuthenticator checks Basic credentials against stored customers and
// completes token principals with the roles stored for them.
type CustomerAuthenticator interface {
	Authenticate(ctx context.Context, name, password string) (identity.Principal, error)
	Resolve(ctx context.Context, p identity.Principal) (identity.Principal, error)
}

// Authenticate is a middleware that resolves the caller from the Authorization header
// and stores it in the request context as an identity.Principal.
// Basic credentials are checked by customers. Bearer tokens are checked by verifier; a nil verifier disables them.
// A bearer principal holds the roles of its token and of its customer record.
// Requests without valid credentials get 401 with a Basic challenge.
func Authenticate(customers CustomerAuthenticator, verifier auth.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := resolvePrincipal(r, customers, verifier)
			if err != nil {
				if errors.Is(err, perrors.ErrUnauthenticated) || errors.Is(err, perrors.ErrInvalidCredentials) {
					logger.InfoContext(r.Context(), "Authentication failed", "error", err)
					challenge(w)
					web.RespondError(w, logger, http.StatusUnauthorized, "Authentication required")
					return
				}
				logger.ErrorContext(r.Context(), "Authentication error", "error", err)
				web.RespondError(w, logger, http.StatusInternalServerError, "An unexpected error occurred")
				return
			}
			ctx := identity.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolvePrincipal(r *http.Request, customers CustomerAuthenticator, verifier auth.Verifier) (identity.Principal, error) {
	if name, password, ok := r.BasicAuth(); ok {
		return customers.Authenticate(r.Context(), name, password)
	}

	authHeader := r.Header.Get("Authorization")
	tokenString, isBearer := strings.CutPrefix(authHeader, "Bearer ")
	if !isBearer || tokenString == "" || verifier == nil {
		return identity.Principal{}, perrors.ErrUnauthenticated
	}
	token, err := verifier.Verify(r.Context(), tokenString)
	if err != nil {
		return identity.Principal{}, errors.Join(perrors.ErrInvalidCredentials, err)
	}
	claims, err := auth.ClaimsFromToken(token)
	if err != nil {
		return identity.Principal{}, errors.Join(perrors.ErrInvalidCredentials, err)
	}
	return customers.Resolve(r.Context(), identity.Principal{Name: claims.Name, Roles: claims.Roles})
}
