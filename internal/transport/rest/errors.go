package rest

import (
	"errors"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/store"
	"github.com/abgdnv/superstore/pkg/web"
)

// BasicRealm is announced in WWW-Authenticate challenges.
const BasicRealm = "superstore"

// respondServiceError maps a service error to its HTTP status and writes an error body.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()
	var validationErr *perrors.ValidationError

	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		logger.WarnContext(ctx, "Product not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, notFoundMessage(err))
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "Product rejected", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, perrors.ErrUnauthenticated):
		challenge(w)
		web.RespondError(w, logger, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, perrors.ErrAccessDenied):
		logger.WarnContext(ctx, "Access denied", "error", err)
		web.RespondError(w, logger, http.StatusForbidden, "Access denied")
	case errors.Is(err, store.ErrUnavailable):
		logger.ErrorContext(ctx, "Product store unavailable", "error", err)
		web.RespondError(w, logger, http.StatusServiceUnavailable, "Service is temporarily unavailable")
	default:
		logger.ErrorContext(ctx, "Unexpected error", "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func notFoundMessage(err error) string {
	var notFound *perrors.ProductNotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	return "Product not found"
}

func challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+BasicRealm+`"`)
}
