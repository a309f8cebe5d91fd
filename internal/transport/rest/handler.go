// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/internal/service"
	"github.com/abgdnv/superstore/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// CreateHook runs before a product is created. A returned error aborts the request.
// The returned context replaces the request context for the create.
type CreateHook interface {
	BeforeCreate(ctx context.Context) (context.Context, error)
}

type Handler struct {
	service    service.ProductService
	validate   *validator.Validate
	createHook CreateHook
	logger     *slog.Logger
}

// NewHandler creates a new product Handler. createHook may be nil.
func NewHandler(service service.ProductService, validate *validator.Validate, createHook CreateHook, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		validate:   validate,
		createHook: createHook,
		logger:     logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the product routes relative to r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.FindAll)
	r.Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.FindByID)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := web.PathParam(r, "id")

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto product.Dto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	if h.createHook != nil {
		ctx, err := h.createHook.BeforeCreate(r.Context())
		if err != nil {
			respondServiceError(w, r, mLogger, err)
			return
		}
		r = r.WithContext(ctx)
	}

	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces the product with the ID from the path. An ID in the body is ignored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := web.PathParam(r, "id")
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	var dto product.Dto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}
	dto.ID = id

	updated, err := h.service.Update(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Delete removes a product and responds with its last state.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := web.PathParam(r, "id")

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, deleted)
}

// decodeAndValidate reads a product Dto from the body and checks the wire rules.
// It writes the 400 response itself and returns false when the body is rejected.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto *product.Dto) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondValidationErrors(w, mLogger, errorResponse)
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
