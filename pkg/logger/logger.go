package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// AttrExtractor returns the attributes a context contributes to a log record.
type AttrExtractor func(ctx context.Context) []slog.Attr

// TraceID adds the trace_id of the active span.
func TraceID(ctx context.Context) []slog.Attr {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return []slog.Attr{slog.String("trace_id", span.SpanContext().TraceID().String())}
	}
	return nil
}

// RequestID adds the chi request_id.
func RequestID(ctx context.Context) []slog.Attr {
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return []slog.Attr{slog.String("request_id", reqID)}
	}
	return nil
}

// ContextHandler is a wrapper around slog.Handler that adds context information.
type ContextHandler struct {
	slog.Handler
	extractors []AttrExtractor
}

// NewContextHandler creates a new ContextHandler.
// Trace and request ids are always added; extra extractors run after them.
func NewContextHandler(handler slog.Handler, extra ...AttrExtractor) *ContextHandler {
	extractors := append([]AttrExtractor{TraceID, RequestID}, extra...)
	return &ContextHandler{
		Handler:    handler,
		extractors: extractors,
	}
}

// Handle processes a log record and adds context information.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, extract := range h.extractors {
		r.AddAttrs(extract(ctx)...)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		Handler:    h.Handler.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{
		Handler:    h.Handler.WithGroup(group),
		extractors: h.extractors,
	}
}
