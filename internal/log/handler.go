package log

import (
	"context"
	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

var _ slog.Handler = (*enrichedHandler)(nil)

// enrichedHandler tags every record with the request id when one is
// present in the context.
type enrichedHandler struct {
	h slog.Handler
}

func newEnrichedHandler(h slog.Handler) enrichedHandler {
	return enrichedHandler{h: h}
}

func (eh enrichedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return eh.h.Enabled(ctx, level)
}

func (eh enrichedHandler) Handle(ctx context.Context, r slog.Record) error {
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		r.Add("request_id", slog.StringValue(reqID))
	}

	return eh.h.Handle(ctx, r)
}

func (eh enrichedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newEnrichedHandler(eh.h.WithAttrs(attrs))
}

func (eh enrichedHandler) WithGroup(name string) slog.Handler {
	return newEnrichedHandler(eh.h.WithGroup(name))
}
