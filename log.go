package meshcache

import (
	"context"
	"log/slog"
)

// levelHandler drops records below a runtime-adjustable level before they
// reach the wrapped handler.
type levelHandler struct {
	next  slog.Handler
	level slog.Leveler
}

func newLevelHandler(next slog.Handler, level slog.Leveler) *levelHandler {
	return &levelHandler{next: next, level: level}
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.next.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newLevelHandler(h.next.WithAttrs(attrs), h.level)
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return newLevelHandler(h.next.WithGroup(name), h.level)
}
