package websocket

import (
	"context"
	"log/slog"
	"strings"
)

// LogHandler tees records at or above a level to connected browsers as
// "log" messages, then passes them on.
type LogHandler struct {
	next  slog.Handler
	ws    *WSManager
	level slog.Level
}

func NewLogHandler(next slog.Handler, ws *WSManager, level slog.Level) *LogHandler {
	return &LogHandler{next: next, ws: ws, level: level}
}

func (h *LogHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l) || l >= h.level
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		h.ws.BroadcastLog(r.Message, strings.ToLower(r.Level.String()))
	}
	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{next: h.next.WithAttrs(attrs), ws: h.ws, level: h.level}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{next: h.next.WithGroup(name), ws: h.ws, level: h.level}
}
