package orbitsdk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"
)

// levelHandler drops records below level before they reach the wrapped handler
type levelHandler struct {
	level slog.Leveler
	slog.Handler
}

func newLevelLogger(logger *slog.Logger, level slog.Leveler) *slog.Logger {
	return slog.New(&levelHandler{level: level, Handler: logger.Handler()})
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.Handler.Enabled(ctx, level)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, Handler: h.Handler.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, Handler: h.Handler.WithGroup(name)}
}

// reqLogger routes imroc/req's internal logging into slog
type reqLogger struct {
	log *slog.Logger
}

func (l *reqLogger) Errorf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "http")
}

func (l *reqLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...), "component", "http")
}

func (l *reqLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "http")
}

var _ req.Logger = (*reqLogger)(nil)
