// Package notifier delivers operator notifications through the structured logger.
package notifier

import (
	"context"
	"log/slog"

	"github.com/thanosshawn/shopAdmin/internal/core/ports"
)

// SlogNotifier writes each notification as one log record. Success and info
// messages are logged at info level, errors at error level.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger.With("component", "notifier")}
}

func (n *SlogNotifier) Notify(ctx context.Context, level ports.Level, message string) {
	lvl := slog.LevelInfo
	if level == ports.LevelError {
		lvl = slog.LevelError
	}
	n.logger.Log(ctx, lvl, message, "notification", string(level))
}
