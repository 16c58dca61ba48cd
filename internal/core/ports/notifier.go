package ports

import (
	"context"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notifier delivers a short message to the operator.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}
