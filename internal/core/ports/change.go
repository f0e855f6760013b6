package ports

import (
	"context"
	"time"
)

// Change announces that the document stored under Key was rewritten.
type Change struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

// ChangeListener consumes store changes.
type ChangeListener interface {
	OnChange(ctx context.Context, c Change) error
}
