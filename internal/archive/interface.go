package archive

import (
	"context"
	"time"

	"codeberg.org/mutker/vitalstats/internal/engine"
)

// Archive persists archive records. It satisfies engine.Sink.
type Archive interface {
	Store(ctx context.Context, rec *engine.Record) error
	Close() error
}

// Reader reads stored records back.
type Reader interface {
	// Records returns the records with from <= timestamp < to, oldest first.
	Records(ctx context.Context, from, to time.Time) ([]*engine.Record, error)
}
