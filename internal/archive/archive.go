package archive

import (
	"context"

	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/logger"
)

type noopArchive struct{}

// New returns the archive described by cfg. A disabled archive discards
// every record.
func New(cfg Config, log logger.Logger) (Archive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Archive disabled, using no-op archive")
		return noopArchive{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

func (noopArchive) Store(context.Context, *engine.Record) error { return nil }

func (noopArchive) Close() error { return nil }
