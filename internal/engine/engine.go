package engine

import (
	"context"
	"time"

	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Sink receives archive records after every subscriber has seen them.
type Sink interface {
	Store(ctx context.Context, rec *Record) error
}

type Config struct {
	LoopInterval    time.Duration
	ArchiveInterval time.Duration
	UnitSystem      units.System
}

// Engine emits a LOOP packet every LoopInterval and an ARCHIVE record at
// every ArchiveInterval boundary.
type Engine struct {
	bus         *Bus
	cfg         Config
	sinks       []Sink
	log         logger.Logger
	lastArchive time.Time
}

func New(bus *Bus, cfg Config, log logger.Logger) (*Engine, error) {
	if cfg.LoopInterval <= 0 {
		return nil, errFactory.WithData(ErrInvalidInterval, cfg.LoopInterval)
	}
	if cfg.ArchiveInterval < cfg.LoopInterval {
		return nil, errFactory.WithData(ErrInvalidInterval, cfg.ArchiveInterval)
	}

	return &Engine{
		bus: bus,
		cfg: cfg,
		log: log,
	}, nil
}

func (e *Engine) AddSink(s Sink) {
	e.sinks = append(e.sinks, s)
}

// Run drives the engine until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.LoopInterval)
	defer ticker.Stop()

	e.bus.Publish(LifecycleEvent{Type: StartUp})
	defer e.bus.Publish(LifecycleEvent{Type: ShutDown})

	e.lastArchive = time.Now().Truncate(e.cfg.ArchiveInterval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			e.Tick(ctx, now)
		}
	}
}

// Tick publishes one LOOP packet and, if an archive boundary has passed since
// the previous archive record, one ARCHIVE record.
func (e *Engine) Tick(ctx context.Context, now time.Time) {
	packet := NewRecord(binding.Loop, e.cfg.UnitSystem, now)
	e.bus.Publish(RecordEvent{Type: NewLoopPacket, Record: packet})
	e.report(packet)

	boundary := now.Truncate(e.cfg.ArchiveInterval)
	if e.lastArchive.IsZero() {
		e.lastArchive = boundary
		return
	}
	if !boundary.After(e.lastArchive) {
		return
	}
	e.lastArchive = boundary

	record := NewRecord(binding.Archive, e.cfg.UnitSystem, boundary)
	e.bus.Publish(RecordEvent{Type: NewArchiveRecord, Record: record})
	e.report(record)

	for _, s := range e.sinks {
		if err := s.Store(ctx, record); err != nil {
			e.log.ErrorWithCode(errFactory.Wrap(ErrStoreRecord, err)).
				Time("date_time", record.DateTime).
				Msg("Failed to store archive record")
		}
	}
}

func (e *Engine) report(rec *Record) {
	var ev *logger.LogEvent
	if rec.Context == binding.Loop {
		ev = e.log.Debug()
	} else {
		ev = e.log.Info()
	}

	fields := make(map[string]interface{}, len(rec.Values))
	for k, v := range rec.Values {
		fields[k] = v
	}

	ev.Str("context", string(rec.Context)).
		Time("date_time", rec.DateTime).
		Str("unit_system", rec.UnitSystem.String()).
		Fields(fields).
		Msg("")
}
