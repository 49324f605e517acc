package evaluator

import (
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Provider answers scalar queries for observation types. A provider that does
// not know name returns an error with code ErrUnknownType so the next
// provider is asked.
type Provider interface {
	TryGet(name string, rec *engine.Record) (units.ValueTuple, error)
}

// Observer is notified of every evaluation outcome. Outcome is "ok",
// "absent" or the error code of the failure.
type Observer interface {
	Observe(metric, outcome string)
	ObserveValue(metric, unit string, raw float64)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		e.observer = o
	}
}
