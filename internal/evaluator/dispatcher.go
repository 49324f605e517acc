package evaluator

import (
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Dispatcher asks an ordered list of providers for a value and returns the
// first answer. Providers are compared by identity, so they should be
// pointers.
type Dispatcher struct {
	providers []Provider
}

func NewDispatcher(providers ...Provider) *Dispatcher {
	return &Dispatcher{providers: append([]Provider(nil), providers...)}
}

func (d *Dispatcher) Append(p Provider) {
	d.providers = append(d.providers, p)
}

func (d *Dispatcher) Prepend(p Provider) {
	d.providers = append([]Provider{p}, d.providers...)
}

// Remove removes the first occurrence of exactly p. It reports whether p was
// registered.
func (d *Dispatcher) Remove(p Provider) bool {
	for i, q := range d.providers {
		if q == p {
			d.providers = append(d.providers[:i:i], d.providers[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Dispatcher) Contains(p Provider) bool {
	for _, q := range d.providers {
		if q == p {
			return true
		}
	}
	return false
}

func (d *Dispatcher) Len() int {
	return len(d.providers)
}

// Get returns the first value a provider produces for name. Providers
// answering ErrUnknownType are skipped; any other error ends the search.
func (d *Dispatcher) Get(name string, rec *engine.Record) (units.ValueTuple, error) {
	for _, p := range d.providers {
		vt, err := p.TryGet(name, rec)
		if err == nil {
			return vt, nil
		}
		if !errors.HasCode(err, ErrUnknownType) {
			return units.ValueTuple{}, err
		}
	}
	return units.ValueTuple{}, errFactory.WithData(ErrUnknownMetric, name)
}
