package engine

import (
	"slices"
	"time"

	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Record is a LOOP packet or ARCHIVE record. Values are expressed in
// UnitSystem.
type Record struct {
	Context    binding.Context
	DateTime   time.Time
	UnitSystem units.System
	Values     map[string]float64
}

func NewRecord(ctx binding.Context, sys units.System, at time.Time) *Record {
	return &Record{
		Context:    ctx,
		DateTime:   at,
		UnitSystem: sys,
		Values:     make(map[string]float64),
	}
}

func (r *Record) Set(name string, value float64) {
	if r.Values == nil {
		r.Values = make(map[string]float64)
	}
	r.Values[name] = value
}

func (r *Record) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Keys returns the value names in sorted order.
func (r *Record) Keys() []string {
	var keys []string
	for k := range r.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
