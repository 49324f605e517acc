package service

import (
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Provider answers on-demand queries for registry metrics in the unit system
// of the record they are asked about.
type Provider struct {
	svc *Service
}

func (p *Provider) TryGet(name string, rec *engine.Record) (units.ValueTuple, error) {
	if !p.svc.eval.Registry().Has(name) {
		return units.ValueTuple{}, errFactory.WithData(ErrUnknownType, name)
	}

	sys := p.svc.system
	if rec != nil {
		sys = rec.UnitSystem
	}

	return p.svc.eval.Tuple(name, sys)
}
