package service

import (
	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/evaluator"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
)

// Config holds what the service needs besides its collaborators.
type Config struct {
	// Bindings maps metric names to binding declarations as read from the
	// [vitalstats] configuration section.
	Bindings map[string]any
	// Contexts lists the recognized record contexts. Nil means
	// binding.KnownContexts.
	Contexts []binding.Context
	// UnitSystem is used for on-demand queries made without a record.
	UnitSystem units.System
}

// Service adds vital statistics to the records published on an engine bus.
type Service struct {
	cfg        Config
	eval       *evaluator.Evaluator
	dispatcher *evaluator.Dispatcher
	groups     *units.ObsGroups
	log        logger.Logger

	state    State
	err      error
	bindings *binding.Set
	subs     []engine.SubscriptionID
	bus      *engine.Bus
	provider *Provider
	system   units.System
}

func New(
	cfg Config,
	eval *evaluator.Evaluator,
	dispatcher *evaluator.Dispatcher,
	groups *units.ObsGroups,
	log logger.Logger,
) *Service {
	sys := cfg.UnitSystem
	if sys == 0 {
		sys = units.US
	}

	return &Service{
		cfg:        cfg,
		eval:       eval,
		dispatcher: dispatcher,
		groups:     groups,
		log:        log,
		system:     sys,
	}
}

func (s *Service) State() State {
	return s.state
}

// Err returns the configuration error that made the service inactive.
func (s *Service) Err() error {
	return s.err
}

// Bindings returns the resolved binding set, or nil when not running.
func (s *Service) Bindings() *binding.Set {
	return s.bindings
}

// Provider returns the on-demand provider appended to the dispatcher, or nil
// when not running.
func (s *Service) Provider() *Provider {
	return s.provider
}

// Start registers observation groups, resolves bindings and subscribes to
// the record events of every context that has a bound metric. A
// configuration error leaves the service inactive and is returned. Calling
// Start again while running has no effect; a stopped service cannot be
// restarted.
func (s *Service) Start(bus *engine.Bus) error {
	switch s.state {
	case Unconfigured:
	case Inactive:
		return s.err
	case Stopped:
		return errFactory.WithData(ErrInvalidState, struct {
			From State
			To   State
		}{Stopped, Active})
	default:
		return nil
	}

	registry := s.eval.Registry()
	names := registry.Names()

	bindings, err := binding.Resolve(names, s.cfg.Bindings, s.cfg.Contexts)
	if err != nil {
		s.state = Inactive
		s.err = err
		var appErr errors.Error
		if errors.As(err, &appErr) {
			s.log.ErrorWithCode(appErr).Msg("Vital statistics disabled")
		} else {
			s.log.Error().Err(err).Msg("Vital statistics disabled")
		}
		return err
	}

	for _, name := range names {
		def, _ := registry.Lookup(name)
		s.groups.Register(name, def.OutputGroup)
	}

	s.bindings = bindings
	s.bus = bus

	for _, ctx := range bindings.Active() {
		evt, ok := engine.EventTypeFor(ctx)
		if !ok {
			// Records of this context are only augmented through Augment.
			s.log.Warn().Str("context", string(ctx)).Msg("No record event for context")
			continue
		}
		s.subs = append(s.subs, bus.Subscribe(evt, s.handle))
	}

	s.provider = &Provider{svc: s}
	s.dispatcher.Append(s.provider)

	if bindings.Empty() {
		s.state = Idle
		s.log.Info().Msg("No vital statistics bound to any record context")
		return nil
	}

	s.state = Active
	for _, ctx := range bindings.Active() {
		s.log.Info().
			Str("context", string(ctx)).
			Strs("metrics", bindings.For(ctx)).
			Msg("Vital statistics bound")
	}

	return nil
}

// Stop undoes Start. Calling it on a service that is not running has no
// effect.
func (s *Service) Stop() {
	if !s.state.Running() {
		return
	}

	for _, id := range s.subs {
		s.bus.Unsubscribe(id)
	}
	s.subs = nil
	s.bus = nil

	if !s.dispatcher.Remove(s.provider) {
		s.log.Warn().Msg("Vital statistics provider was already removed")
	}
	s.provider = nil

	for _, name := range s.eval.Registry().Names() {
		s.groups.Unregister(name)
	}

	s.bindings = nil
	s.state = Stopped
	s.log.Debug().Msg("Vital statistics stopped")
}

// Augment inserts the metrics bound to rec's context into rec. Metrics
// without a value add no key.
func (s *Service) Augment(rec *engine.Record) {
	if rec == nil || s.state != Active {
		return
	}

	names := s.bindings.For(rec.Context)
	if len(names) == 0 {
		return
	}

	for _, r := range s.eval.EvaluateBatch(names, rec.UnitSystem) {
		if r.Present {
			rec.Set(r.Name, r.Value)
		}
	}
}

func (s *Service) handle(e engine.Event) {
	if re, ok := e.(engine.RecordEvent); ok {
		s.Augment(re.Record)
	}
}
