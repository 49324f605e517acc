package evaluator

import (
	"sync"

	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
	"codeberg.org/mutker/vitalstats/internal/vitals"
)

const (
	outcomeOK     = "ok"
	outcomeAbsent = "absent"
)

// Evaluator calculates registered metrics and converts them into a target
// unit system. It never retries.
type Evaluator struct {
	registry  *vitals.Registry
	converter units.Converter
	observer  Observer
	log       logger.Logger

	mu sync.Mutex
	// failing holds metrics whose last evaluation failed and was reported.
	failing map[string]bool
}

func New(registry *vitals.Registry, converter units.Converter, log logger.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry:  registry,
		converter: converter,
		observer:  noopObserver{},
		log:       log,
		failing:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Registry() *vitals.Registry {
	return e.registry
}

// Raw evaluates name and tags the result with its declared unit and group.
func (e *Evaluator) Raw(name string) (units.ValueTuple, error) {
	def, err := e.registry.Lookup(name)
	if err != nil {
		return units.ValueTuple{}, err
	}

	raw, err := def.Evaluate()
	if err != nil {
		if !errors.HasCode(err, ErrSensorUnavailable) {
			err = errFactory.Wrap(ErrSensorUnavailable, err)
		}
		return units.ValueTuple{}, err
	}

	e.observer.ObserveValue(name, string(def.OutputUnit), raw)

	return units.NewValueTuple(raw, def.OutputUnit, def.OutputGroup), nil
}

// Tuple evaluates name and converts it into target. The returned tuple is
// invalid when the unit layer has no value.
func (e *Evaluator) Tuple(name string, target units.System) (units.ValueTuple, error) {
	raw, err := e.Raw(name)
	if err != nil {
		e.fail(name, err)
		return units.ValueTuple{}, err
	}

	e.log.Debug().
		Str("metric", name).
		Stringer("raw", raw).
		Msg("Evaluated metric")

	converted, err := e.converter.Convert(raw, target)
	if err != nil {
		if !errors.HasCode(err, ErrConversionUnavailable) {
			err = errFactory.Wrap(ErrConversionUnavailable, err)
		}
		e.fail(name, err)
		return units.ValueTuple{}, err
	}

	if !converted.Valid {
		e.observer.Observe(name, outcomeAbsent)
	} else {
		e.observer.Observe(name, outcomeOK)
	}
	e.recovered(name)

	return converted, nil
}

// Evaluate returns the value of name in target. ok is false when there is
// no value; such a value must not be inserted into a record.
func (e *Evaluator) Evaluate(name string, target units.System) (value float64, ok bool, err error) {
	vt, err := e.Tuple(name, target)
	if err != nil {
		return 0, false, err
	}
	return vt.Value, vt.Valid, nil
}

func (e *Evaluator) fail(name string, err error) {
	code := errors.CodeOf(err)
	e.observer.Observe(name, string(code))

	var appErr errors.Error
	if !errors.As(err, &appErr) {
		e.log.Warn().Err(err).Str("metric", name).Msg("Metric evaluation failed")
		return
	}

	// Unknown metrics are configuration mistakes and stay visible. Other
	// failures are reported once until the metric evaluates again.
	if code == ErrUnknownMetric || e.firstFailure(name) {
		e.log.WarnWithCode(appErr).Str("metric", name).Msg("Metric evaluation failed")
		return
	}
	e.log.Debug().
		Str("metric", name).
		Str("error_code", string(code)).
		Err(err).
		Msg("Metric skipped")
}

func (e *Evaluator) firstFailure(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failing[name] {
		return false
	}
	e.failing[name] = true
	return true
}

func (e *Evaluator) recovered(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.failing[name] {
		return
	}
	delete(e.failing, name)
	e.log.Info().Str("metric", name).Msg("Metric available again")
}

type noopObserver struct{}

func (noopObserver) Observe(string, string)               {}
func (noopObserver) ObserveValue(string, string, float64) {}
