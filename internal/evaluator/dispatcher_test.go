package evaluator_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/evaluator"
	"codeberg.org/mutker/vitalstats/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapProvider struct {
	name   string
	values map[string]float64
	err    error
}

func (p *mapProvider) TryGet(name string, _ *engine.Record) (units.ValueTuple, error) {
	if p.err != nil {
		return units.ValueTuple{}, p.err
	}
	v, ok := p.values[name]
	if !ok {
		return units.ValueTuple{}, errors.New().WithData(errors.ErrUnknownType, name)
	}
	return units.NewValueTuple(v, units.Count, units.GroupCount), nil
}

func TestDispatcherGet(t *testing.T) {
	first := &mapProvider{name: "first", values: map[string]float64{"a": 1}}
	second := &mapProvider{name: "second", values: map[string]float64{"a": 10, "b": 2}}
	d := evaluator.NewDispatcher(first, second)

	t.Run("first provider claiming the name wins", func(t *testing.T) {
		vt, err := d.Get("a", nil)
		require.NoError(t, err)
		assert.InDelta(t, 1, vt.Value, 0)
	})

	t.Run("unknown type falls through", func(t *testing.T) {
		vt, err := d.Get("b", nil)
		require.NoError(t, err)
		assert.InDelta(t, 2, vt.Value, 0)
	})

	t.Run("nobody claims the name", func(t *testing.T) {
		_, err := d.Get("c", nil)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrUnknownMetric))
	})

	t.Run("other errors end the search", func(t *testing.T) {
		failing := &mapProvider{err: errors.New().Wrap(errors.ErrSensorUnavailable, fmt.Errorf("gone"))}
		d := evaluator.NewDispatcher(failing, second)
		_, err := d.Get("b", nil)
		assert.True(t, errors.HasCode(err, errors.ErrSensorUnavailable))
	})
}

func TestDispatcherRegistration(t *testing.T) {
	d := evaluator.NewDispatcher()
	a := &mapProvider{name: "a", values: map[string]float64{"x": 1}}
	b := &mapProvider{name: "b", values: map[string]float64{"x": 2}}
	lookalike := &mapProvider{name: "a", values: map[string]float64{"x": 1}}

	d.Append(a)
	d.Prepend(b)
	require.Equal(t, 2, d.Len())

	vt, err := d.Get("x", nil)
	require.NoError(t, err)
	assert.InDelta(t, 2, vt.Value, 0)

	// An equal but distinct instance is not the registered provider.
	assert.False(t, d.Remove(lookalike))
	assert.True(t, d.Contains(a))

	assert.True(t, d.Remove(b))
	assert.False(t, d.Contains(b))
	assert.False(t, d.Remove(b))

	vt, err = d.Get("x", nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, vt.Value, 0)
}
