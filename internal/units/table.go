package units

import (
	"math"

	"codeberg.org/mutker/vitalstats/internal/errors"
	"github.com/cockroachdb/apd/v3"
)

const decimalPrecision = 34

var errFactory = errors.New()

// Linear describes to = (from + Pre) * Mul / Div + Post. Factors are decimal
// strings so conversions are exact where the factors allow it. Empty fields
// take their neutral value.
type Linear struct {
	Pre  string
	Mul  string
	Div  string
	Post string
}

type linear struct {
	pre, mul, div, post apd.Decimal
}

// Table is a unit conversion table: the unit each system uses per group and
// the conversions between units.
type Table struct {
	systems     map[System]map[Group]Unit
	conversions map[Unit]map[Unit]linear
	ctx         *apd.Context
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		systems:     make(map[System]map[Group]Unit),
		conversions: make(map[Unit]map[Unit]linear),
		ctx:         apd.BaseContext.WithPrecision(decimalPrecision),
	}
}

// StandardTable returns the US, METRIC and METRICWX systems for the groups
// used by vital stats along with conversions between their units.
func StandardTable() *Table {
	t := NewTable()

	for _, sys := range []System{US, Metric, MetricWX} {
		t.SetUnit(sys, GroupCount, Count)
		t.SetUnit(sys, GroupPercent, Percent)
		t.SetUnit(sys, GroupData, Byte)
	}
	t.SetUnit(US, GroupTemperature, DegreeF)
	t.SetUnit(Metric, GroupTemperature, DegreeC)
	t.SetUnit(MetricWX, GroupTemperature, DegreeC)

	for _, c := range []struct {
		from, to Unit
		f        Linear
	}{
		{DegreeC, DegreeF, Linear{Mul: "9", Div: "5", Post: "32"}},
		{DegreeF, DegreeC, Linear{Pre: "-32", Mul: "5", Div: "9"}},
		{Byte, Bit, Linear{Mul: "8"}},
		{Bit, Byte, Linear{Div: "8"}},
		{Byte, Kilobyte, Linear{Div: "1000"}},
		{Byte, Megabyte, Linear{Div: "1000000"}},
		{Byte, Gigabyte, Linear{Div: "1000000000"}},
		{Kilobyte, Byte, Linear{Mul: "1000"}},
		{Megabyte, Byte, Linear{Mul: "1000000"}},
		{Gigabyte, Byte, Linear{Mul: "1000000000"}},
	} {
		// Factors above are literals; an error here is a programming error.
		if err := t.AddConversion(c.from, c.to, c.f); err != nil {
			panic(err)
		}
	}

	return t
}

// SetUnit designates the unit a system uses for a group.
func (t *Table) SetUnit(sys System, group Group, unit Unit) {
	if t.systems[sys] == nil {
		t.systems[sys] = make(map[Group]Unit)
	}
	t.systems[sys][group] = unit
}

// UnitFor returns the unit a system uses for a group.
func (t *Table) UnitFor(sys System, group Group) (Unit, bool) {
	units, ok := t.systems[sys]
	if !ok {
		return "", false
	}
	u, ok := units[group]
	return u, ok
}

// AddConversion registers a conversion between two units.
func (t *Table) AddConversion(from, to Unit, f Linear) error {
	var l linear
	for _, p := range []struct {
		dst *apd.Decimal
		src string
		def int64
	}{
		{&l.pre, f.Pre, 0},
		{&l.mul, f.Mul, 1},
		{&l.div, f.Div, 1},
		{&l.post, f.Post, 0},
	} {
		if p.src == "" {
			p.dst.SetInt64(p.def)
			continue
		}
		if _, _, err := p.dst.SetString(p.src); err != nil {
			return errFactory.Wrap(ErrInvalidFactor, err)
		}
	}
	if l.div.IsZero() {
		return errFactory.WithData(ErrInvalidFactor, "zero divisor")
	}

	if t.conversions[from] == nil {
		t.conversions[from] = make(map[Unit]linear)
	}
	t.conversions[from][to] = l

	return nil
}

// Convert converts vt into the unit target designates for vt's group.
// An absent or non-finite value converts to an absent value.
func (t *Table) Convert(vt ValueTuple, target System) (ValueTuple, error) {
	if _, ok := t.systems[target]; !ok {
		return ValueTuple{}, errFactory.Wrap(ErrConversionUnavailable,
			errFactory.WithData(ErrUnknownSystem, target))
	}

	unit, ok := t.UnitFor(target, vt.Group)
	if !ok {
		return ValueTuple{}, errFactory.WithData(ErrConversionUnavailable, struct {
			System System
			Group  Group
		}{target, vt.Group})
	}

	return t.ConvertTo(vt, unit)
}

// ConvertTo converts vt into unit.
func (t *Table) ConvertTo(vt ValueTuple, unit Unit) (ValueTuple, error) {
	if vt.Unit == unit {
		if vt.Valid && !isFinite(vt.Value) {
			return Missing(unit, vt.Group), nil
		}
		return vt, nil
	}

	l, ok := t.conversions[vt.Unit][unit]
	if !ok {
		return ValueTuple{}, errFactory.WithData(ErrConversionUnavailable, struct {
			From Unit
			To   Unit
		}{vt.Unit, unit})
	}

	if !vt.Valid || !isFinite(vt.Value) {
		return Missing(unit, vt.Group), nil
	}

	v, err := t.apply(l, vt.Value)
	if err != nil {
		return ValueTuple{}, errFactory.Wrap(ErrConversionUnavailable, err)
	}

	return NewValueTuple(v, unit, vt.Group), nil
}

func (t *Table) apply(l linear, value float64) (float64, error) {
	var d apd.Decimal
	if _, err := d.SetFloat64(value); err != nil {
		return 0, err
	}

	steps := []func(*apd.Decimal) (apd.Condition, error){
		func(d *apd.Decimal) (apd.Condition, error) { return t.ctx.Add(d, d, &l.pre) },
		func(d *apd.Decimal) (apd.Condition, error) { return t.ctx.Mul(d, d, &l.mul) },
		func(d *apd.Decimal) (apd.Condition, error) { return t.ctx.Quo(d, d, &l.div) },
		func(d *apd.Decimal) (apd.Condition, error) { return t.ctx.Add(d, d, &l.post) },
	}
	for _, step := range steps {
		if _, err := step(&d); err != nil {
			return 0, err
		}
	}

	return d.Float64()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
