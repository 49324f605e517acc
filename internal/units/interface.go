package units

import (
	"fmt"
	"strconv"
)

// Converter converts tagged values into the unit a unit system designates
// for the value's group.
type Converter interface {
	Convert(vt ValueTuple, target System) (ValueTuple, error)
}

type (
	// Unit names a concrete unit, e.g. "degree_C".
	Unit string

	// Group names a category of compatible units, e.g. "group_data".
	Group string

	// System identifies a unit system. Values match the usUnits field of
	// host records.
	System int
)

const (
	US       System = 0x01
	Metric   System = 0x10
	MetricWX System = 0x11
)

const (
	GroupCount       Group = "group_count"
	GroupPercent     Group = "group_percent"
	GroupTemperature Group = "group_temperature"
	GroupData        Group = "group_data"
)

const (
	Count    Unit = "count"
	Percent  Unit = "percent"
	DegreeC  Unit = "degree_C"
	DegreeF  Unit = "degree_F"
	Bit      Unit = "bit"
	Byte     Unit = "byte"
	Kilobyte Unit = "kilobyte"
	Megabyte Unit = "megabyte"
	Gigabyte Unit = "gigabyte"
)

func (s System) String() string {
	switch s {
	case US:
		return "US"
	case Metric:
		return "METRIC"
	case MetricWX:
		return "METRICWX"
	default:
		return "0x" + strconv.FormatInt(int64(s), 16)
	}
}

// ParseSystem accepts a system name ("US", "METRIC", "METRICWX") or its
// numeric value.
func ParseSystem(s string) (System, error) {
	switch s {
	case "US", "us":
		return US, nil
	case "METRIC", "metric":
		return Metric, nil
	case "METRICWX", "metricwx":
		return MetricWX, nil
	}

	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, errFactory.WithData(ErrUnknownSystem, s)
	}

	return System(n), nil
}

// ValueTuple is a value tagged with its unit and unit group. Valid is false
// when the value is absent.
type ValueTuple struct {
	Value float64
	Valid bool
	Unit  Unit
	Group Group
}

// NewValueTuple returns a present value.
func NewValueTuple(value float64, unit Unit, group Group) ValueTuple {
	return ValueTuple{Value: value, Valid: true, Unit: unit, Group: group}
}

// Missing returns an absent value in the given unit.
func Missing(unit Unit, group Group) ValueTuple {
	return ValueTuple{Unit: unit, Group: group}
}

func (vt ValueTuple) String() string {
	if !vt.Valid {
		return fmt.Sprintf("(None, %s, %s)", vt.Unit, vt.Group)
	}
	return fmt.Sprintf("(%g, %s, %s)", vt.Value, vt.Unit, vt.Group)
}
