package vitals

import (
	"strings"

	"codeberg.org/mutker/vitalstats/internal/units"
)

const (
	DefaultSensorKey = "cpu_thermal"
	DefaultDiskPath  = "/"
)

// Options tune the standard catalogue.
type Options struct {
	Variant   Variant
	SensorKey string
	DiskPath  string
}

func DefaultOptions() Options {
	return Options{
		Variant:   Aggregate,
		SensorKey: DefaultSensorKey,
		DiskPath:  DefaultDiskPath,
	}
}

// Catalogue returns the five standard definitions reading from src.
func Catalogue(src Source, opts Options) []Definition {
	if opts.SensorKey == "" {
		opts.SensorKey = DefaultSensorKey
	}
	if opts.DiskPath == "" {
		opts.DiskPath = DefaultDiskPath
	}
	if opts.Variant == "" {
		opts.Variant = Aggregate
	}

	c := &calculator{src: src, opts: opts}

	return []Definition{
		{Name: CPULoad, Evaluate: c.cpuLoad, OutputUnit: units.Count, OutputGroup: units.GroupCount},
		{Name: CPUIdle, Evaluate: c.cpuIdle, OutputUnit: units.Percent, OutputGroup: units.GroupPercent},
		{Name: CPUTemp, Evaluate: c.cpuTemp, OutputUnit: units.DegreeC, OutputGroup: units.GroupTemperature},
		{Name: MemAvail, Evaluate: c.memAvail, OutputUnit: units.Byte, OutputGroup: units.GroupData},
		{Name: DiskAvail, Evaluate: c.diskAvail, OutputUnit: units.Byte, OutputGroup: units.GroupData},
	}
}

// NewStandardRegistry is NewRegistry over Catalogue.
func NewStandardRegistry(src Source, opts Options) (*Registry, error) {
	return NewRegistry(Catalogue(src, opts)...)
}

type calculator struct {
	src  Source
	opts Options
}

func (c *calculator) cpuLoad() (float64, error) {
	avg, err := c.src.LoadAvg()
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}

	if c.opts.Variant != PerCPU {
		return avg.Load5, nil
	}

	n, err := c.src.CPUCount()
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}
	if n <= 0 {
		return 0, errFactory.WithData(ErrSensorUnavailable, "no cpus reported")
	}

	return avg.Load5 / float64(n), nil
}

func (c *calculator) cpuIdle() (float64, error) {
	perCPU := c.opts.Variant == PerCPU

	times, err := c.src.CPUTimes(perCPU)
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}

	var sum float64
	var n int
	for _, t := range times {
		pct, ok := idlePercent(t)
		if !ok {
			continue
		}
		sum += pct
		n++
		if !perCPU {
			break
		}
	}
	if n == 0 {
		return 0, errFactory.WithData(ErrSensorUnavailable, "no cpu times")
	}

	return sum / float64(n), nil
}

func idlePercent(t CPUTimes) (float64, bool) {
	total := t.Idle + t.System + t.User
	if total <= 0 {
		return 0, false
	}
	return t.Idle / total * 100.0, true
}

func (c *calculator) cpuTemp() (float64, error) {
	temps, err := c.src.Temperatures()
	if err != nil && len(temps) == 0 {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}

	want := normalizeSensorKey(c.opts.SensorKey)
	for _, t := range temps {
		key := normalizeSensorKey(t.SensorKey)
		if key == want || strings.HasPrefix(key, want+"_") {
			return t.Celsius, nil
		}
	}

	return 0, errFactory.WithData(ErrSensorUnavailable, c.opts.SensorKey)
}

// hwmon names use underscores, thermal zone types use dashes.
func normalizeSensorKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}

func (c *calculator) memAvail() (float64, error) {
	avail, err := c.src.AvailableMemory()
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}
	return float64(avail), nil
}

func (c *calculator) diskAvail() (float64, error) {
	free, err := c.src.DiskFree(c.opts.DiskPath)
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorUnavailable, err)
	}
	return float64(free), nil
}
