package vitals

import "codeberg.org/mutker/vitalstats/internal/units"

// Metric names provided by the standard catalogue.
const (
	CPULoad   = "cpu_load"
	CPUIdle   = "cpu_idle"
	CPUTemp   = "cpu_temp"
	MemAvail  = "mem_avail"
	DiskAvail = "disk_avail"
)

// Definition describes how to calculate one observation. Evaluate reads live
// system state and takes no arguments.
type Definition struct {
	Name        string
	Evaluate    func() (float64, error)
	OutputUnit  units.Unit
	OutputGroup units.Group
}

// Source exposes the operating system facilities the catalogue reads.
type Source interface {
	// LoadAvg returns the 1, 5 and 15 minute load averages.
	LoadAvg() (LoadAvg, error)
	// CPUTimes returns cumulative CPU time counters, aggregated across all
	// CPUs or one entry per CPU.
	CPUTimes(perCPU bool) ([]CPUTimes, error)
	CPUCount() (int, error)
	Temperatures() ([]Temperature, error)
	AvailableMemory() (uint64, error)
	DiskFree(path string) (uint64, error)
}

type (
	LoadAvg struct {
		Load1, Load5, Load15 float64
	}

	// CPUTimes are cumulative seconds since boot.
	CPUTimes struct {
		CPU    string
		User   float64
		System float64
		Idle   float64
	}

	Temperature struct {
		SensorKey string
		Celsius   float64
	}
)
