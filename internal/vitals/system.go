package vitals

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSource reads live host state through gopsutil.
type SystemSource struct{}

func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

func (*SystemSource) LoadAvg() (LoadAvg, error) {
	avg, err := load.Avg()
	if err != nil {
		return LoadAvg{}, err
	}
	return LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

func (*SystemSource) CPUTimes(perCPU bool) ([]CPUTimes, error) {
	stats, err := cpu.Times(perCPU)
	if err != nil {
		return nil, err
	}

	out := make([]CPUTimes, 0, len(stats))
	for _, s := range stats {
		out = append(out, CPUTimes{
			CPU:    s.CPU,
			User:   s.User,
			System: s.System,
			Idle:   s.Idle,
		})
	}
	return out, nil
}

func (*SystemSource) CPUCount() (int, error) {
	return cpu.Counts(true)
}

// Temperatures may return partial results alongside a warnings error when
// some sensors could not be read.
func (*SystemSource) Temperatures() ([]Temperature, error) {
	stats, err := host.SensorsTemperatures()

	out := make([]Temperature, 0, len(stats))
	for _, s := range stats {
		out = append(out, Temperature{SensorKey: s.SensorKey, Celsius: s.Temperature})
	}
	return out, err
}

func (*SystemSource) AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

func (*SystemSource) DiskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
