package vitals_test

import (
	"fmt"

	"codeberg.org/mutker/vitalstats/internal/vitals"
)

type fakeSource struct {
	load     vitals.LoadAvg
	times    []vitals.CPUTimes
	perCPU   []vitals.CPUTimes
	count    int
	temps    []vitals.Temperature
	tempErr  error
	mem      uint64
	disk     map[string]uint64
	failAll  bool
	diskPath string
}

func healthySource() *fakeSource {
	return &fakeSource{
		load:  vitals.LoadAvg{Load1: 0.5, Load5: 1.2, Load15: 0.9},
		times: []vitals.CPUTimes{{CPU: "cpu-total", User: 300, System: 100, Idle: 600}},
		perCPU: []vitals.CPUTimes{
			{CPU: "cpu0", User: 100, System: 100, Idle: 800},
			{CPU: "cpu1", User: 300, System: 100, Idle: 600},
		},
		count: 4,
		temps: []vitals.Temperature{
			{SensorKey: "nvme_composite", Celsius: 38},
			{SensorKey: "cpu_thermal", Celsius: 47.2},
		},
		mem:  2 << 30,
		disk: map[string]uint64{"/": 20 << 30},
	}
}

var errBroken = fmt.Errorf("facility broken")

func (f *fakeSource) LoadAvg() (vitals.LoadAvg, error) {
	if f.failAll {
		return vitals.LoadAvg{}, errBroken
	}
	return f.load, nil
}

func (f *fakeSource) CPUTimes(perCPU bool) ([]vitals.CPUTimes, error) {
	if f.failAll {
		return nil, errBroken
	}
	if perCPU {
		return f.perCPU, nil
	}
	return f.times, nil
}

func (f *fakeSource) CPUCount() (int, error) {
	if f.failAll {
		return 0, errBroken
	}
	return f.count, nil
}

func (f *fakeSource) Temperatures() ([]vitals.Temperature, error) {
	if f.failAll {
		return nil, errBroken
	}
	return f.temps, f.tempErr
}

func (f *fakeSource) AvailableMemory() (uint64, error) {
	if f.failAll {
		return 0, errBroken
	}
	return f.mem, nil
}

func (f *fakeSource) DiskFree(path string) (uint64, error) {
	f.diskPath = path
	if f.failAll {
		return 0, errBroken
	}
	free, ok := f.disk[path]
	if !ok {
		return 0, fmt.Errorf("no such mount %q", path)
	}
	return free, nil
}
