package vitals

import "strings"

// Variant selects how cpu_load and cpu_idle are normalized.
type Variant string

const (
	// Aggregate reports the raw 5 minute load average and the idle share of
	// the aggregate CPU counters.
	Aggregate Variant = "aggregate"
	// PerCPU divides the load average by the logical CPU count and reports
	// the mean of the per-CPU idle shares.
	PerCPU Variant = "per_cpu"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return Aggregate, nil
	case Aggregate, PerCPU:
		return v, nil
	default:
		return "", errFactory.WithData(ErrInvalidVariant, s)
	}
}
