package evaluator

import "codeberg.org/mutker/vitalstats/internal/units"

// Result is the outcome of evaluating one metric in a batch.
type Result struct {
	Name  string
	Value float64
	// Present is false when the metric failed or had no value.
	Present bool
	Err     error
}

// Batch holds results in request order.
type Batch []Result

// EvaluateBatch evaluates names sequentially in order. A failing metric is
// recorded in its Result and does not stop the remaining ones.
func (e *Evaluator) EvaluateBatch(names []string, target units.System) Batch {
	batch := make(Batch, 0, len(names))
	for _, name := range names {
		v, ok, err := e.Evaluate(name, target)
		batch = append(batch, Result{Name: name, Value: v, Present: ok, Err: err})
	}
	return batch
}

// Values returns the present values by name.
func (b Batch) Values() map[string]float64 {
	out := make(map[string]float64, len(b))
	for _, r := range b {
		if r.Present {
			out[r.Name] = r.Value
		}
	}
	return out
}

// Failures returns the results that ended in an error.
func (b Batch) Failures() []Result {
	var out []Result
	for _, r := range b {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
