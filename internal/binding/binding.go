package binding

import (
	"fmt"
	"slices"
	"strings"
)

// Context names a consumer of metric values, e.g. LOOP packets or ARCHIVE
// records.
type Context string

const (
	Loop    Context = "loop"
	Archive Context = "archive"
)

// DefaultContexts is the binding of a metric with no configuration entry.
var DefaultContexts = []Context{Archive}

// KnownContexts are the contexts recognized when none are given to Resolve.
var KnownContexts = []Context{Loop, Archive}

// Parse normalizes one binding declaration. A declaration is a string of
// comma separated labels or a list of labels. Labels are trimmed and lower
// cased, empty labels are dropped and duplicates collapse. An empty string
// binds to nothing.
func Parse(decl any) ([]Context, error) {
	var labels []string

	switch v := decl.(type) {
	case nil:
		return nil, nil
	case string:
		labels = strings.Split(v, ",")
	case []string:
		labels = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errFactory.WithData(ErrInvalidLabel, fmt.Sprintf("%v (%T)", item, item))
			}
			labels = append(labels, s)
		}
	default:
		return nil, errFactory.WithData(ErrInvalidLabel, fmt.Sprintf("%v (%T)", decl, decl))
	}

	out := make([]Context, 0, len(labels))
	for _, l := range labels {
		// a list element may itself be comma separated
		for _, part := range strings.Split(l, ",") {
			ctx := Context(strings.ToLower(strings.TrimSpace(part)))
			if ctx == "" || slices.Contains(out, ctx) {
				continue
			}
			out = append(out, ctx)
		}
	}

	return out, nil
}
