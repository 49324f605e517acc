package binding

import (
	"slices"
	"strings"
)

// Set holds the resolved bindings of every metric. It is immutable once
// resolved.
type Set struct {
	names    []string
	contexts []Context
	bound    map[string][]Context
}

// Resolve computes the binding set for names (in order) from decls, a map
// from metric name to binding declaration. Metrics missing from decls get
// DefaultContexts, as do metrics whose declaration is nil. known lists the
// recognized contexts; nil means KnownContexts. Keys of decls are matched
// case-insensitively and must not collide.
func Resolve(names []string, decls map[string]any, known []Context) (*Set, error) {
	if known == nil {
		known = KnownContexts
	}

	byName := make(map[string]any, len(decls))
	for key, decl := range decls {
		name := strings.ToLower(strings.TrimSpace(key))
		if !slices.Contains(names, name) {
			return nil, errFactory.Wrap(ErrInvalidConfig, errFactory.WithData(ErrUnknownMetric, key))
		}
		if _, dup := byName[name]; dup {
			return nil, errFactory.Wrap(ErrInvalidConfig, errFactory.WithData(ErrDuplicateKey, name))
		}
		byName[name] = decl
	}

	s := &Set{
		names:    slices.Clone(names),
		contexts: slices.Clone(known),
		bound:    make(map[string][]Context, len(names)),
	}

	for _, name := range names {
		decl, ok := byName[name]
		if !ok || decl == nil {
			s.bound[name] = slices.Clone(DefaultContexts)
			continue
		}

		ctxs, err := Parse(decl)
		if err != nil {
			return nil, errFactory.Wrap(ErrInvalidConfig, err)
		}
		for _, ctx := range ctxs {
			if !slices.Contains(known, ctx) {
				return nil, errFactory.Wrap(ErrInvalidConfig, errFactory.WithData(ErrUnknownContext, struct {
					Metric  string
					Context Context
				}{name, ctx}))
			}
		}
		s.bound[name] = ctxs
	}

	return s, nil
}

// For returns the metrics bound to ctx in registry order.
func (s *Set) For(ctx Context) []string {
	if s == nil {
		return nil
	}

	var out []string
	for _, name := range s.names {
		if slices.Contains(s.bound[name], ctx) {
			out = append(out, name)
		}
	}
	return out
}

// Contexts returns the contexts name is bound to.
func (s *Set) Contexts(name string) []Context {
	if s == nil {
		return nil
	}
	return slices.Clone(s.bound[name])
}

// Active returns the recognized contexts with at least one bound metric.
func (s *Set) Active() []Context {
	if s == nil {
		return nil
	}

	var out []Context
	for _, ctx := range s.contexts {
		if len(s.For(ctx)) > 0 {
			out = append(out, ctx)
		}
	}
	return out
}

// Empty reports whether no metric is bound to any context.
func (s *Set) Empty() bool {
	return len(s.Active()) == 0
}
