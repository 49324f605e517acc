package vitals

// Registry is an ordered, immutable catalogue of metric definitions.
type Registry struct {
	defs  map[string]Definition
	names []string
}

// NewRegistry builds a registry from defs in the given order. Names must be
// unique and every definition needs an evaluate function.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make(map[string]Definition, len(defs)),
		names: make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if def.Name == "" || def.Evaluate == nil || def.OutputUnit == "" || def.OutputGroup == "" {
			return nil, errFactory.WithData(ErrInvalidDefinition, def.Name)
		}
		if _, ok := r.defs[def.Name]; ok {
			return nil, errFactory.WithData(ErrDuplicateMetric, def.Name)
		}
		r.defs[def.Name] = def
		r.names = append(r.names, def.Name)
	}

	return r, nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, errFactory.WithData(ErrUnknownMetric, name)
	}
	return def, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Names returns metric names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}
