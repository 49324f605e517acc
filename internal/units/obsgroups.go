package units

// ObsGroups records which unit group each observation type belongs to.
// It is not safe for concurrent mutation; register during startup.
type ObsGroups struct {
	groups map[string]Group
	order  []string
}

func NewObsGroups() *ObsGroups {
	return &ObsGroups{groups: make(map[string]Group)}
}

// Register sets the group of obsType, replacing any earlier registration.
func (o *ObsGroups) Register(obsType string, group Group) {
	if _, ok := o.groups[obsType]; !ok {
		o.order = append(o.order, obsType)
	}
	o.groups[obsType] = group
}

// Unregister removes obsType. It reports whether obsType was registered.
func (o *ObsGroups) Unregister(obsType string) bool {
	if _, ok := o.groups[obsType]; !ok {
		return false
	}
	delete(o.groups, obsType)
	for i, name := range o.order {
		if name == obsType {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

func (o *ObsGroups) Group(obsType string) (Group, bool) {
	g, ok := o.groups[obsType]
	return g, ok
}

// Types returns registered observation types in registration order.
func (o *ObsGroups) Types() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}
