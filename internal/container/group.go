package container

// Group is a named view over containers sharing a group id. It does not own
// its members; toggling it flips each member's enabled flag in place.
type Group struct {
	id      string
	members []Container
}

// NewGroup creates a group view over members.
func NewGroup(id string, members []Container) *Group {
	return &Group{id: id, members: append([]Container(nil), members...)}
}

// ID returns the group id.
func (g *Group) ID() string { return g.id }

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Members returns the member containers.
func (g *Group) Members() []Container {
	return append([]Container(nil), g.members...)
}

// Enable enables every member.
func (g *Group) Enable() {
	for _, c := range g.members {
		c.SetEnabled(true)
	}
}

// Disable disables every member.
func (g *Group) Disable() {
	for _, c := range g.members {
		c.SetEnabled(false)
	}
}

// EnabledCount returns how many members are currently enabled.
func (g *Group) EnabledCount() int {
	n := 0
	for _, c := range g.members {
		if c.Enabled() {
			n++
		}
	}
	return n
}
