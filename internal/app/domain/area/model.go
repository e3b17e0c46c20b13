// Package area defines life-domain categories that scores accumulate into.
package area

import "strings"

// ID identifies an area. It is an opaque string so user-created custom areas
// integrate without special-casing against the built-in set.
type ID string

// Definition carries display metadata for one area.
type Definition struct {
	Value ID     `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// CustomArea is a user-created area persisted alongside the defaults.
type CustomArea struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Built-in areas every tracker starts with.
const (
	Development  ID = "development"
	Fitness      ID = "fitness"
	Finance      ID = "finance"
	Education    ID = "education"
	Health       ID = "health"
	Productivity ID = "productivity"
	Creativity   ID = "creativity"
)

// Defaults returns the built-in area set in display order.
func Defaults() []Definition {
	return []Definition{
		{Value: Development, Label: "Development", Color: "from-purple-500 to-pink-500"},
		{Value: Fitness, Label: "Fitness", Color: "from-orange-500 to-red-500"},
		{Value: Finance, Label: "Finance", Color: "from-green-500 to-emerald-500"},
		{Value: Education, Label: "Education", Color: "from-blue-500 to-cyan-500"},
		{Value: Health, Label: "Health", Color: "from-red-500 to-pink-500"},
		{Value: Productivity, Label: "Productivity", Color: "from-indigo-500 to-purple-500"},
		{Value: Creativity, Label: "Creativity", Color: "from-yellow-500 to-orange-500"},
	}
}

// Registry resolves area IDs to display metadata. Custom areas shadow
// built-ins with the same value.
type Registry struct {
	defs  []Definition
	index map[ID]int
}

// NewRegistry builds a registry from the defaults plus the given custom areas.
func NewRegistry(customs []CustomArea) *Registry {
	r := &Registry{index: make(map[ID]int)}
	for _, def := range Defaults() {
		r.add(def)
	}
	for _, c := range customs {
		value := ID(strings.TrimSpace(strings.ToLower(c.Name)))
		if value == "" {
			continue
		}
		r.add(Definition{Value: value, Label: c.Name, Color: c.Color})
	}
	return r
}

func (r *Registry) add(def Definition) {
	if i, ok := r.index[def.Value]; ok {
		r.defs[i] = def
		return
	}
	r.index[def.Value] = len(r.defs)
	r.defs = append(r.defs, def)
}

// All returns every known area in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup returns the definition for an ID. Unknown areas get a definition
// derived from the raw value so dynamic areas never fail display.
func (r *Registry) Lookup(id ID) Definition {
	if i, ok := r.index[id]; ok {
		return r.defs[i]
	}
	return Definition{Value: id, Label: string(id)}
}

// Known reports whether the ID belongs to a registered area.
func (r *Registry) Known(id ID) bool {
	_, ok := r.index[id]
	return ok
}
