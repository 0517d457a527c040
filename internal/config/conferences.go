package config

import (
	"fmt"
	"sort"
)

// Conference describes one known conference: its key, display name, the
// sports-reference school slugs of its member teams, and the subdirectory
// its artifacts live under.
type Conference struct {
	Key        string
	Name       string
	TeamSlugs  []string
	DataSubdir string
}

// Registry maps conference keys to their descriptors. It is built once and
// passed into the pipeline explicitly; nothing mutates it after construction.
type Registry struct {
	conferences map[string]Conference
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(conferences ...Conference) *Registry {
	m := make(map[string]Conference, len(conferences))
	for _, c := range conferences {
		m[c.Key] = c
	}
	return &Registry{conferences: m}
}

// Lookup returns the descriptor for a conference key.
func (r *Registry) Lookup(key string) (Conference, error) {
	conf, ok := r.conferences[key]
	if !ok {
		return Conference{}, fmt.Errorf("unknown conference %q (known: %v)", key, r.Keys())
	}
	return conf, nil
}

// Keys returns all known conference keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.conferences))
	for k := range r.conferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry returns the conferences the pipeline knows out of the box.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Conference{
			Key:  "sun-belt",
			Name: "Sun Belt Conference",
			TeamSlugs: []string{
				"appalachian-state",
				"arkansas-state",
				"coastal-carolina",
				"georgia-southern",
				"georgia-state",
				"james-madison",
				"louisiana-lafayette",
				"louisiana-monroe",
				"marshall",
				"old-dominion",
				"south-alabama",
				"southern-mississippi",
				"texas-state",
				"troy",
			},
			DataSubdir: "sun_belt",
		},
	)
}
