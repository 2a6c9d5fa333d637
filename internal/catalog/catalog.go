package catalog

import (
	"maps"
	"slices"
)

// Entry is a named outcome of a Catalog
type Entry struct {
	Name    string
	Outcome Outcome
}

// Catalog maps component names to the outcome of loading them. Iteration
// helpers always return entries sorted by name.
type Catalog struct {
	entries map[string]Outcome
}

// NewCatalog returns an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Outcome)}
}

// Add records the outcome of name, replacing any previous one. It reports
// whether an outcome was replaced.
func (c *Catalog) Add(name string, outcome Outcome) bool {
	_, replaced := c.entries[name]
	c.entries[name] = outcome
	return replaced
}

// Get returns the outcome recorded for name
func (c *Catalog) Get(name string) (Outcome, bool) {
	outcome, ok := c.entries[name]
	return outcome, ok
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Names returns the component names in ascending order
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// Entries returns every entry sorted by name
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, name := range c.Names() {
		entries = append(entries, Entry{Name: name, Outcome: c.entries[name]})
	}
	return entries
}
