package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateID is returned when two scenarios share an id.
var ErrDuplicateID = errors.New("duplicate scenario id")

// ErrUnknownScenario is returned when a scenario id is not in the catalog.
var ErrUnknownScenario = errors.New("unknown scenario")

// ErrUnknownCategory is returned when a filter names a category the catalog
// does not contain.
var ErrUnknownCategory = errors.New("unknown category")

// Catalog is an ordered, immutable collection of scenarios.
type Catalog struct {
	version   string
	scenarios []Scenario
	byID      map[string]int
}

// New builds a catalog from scenarios, preserving their order.
func New(version string, scenarios []Scenario) (*Catalog, error) {
	c := &Catalog{
		version:   version,
		scenarios: make([]Scenario, len(scenarios)),
		byID:      make(map[string]int, len(scenarios)),
	}
	copy(c.scenarios, scenarios)
	for i, s := range c.scenarios {
		if _, exists := c.byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		c.byID[s.ID] = i
	}
	return c, nil
}

// Version returns the semantic version of the dataset.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.scenarios)
}

// Scenarios returns the scenarios in catalog order. The slice must not be
// modified.
func (c *Catalog) Scenarios() []Scenario {
	if c == nil {
		return nil
	}
	return c.scenarios
}

// Get returns the scenario with the given id.
func (c *Catalog) Get(id string) (Scenario, error) {
	if c != nil {
		if i, ok := c.byID[id]; ok {
			return c.scenarios[i], nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
}

// Has reports whether the catalog contains id.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.Scenarios() {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// Filter narrows a catalog. Zero-valued fields match everything.
type Filter struct {
	Sport    Sport
	Level    Level
	Category string
	Position Position
}

// IsZero reports whether the filter matches every scenario.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// ParseFilter builds a Filter from user input. Sport and level are
// lowercased and position uppercased before validation; empty strings leave
// the field unset.
func ParseFilter(sport, level, category, position string) (Filter, error) {
	f := Filter{
		Sport:    Sport(strings.ToLower(strings.TrimSpace(sport))),
		Level:    Level(strings.ToLower(strings.TrimSpace(level))),
		Category: strings.TrimSpace(category),
		Position: Position(strings.ToUpper(strings.TrimSpace(position))),
	}
	if f.Sport != "" && !f.Sport.Valid() {
		return Filter{}, fmt.Errorf("unknown sport %q", sport)
	}
	if f.Level != "" && !f.Level.Valid() {
		return Filter{}, fmt.Errorf("unknown level %q", level)
	}
	if f.Position != "" && !f.Position.Valid() {
		return Filter{}, fmt.Errorf("unknown position %q", position)
	}
	return f, nil
}

// CheckFilter rejects a filter whose category matches no scenario in c.
func (c *Catalog) CheckFilter(f Filter) error {
	if f.Category == "" {
		return nil
	}
	cats := c.Categories()
	for _, name := range cats {
		if strings.EqualFold(name, f.Category) {
			return nil
		}
	}
	return fmt.Errorf("%w %q (known: %s)", ErrUnknownCategory, f.Category, strings.Join(cats, ", "))
}

// Matches reports whether s passes the filter. Category matching is
// case-insensitive.
func (f Filter) Matches(s Scenario) bool {
	if f.Sport != "" && s.Sport != f.Sport {
		return false
	}
	if f.Level != "" && s.Level != f.Level {
		return false
	}
	if f.Category != "" && !strings.EqualFold(s.Category, f.Category) {
		return false
	}
	if f.Position != "" && s.Position != f.Position {
		return false
	}
	return true
}

// Filter returns a new catalog holding only matching scenarios, in order.
func (c *Catalog) Filter(f Filter) *Catalog {
	if f.IsZero() {
		return c
	}
	out := &Catalog{version: c.Version(), byID: make(map[string]int)}
	for _, s := range c.Scenarios() {
		if f.Matches(s) {
			out.byID[s.ID] = len(out.scenarios)
			out.scenarios = append(out.scenarios, s)
		}
	}
	return out
}
