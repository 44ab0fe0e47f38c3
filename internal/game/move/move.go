// Package move holds the read-only battle content: the move catalog, the
// type-effectiveness chart, and roster records, plus their YAML loaders.
package move

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/effect"
)

// ErrUnknownMove is returned when a move name is not in the catalog.
var ErrUnknownMove = errors.New("unknown move")

// Definition is one catalog move. It is immutable once built.
type Definition struct {
	Name  string
	Type  string
	Power int
	// Dice is the "NDM" damage dice specification; malformed values roll 0.
	Dice    string
	Effects *effect.RequirementSet
}

// Record is the raw, loosely formatted move row as authored in content files.
type Record struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Power   string   `yaml:"power"`
	Dice    string   `yaml:"dice"`
	Bonuses []string `yaml:"bonuses"`
}

// DefaultDice is used when a record omits its dice specification.
const DefaultDice = "0D0"

// Build converts a raw record into a Definition. Unparsable power becomes 0
// and bonus text becomes a RequirementSet.
//
// Postcondition: Returns an error only when Name is empty.
func (r Record) Build() (Definition, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return Definition{}, fmt.Errorf("move record: name must not be empty")
	}
	d := strings.TrimSpace(r.Dice)
	if d == "" {
		d = DefaultDice
	}
	return Definition{
		Name:    name,
		Type:    strings.TrimSpace(r.Type),
		Power:   ParsePower(r.Power),
		Dice:    d,
		Effects: effect.ParseRequirements(r.Bonuses...),
	}, nil
}

// ParsePower returns the base power in s, or 0 unless s is an unsigned
// decimal number.
func ParsePower(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Catalog maps move names to definitions.
type Catalog struct {
	moves map[string]Definition
}

// NewCatalog builds a Catalog; the first definition of a duplicated name wins.
func NewCatalog(defs ...Definition) *Catalog {
	c := &Catalog{moves: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := c.moves[d.Name]; dup {
			continue
		}
		c.moves[d.Name] = d
	}
	return c
}

// Get returns the definition for name.
//
// Postcondition: Returns an error wrapping ErrUnknownMove if name is absent.
func (c *Catalog) Get(name string) (Definition, error) {
	d, ok := c.moves[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return d, nil
}

// Len returns the number of moves in the catalog.
func (c *Catalog) Len() int { return len(c.moves) }

// Names returns every move name in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.moves))
	for n := range c.moves {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Describe returns a short human-readable summary of a move.
func (d Definition) Describe() string {
	return fmt.Sprintf("%s\nType: %s | Power: %d | Dice: %s", d.Name, d.Type, d.Power, d.Dice)
}
