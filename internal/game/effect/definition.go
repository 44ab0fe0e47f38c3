package effect

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stat names understood by the damage formula.
const (
	StatMoveStrength = "move_strength"
	StatDamage       = "damage"
)

// SleepSuppression is the move-strength delta a sleeping combatant receives,
// large enough to lose any exchange against an awake foe.
const SleepSuppression = -999

// PoisonStacksPerHP is how many poison counters cost one point of max HP.
const PoisonStacksPerHP = 3

// Kind is the closed set of effect behaviors. Adding a behavior means adding
// a Kind, not registering arbitrary code.
type Kind int

const (
	KindOther Kind = iota
	KindPoison
	KindSleep
	KindBurn
	KindParalyze
)

// String returns the lower-case kind name used in YAML files.
func (k Kind) String() string {
	switch k {
	case KindPoison:
		return "poison"
	case KindSleep:
		return "sleep"
	case KindBurn:
		return "burn"
	case KindParalyze:
		return "paralyze"
	default:
		return "other"
	}
}

// ParseKind resolves a kind name. The empty string maps to KindOther.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "other":
		return KindOther, nil
	case "poison":
		return KindPoison, nil
	case "sleep":
		return KindSleep, nil
	case "burn":
		return KindBurn, nil
	case "paralyze":
		return KindParalyze, nil
	default:
		return KindOther, fmt.Errorf("unknown effect kind %q", s)
	}
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes a kind as its name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Definition is the static behavior of one named effect.
type Definition struct {
	Name              string         `yaml:"name"`
	Kind              Kind           `yaml:"kind"`
	Description       string         `yaml:"description"`
	TurnModifiers     map[string]int `yaml:"turn_modifiers"`
	NextTurnModifiers map[string]int `yaml:"next_turn_modifiers"`
}

// Validate checks the definition's invariants.
func (d Definition) Validate() error {
	if NormalizeName(d.Name) == "" {
		return fmt.Errorf("effect definition: name must not be empty")
	}
	for _, mods := range []map[string]int{d.TurnModifiers, d.NextTurnModifiers} {
		for stat := range mods {
			if strings.TrimSpace(stat) == "" {
				return fmt.Errorf("effect %q: modifier stat must not be empty", d.Name)
			}
		}
	}
	return nil
}

// HasUpkeep reports whether the effect runs a once-per-round upkeep routine.
func (d Definition) HasUpkeep() bool {
	return d.Kind == KindPoison || d.Kind == KindSleep
}

// Upkeep is the outcome of one upkeep step: the new counter value, how much
// maximum HP to remove, whether the status ends, and the narrative lines.
type Upkeep struct {
	Counter   int
	MaxHPLoss int
	Cleared   bool
	Lines     []string
}

// RunUpkeep computes the upkeep step for a holder named holder whose counter
// for this effect is counter. It never mutates anything.
//
// Postcondition: Returns an error only for an inconsistent counter; callers
// report it and leave state unchanged.
func (d Definition) RunUpkeep(holder string, counter int) (Upkeep, error) {
	switch d.Kind {
	case KindPoison:
		if counter < 0 {
			return Upkeep{}, fmt.Errorf("poison counter for %s is negative (%d)", holder, counter)
		}
		next := counter + 1
		u := Upkeep{
			Counter: next,
			Lines:   []string{fmt.Sprintf("%s gains a poison counter (%d total).", holder, next)},
		}
		if next%PoisonStacksPerHP == 0 {
			u.MaxHPLoss = 1
		}
		return u, nil
	case KindSleep:
		if counter <= 0 {
			return Upkeep{Counter: 0, Cleared: true, Lines: []string{fmt.Sprintf("%s wakes up!", holder)}}, nil
		}
		next := counter - 1
		u := Upkeep{
			Counter: next,
			Lines:   []string{fmt.Sprintf("%s has %d sleep counters left.", holder, next)},
		}
		if next == 0 {
			u.Cleared = true
			u.Lines = append(u.Lines, fmt.Sprintf("%s wakes up!", holder))
		}
		return u, nil
	default:
		return Upkeep{}, fmt.Errorf("effect %q (%s) has no upkeep routine", d.Name, d.Kind)
	}
}

// CurrentTurnModifiers returns the stat deltas the effect contributes to the
// current turn given its counter. The returned map is owned by the caller.
func (d Definition) CurrentTurnModifiers(counter int) map[string]int {
	out := maps.Clone(d.TurnModifiers)
	if out == nil {
		out = make(map[string]int)
	}
	if d.Kind == KindSleep && counter > 0 {
		out[StatMoveStrength] += SleepSuppression
	}
	return out
}

// QueuedModifiers returns the stat deltas the effect queues for the holder's
// next turn. The returned map is owned by the caller.
func (d Definition) QueuedModifiers() map[string]int {
	out := maps.Clone(d.NextTurnModifiers)
	if out == nil {
		out = make(map[string]int)
	}
	return out
}

func (d Definition) clone() Definition {
	d.TurnModifiers = maps.Clone(d.TurnModifiers)
	d.NextTurnModifiers = maps.Clone(d.NextTurnModifiers)
	return d
}

// Builtins returns the effects every battle knows about.
func Builtins() []Definition {
	return []Definition{
		{Name: "poison", Kind: KindPoison, Description: "Gains a counter each round; every third counter costs 1 max HP."},
		{Name: "sleep", Kind: KindSleep, Description: "Cannot fight effectively until the sleep counters run out."},
		{Name: "burn", Kind: KindBurn, Description: "Deals less damage each turn.", TurnModifiers: map[string]int{StatDamage: -1}},
		{Name: "paralyze", Kind: KindParalyze, Description: "Paralyzed for the rest of the battle."},
	}
}

// Registry maps normalized effect names to definitions. It is immutable after
// construction and may be shared between battles.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a Registry from defs; a later definition with the same
// name replaces an earlier one.
//
// Postcondition: Returns a non-nil Registry or the first validation error.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		d = d.clone()
		d.Name = NormalizeName(d.Name)
		r.defs[d.Name] = d
	}
	return r, nil
}

// DefaultRegistry returns a Registry holding only the built-in effects.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins()...)
	if err != nil {
		panic("effect: built-in definitions are invalid: " + err.Error())
	}
	return r
}

// With returns a new Registry containing r's definitions overlaid with defs.
func (r *Registry) With(defs ...Definition) (*Registry, error) {
	all := make([]Definition, 0, len(r.defs)+len(defs))
	for _, name := range r.Names() {
		all = append(all, r.defs[name])
	}
	return NewRegistry(append(all, defs...)...)
}

// Get returns a copy of the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	d, ok := r.defs[NormalizeName(name)]
	if !ok {
		return Definition{}, false
	}
	return d.clone(), true
}

// KindOf returns the kind registered for name, or KindOther when unknown.
func (r *Registry) KindOf(name string) Kind {
	if d, ok := r.defs[NormalizeName(name)]; ok {
		return d.Kind
	}
	return KindOther
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// LoadDirectory reads every *.yaml or *.yml file in dir as one Definition.
// Unknown fields and unknown kinds are rejected.
//
// Postcondition: Returns the parsed definitions (possibly empty) or an error
// naming the offending file.
func LoadDirectory(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading effect dir %q: %w", dir, err)
	}
	var defs []Definition
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
