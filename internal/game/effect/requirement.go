// Package effect turns raw move bonus text into trigger requirements, rolls
// the trigger die against them, and defines the behavior of every status
// effect a move can inflict.
package effect

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AlwaysThreshold is recorded for bonus entries that carry no explicit
// number; any roll of the trigger die meets it.
const AlwaysThreshold = 0

// NeverThreshold caps registered thresholds. Numbers at or beyond it,
// including digit runs too long for int, can never be met by a trigger roll.
const NeverThreshold = math.MaxInt32

var (
	onPattern    = regexp.MustCompile(`(?i)^(.+?)\s+on\s+(\d+)\+`)
	plusPattern  = regexp.MustCompile(`^(.+?)\s*\+\s*(\d+)`)
	superPattern = regexp.MustCompile(`(?i)^super\s+`)
	separators   = regexp.MustCompile(`[;,·]`)
)

// Requirement is one effect name with every threshold registered for it, in
// the order the bonus slots listed them.
type Requirement struct {
	Effect     string
	Thresholds []int
}

// RequirementSet is the ordered mapping from effect name to thresholds for a
// single move. A nil *RequirementSet is the "no bonus effects" marker and is
// safe to call every method on.
//
// A RequirementSet is immutable once built.
type RequirementSet struct {
	reqs []Requirement
}

// NewRequirementSet builds a set from reqs, merging thresholds of entries that
// share an effect name. It returns nil when reqs contains no thresholds.
func NewRequirementSet(reqs ...Requirement) *RequirementSet {
	b := newSetBuilder()
	for _, r := range reqs {
		for _, t := range r.Thresholds {
			b.add(r.Effect, t)
		}
	}
	return b.build()
}

// Empty reports whether the set has no requirements.
func (s *RequirementSet) Empty() bool {
	return s == nil || len(s.reqs) == 0
}

// Len returns the number of distinct effects in the set.
func (s *RequirementSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.reqs)
}

// Requirements returns a copy of the requirements in insertion order.
func (s *RequirementSet) Requirements() []Requirement {
	if s == nil {
		return nil
	}
	out := make([]Requirement, len(s.reqs))
	for i, r := range s.reqs {
		out[i] = Requirement{Effect: r.Effect, Thresholds: append([]int(nil), r.Thresholds...)}
	}
	return out
}

// Thresholds returns a copy of the thresholds registered for effect, or nil.
func (s *RequirementSet) Thresholds(effect string) []int {
	if s == nil {
		return nil
	}
	name := NormalizeName(effect)
	for _, r := range s.reqs {
		if r.Effect == name {
			return append([]int(nil), r.Thresholds...)
		}
	}
	return nil
}

// Effects returns the effect names in insertion order.
func (s *RequirementSet) Effects() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.reqs))
	for i, r := range s.reqs {
		out[i] = r.Effect
	}
	return out
}

// ParseRequirements parses up to three raw bonus slots into a RequirementSet.
//
// Each slot is split on ';', ',' and '·'. Entries of the form "<effect> on <N>+"
// and "<effect> + <N>" register threshold N; any other non-empty entry
// registers AlwaysThreshold. A "super <effect>" name registers its threshold
// twice for the base effect. Blank slots and "-" are skipped.
//
// Postcondition: Returns nil when no entry was recognized.
func ParseRequirements(slots ...string) *RequirementSet {
	b := newSetBuilder()
	for _, slot := range slots {
		slot = strings.TrimSpace(slot)
		if slot == "" || slot == "-" {
			continue
		}
		for _, entry := range separators.Split(slot, -1) {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			name, threshold := parseEntry(entry)
			for _, effect := range expandSuper(name) {
				b.add(effect, threshold)
			}
		}
	}
	return b.build()
}

func parseEntry(entry string) (string, int) {
	for _, p := range []*regexp.Regexp{onPattern, plusPattern} {
		m := p.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n > NeverThreshold {
			n = NeverThreshold
		}
		return m[1], n
	}
	return entry, AlwaysThreshold
}

// expandSuper returns the base effect twice for "super X", otherwise X once.
func expandSuper(name string) []string {
	if loc := superPattern.FindStringIndex(name); loc != nil {
		base := NormalizeName(name[loc[1]:])
		if base == "" {
			return nil
		}
		return []string{base, base}
	}
	if n := NormalizeName(name); n != "" {
		return []string{n}
	}
	return nil
}

// NormalizeName lower-cases an effect name and collapses its whitespace.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

type setBuilder struct {
	index map[string]int
	reqs  []Requirement
}

func newSetBuilder() *setBuilder {
	return &setBuilder{index: make(map[string]int)}
}

func (b *setBuilder) add(effect string, threshold int) {
	name := NormalizeName(effect)
	if name == "" {
		return
	}
	i, ok := b.index[name]
	if !ok {
		i = len(b.reqs)
		b.index[name] = i
		b.reqs = append(b.reqs, Requirement{Effect: name})
	}
	b.reqs[i].Thresholds = append(b.reqs[i].Thresholds, threshold)
}

func (b *setBuilder) build() *RequirementSet {
	if len(b.reqs) == 0 {
		return nil
	}
	return &RequirementSet{reqs: b.reqs}
}
