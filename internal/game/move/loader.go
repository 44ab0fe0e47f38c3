package move

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/combatant"
)

type catalogFile struct {
	Moves []Record `yaml:"moves"`
}

// LoadCatalog reads a YAML file holding a top-level "moves" list of records.
//
// Postcondition: Returns a Catalog or an error naming the file or record.
func LoadCatalog(path string) (*Catalog, error) {
	var f catalogFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	defs := make([]Definition, 0, len(f.Moves))
	for i, r := range f.Moves {
		d, err := r.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: move %d: %w", path, i, err)
		}
		defs = append(defs, d)
	}
	return NewCatalog(defs...), nil
}

// LoadTypeChart reads a YAML mapping of attacking type -> defending type -> bonus.
func LoadTypeChart(path string) (*TypeChart, error) {
	var m map[string]map[string]int
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	return NewTypeChart(m), nil
}

// Roster is the two six-member rosters for one battle.
type Roster struct {
	Player   []combatant.Record `yaml:"player"`
	Opponent []combatant.Record `yaml:"opponent"`
}

// Validate checks both rosters have the party size and valid records.
func (r Roster) Validate() error {
	sides := []struct {
		name string
		recs []combatant.Record
	}{{"player", r.Player}, {"opponent", r.Opponent}}
	for _, s := range sides {
		side, recs := s.name, s.recs
		if len(recs) != combatant.Size {
			return fmt.Errorf("roster %s: expected %d combatants, got %d", side, combatant.Size, len(recs))
		}
		for i, rec := range recs {
			if err := rec.Validate(); err != nil {
				return fmt.Errorf("roster %s slot %d: %w", side, i, err)
			}
		}
	}
	return nil
}

// CheckMoves reports the first roster move missing from cat.
func (r Roster) CheckMoves(cat *Catalog) error {
	for _, recs := range [][]combatant.Record{r.Player, r.Opponent} {
		for _, rec := range recs {
			for _, m := range rec.Moves {
				if m == "" || m == combatant.NoMove {
					continue
				}
				if _, err := cat.Get(m); err != nil {
					return fmt.Errorf("combatant %q: %w", rec.Name, err)
				}
			}
		}
	}
	return nil
}

// LoadRoster reads and validates a YAML roster file.
func LoadRoster(path string) (Roster, error) {
	var r Roster
	if err := readYAML(path, &r); err != nil {
		return Roster{}, err
	}
	if err := r.Validate(); err != nil {
		return Roster{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
