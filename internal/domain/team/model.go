package team

import (
	"fmt"
	"sort"
	"strings"
)

// Team is one club in the league. Canonical is the single authoritative
// lowercase spelling that every submission gets normalized to.
type Team struct {
	ID        string
	Canonical string
}

// Alias is one known variant spelling of a canonical team name.
type Alias struct {
	Alias     string
	Canonical string
}

// AliasTable maps canonical team names to their known aliases and
// abbreviations ("spurs" -> "tottenham"). Invariants enforced at
// construction: every alias resolves to exactly one canonical, and a
// canonical name never appears as its own alias.
type AliasTable struct {
	byAlias    map[string]string
	canonicals []string
	flat       []Alias
}

func NewAliasTable(byCanonical map[string][]string) (*AliasTable, error) {
	byAlias := make(map[string]string)
	canonicals := make([]string, 0, len(byCanonical))

	for canonical, aliases := range byCanonical {
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if canonical == "" {
			return nil, fmt.Errorf("canonical team name cannot be empty")
		}
		canonicals = append(canonicals, canonical)

		for _, alias := range aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if alias == "" {
				continue
			}
			if alias == canonical {
				return nil, fmt.Errorf("team %q lists itself as an alias", canonical)
			}
			if existing, ok := byAlias[alias]; ok && existing != canonical {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", alias, existing, canonical)
			}
			byAlias[alias] = canonical
		}
	}

	for alias := range byAlias {
		for _, canonical := range canonicals {
			if alias == canonical {
				return nil, fmt.Errorf("alias %q collides with canonical team name", alias)
			}
		}
	}

	sort.Strings(canonicals)

	flat := make([]Alias, 0, len(byAlias))
	for alias, canonical := range byAlias {
		flat = append(flat, Alias{Alias: alias, Canonical: canonical})
	}
	// Longest alias first so "nottingham forest" wins over "forest".
	sort.Slice(flat, func(i, j int) bool {
		if len(flat[i].Alias) != len(flat[j].Alias) {
			return len(flat[i].Alias) > len(flat[j].Alias)
		}
		return flat[i].Alias < flat[j].Alias
	})

	return &AliasTable{
		byAlias:    byAlias,
		canonicals: canonicals,
		flat:       flat,
	}, nil
}

func NewAliasTableFromRows(rows []Alias) (*AliasTable, error) {
	byCanonical := make(map[string][]string)
	for _, row := range rows {
		byCanonical[row.Canonical] = append(byCanonical[row.Canonical], row.Alias)
	}
	return NewAliasTable(byCanonical)
}

// Canonical resolves an alias to its canonical name.
func (t *AliasTable) Canonical(alias string) (string, bool) {
	if t == nil {
		return "", false
	}
	canonical, ok := t.byAlias[strings.ToLower(strings.TrimSpace(alias))]
	return canonical, ok
}

// Aliases returns every alias ordered longest first.
func (t *AliasTable) Aliases() []Alias {
	if t == nil {
		return nil
	}
	return append([]Alias(nil), t.flat...)
}

func (t *AliasTable) Canonicals() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.canonicals...)
}

func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.flat)
}
