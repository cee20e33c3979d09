package parse

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
)

// Context carries the immutable lookup data one ingest run parses against:
// canonical team names, the team alias table, the active roster and the
// chat display-name aliases. Built once per run and passed into every parse
// function so there is no module-level mutable state.
type Context struct {
	teams          []string
	aliases        []aliasPattern
	playersByLower map[string]string
	displayAliases map[string]string
}

type aliasPattern struct {
	alias     string
	canonical string
	pattern   *regexp.Regexp
}

func NewContext(teams []string, aliasTable *team.AliasTable, players []player.Player, displayAliases []player.DisplayAlias) (*Context, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("at least one team is required")
	}

	normalizedTeams := make([]string, 0, len(teams))
	for _, name := range teams {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		normalizedTeams = append(normalizedTeams, name)
	}
	// Longer names first so containment scans prefer "manchester united"
	// over "united".
	sort.Slice(normalizedTeams, func(i, j int) bool {
		if len(normalizedTeams[i]) != len(normalizedTeams[j]) {
			return len(normalizedTeams[i]) > len(normalizedTeams[j])
		}
		return normalizedTeams[i] < normalizedTeams[j]
	})

	patterns := make([]aliasPattern, 0, aliasTable.Len())
	for _, row := range aliasTable.Aliases() {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(row.Alias) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile alias pattern %q: %w", row.Alias, err)
		}
		patterns = append(patterns, aliasPattern{
			alias:     row.Alias,
			canonical: row.Canonical,
			pattern:   re,
		})
	}

	playersByLower := make(map[string]string, len(players))
	for _, p := range players {
		if !p.Active {
			continue
		}
		playersByLower[strings.ToLower(strings.TrimSpace(p.Name))] = p.Name
	}

	displayByLower := make(map[string]string, len(displayAliases))
	for _, a := range displayAliases {
		alias := strings.ToLower(strings.TrimSpace(a.Alias))
		if alias == "" {
			continue
		}
		displayByLower[alias] = a.PlayerName
	}

	return &Context{
		teams:          normalizedTeams,
		aliases:        patterns,
		playersByLower: playersByLower,
		displayAliases: displayByLower,
	}, nil
}

// Teams returns canonical team names, longest first.
func (c *Context) Teams() []string {
	return append([]string(nil), c.teams...)
}

// MatchPlayer resolves a line of text to an active roster name by exact
// case-insensitive equality. This is the only transition rule for the
// active-player state machine.
func (c *Context) MatchPlayer(text string) (string, bool) {
	name, ok := c.playersByLower[strings.ToLower(strings.TrimSpace(text))]
	return name, ok
}

// MatchSender resolves a chat display name, checking the display-name alias
// table before falling back to the roster itself.
func (c *Context) MatchSender(displayName string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(displayName))
	if mapped, ok := c.displayAliases[key]; ok {
		if name, rosterOK := c.MatchPlayer(mapped); rosterOK {
			return name, true
		}
		return mapped, true
	}
	return c.MatchPlayer(displayName)
}
