package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
)

// LeagueFile is the JSON reference-data document fed to the sync command:
// the season's teams with their aliases, the player roster with chat display
// names, and the fixture calendar.
type LeagueFile struct {
	Season   string            `json:"season" validate:"required"`
	Teams    []leagueTeamEntry `json:"teams" validate:"required,min=2,dive"`
	Players  []leaguePlayer    `json:"players" validate:"required,min=1,dive"`
	Fixtures []leagueFixture   `json:"fixtures" validate:"omitempty,dive"`
}

type leagueTeamEntry struct {
	ID        string   `json:"id"`
	Canonical string   `json:"canonical" validate:"required,lowercase"`
	Aliases   []string `json:"aliases" validate:"omitempty,dive,required"`
}

type leaguePlayer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name" validate:"required"`
	Active  bool     `json:"active"`
	Aliases []string `json:"aliases" validate:"omitempty,dive,required"`
}

type leagueFixture struct {
	ID       string `json:"id"`
	Gameweek int    `json:"gameweek" validate:"required,gt=0"`
	Home     string `json:"home" validate:"required,lowercase"`
	Away     string `json:"away" validate:"required,lowercase,nefield=Home"`
}

func LoadLeagueFile(path string) (LeagueFile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return LeagueFile{}, fmt.Errorf("read league file: %w", err)
	}

	var out LeagueFile
	if err := sonic.Unmarshal(body, &out); err != nil {
		return LeagueFile{}, fmt.Errorf("decode league file: %w", err)
	}
	if err := aliasFileValidator.Struct(out); err != nil {
		return LeagueFile{}, fmt.Errorf("validate league file: %w", err)
	}

	return out, nil
}

func (f LeagueFile) TeamRows() []team.Team {
	out := make([]team.Team, 0, len(f.Teams))
	for _, entry := range f.Teams {
		out = append(out, team.Team{ID: entry.ID, Canonical: entry.Canonical})
	}
	return out
}

func (f LeagueFile) TeamAliasRows() []team.Alias {
	var out []team.Alias
	for _, entry := range f.Teams {
		for _, alias := range entry.Aliases {
			out = append(out, team.Alias{Alias: alias, Canonical: entry.Canonical})
		}
	}
	return out
}

func (f LeagueFile) PlayerRows() []player.Player {
	out := make([]player.Player, 0, len(f.Players))
	for _, entry := range f.Players {
		out = append(out, player.Player{ID: entry.ID, Name: entry.Name, Active: entry.Active})
	}
	return out
}

func (f LeagueFile) DisplayAliasRows() []player.DisplayAlias {
	var out []player.DisplayAlias
	for _, entry := range f.Players {
		for _, alias := range entry.Aliases {
			out = append(out, player.DisplayAlias{Alias: alias, PlayerName: entry.Name})
		}
	}
	return out
}

func (f LeagueFile) FixtureRows() []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(f.Fixtures))
	for _, entry := range f.Fixtures {
		out = append(out, fixture.Fixture{
			ID:       entry.ID,
			Season:   f.Season,
			Gameweek: entry.Gameweek,
			HomeTeam: entry.Home,
			AwayTeam: entry.Away,
		})
	}
	return out
}
