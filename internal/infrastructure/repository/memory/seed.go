package memory

import (
	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
)

const SeedSeason = "2025/26"

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "ars", Canonical: "arsenal"},
		{ID: "avl", Canonical: "aston villa"},
		{ID: "bur", Canonical: "burnley"},
		{ID: "eve", Canonical: "everton"},
		{ID: "liv", Canonical: "liverpool"},
		{ID: "mun", Canonical: "man utd"},
		{ID: "new", Canonical: "newcastle"},
		{ID: "tot", Canonical: "tottenham"},
		{ID: "whu", Canonical: "west ham"},
		{ID: "wol", Canonical: "wolves"},
	}
}

func SeedTeamAliases() []team.Alias {
	return []team.Alias{
		{Alias: "spurs", Canonical: "tottenham"},
		{Alias: "thfc", Canonical: "tottenham"},
		{Alias: "toon", Canonical: "newcastle"},
		{Alias: "newcastle united", Canonical: "newcastle"},
		{Alias: "villa", Canonical: "aston villa"},
		{Alias: "manchester united", Canonical: "man utd"},
		{Alias: "man united", Canonical: "man utd"},
		{Alias: "utd", Canonical: "man utd"},
		{Alias: "west ham united", Canonical: "west ham"},
		{Alias: "hammers", Canonical: "west ham"},
		{Alias: "wolverhampton", Canonical: "wolves"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-01", Name: "Alan Shaw", Active: true},
		{ID: "p-02", Name: "Ben Mills", Active: true},
		{ID: "p-03", Name: "Carl Royce", Active: true},
		{ID: "p-04", Name: "Dave North", Active: true},
		{ID: "p-05", Name: "Ed Tansley", Active: false},
	}
}

func SeedDisplayAliases() []player.DisplayAlias {
	return []player.DisplayAlias{
		{Alias: "Al", PlayerName: "Alan Shaw"},
		{Alias: "Millsy", PlayerName: "Ben Mills"},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ID: "f-01", Season: SeedSeason, Gameweek: 1, HomeTeam: "liverpool", AwayTeam: "everton"},
		{ID: "f-02", Season: SeedSeason, Gameweek: 1, HomeTeam: "arsenal", AwayTeam: "tottenham"},
		{ID: "f-03", Season: SeedSeason, Gameweek: 1, HomeTeam: "burnley", AwayTeam: "man utd"},
		{ID: "f-04", Season: SeedSeason, Gameweek: 1, HomeTeam: "newcastle", AwayTeam: "aston villa"},
		{ID: "f-05", Season: SeedSeason, Gameweek: 1, HomeTeam: "west ham", AwayTeam: "wolves"},
	}
}
