package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
	"github.com/hjwoodall/prediction-league/internal/platform/id"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
)

// TeamWriter persists reference-data rows for teams.
type TeamWriter interface {
	Upsert(ctx context.Context, item team.Team) error
	UpsertAlias(ctx context.Context, item team.Alias) error
}

// PlayerWriter persists roster rows and chat display aliases.
type PlayerWriter interface {
	Upsert(ctx context.Context, item player.Player) error
	UpsertDisplayAlias(ctx context.Context, item player.DisplayAlias) error
}

// FixtureWriter persists fixture calendar rows.
type FixtureWriter interface {
	Upsert(ctx context.Context, item fixture.Fixture) error
}

// SyncService loads league reference data (teams, aliases, roster, fixture
// calendar) into the store. Runs before the first ingest of a season and
// whenever the calendar or roster changes; every row is an upsert, so re-runs
// are harmless.
type SyncService struct {
	teams    TeamWriter
	players  PlayerWriter
	fixtures FixtureWriter
	ids      id.Generator
	logger   *logging.Logger
}

func NewSyncService(teams TeamWriter, players PlayerWriter, fixtures FixtureWriter, ids id.Generator, logger *logging.Logger) *SyncService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		teams:    teams,
		players:  players,
		fixtures: fixtures,
		ids:      ids,
		logger:   logger,
	}
}

type SyncInput struct {
	Season         string
	Teams          []team.Team
	TeamAliases    []team.Alias
	Players        []player.Player
	DisplayAliases []player.DisplayAlias
	Fixtures       []fixture.Fixture
}

type SyncResult struct {
	Teams          int `json:"teams"`
	TeamAliases    int `json:"team_aliases"`
	Players        int `json:"players"`
	DisplayAliases int `json:"display_aliases"`
	Fixtures       int `json:"fixtures"`
}

func (s *SyncService) Run(ctx context.Context, in SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	var result SyncResult

	in.Season = strings.TrimSpace(in.Season)
	if in.Season == "" {
		return result, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if len(in.Teams) == 0 {
		return result, fmt.Errorf("%w: at least one team is required", ErrInvalidInput)
	}

	// Alias table invariants (uniqueness, no self-alias) are checked up
	// front so a bad file leaves the store untouched.
	if _, err := team.NewAliasTableFromRows(in.TeamAliases); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	canonicals := make(map[string]struct{}, len(in.Teams))
	for i := range in.Teams {
		canonical := strings.ToLower(strings.TrimSpace(in.Teams[i].Canonical))
		if canonical == "" {
			return result, fmt.Errorf("%w: team canonical name is required", ErrInvalidInput)
		}
		in.Teams[i].Canonical = canonical
		canonicals[canonical] = struct{}{}
	}
	for _, f := range in.Fixtures {
		if _, ok := canonicals[f.HomeTeam]; !ok {
			return result, fmt.Errorf("%w: fixture home team %q is not in the team list", ErrInvalidInput, f.HomeTeam)
		}
		if _, ok := canonicals[f.AwayTeam]; !ok {
			return result, fmt.Errorf("%w: fixture away team %q is not in the team list", ErrInvalidInput, f.AwayTeam)
		}
	}

	for _, item := range in.Teams {
		if item.ID == "" {
			newID, err := s.ids.NewID()
			if err != nil {
				return result, fmt.Errorf("generate team id: %w", err)
			}
			item.ID = newID
		}
		if err := s.teams.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("upsert team %s: %w", item.Canonical, err)
		}
		result.Teams++
	}

	for _, item := range in.TeamAliases {
		if err := s.teams.UpsertAlias(ctx, item); err != nil {
			return result, fmt.Errorf("upsert team alias %s: %w", item.Alias, err)
		}
		result.TeamAliases++
	}

	for _, item := range in.Players {
		if item.ID == "" {
			newID, err := s.ids.NewID()
			if err != nil {
				return result, fmt.Errorf("generate player id: %w", err)
			}
			item.ID = newID
		}
		if err := item.Validate(); err != nil {
			return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.players.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("upsert player %s: %w", item.Name, err)
		}
		result.Players++
	}

	for _, item := range in.DisplayAliases {
		if err := s.players.UpsertDisplayAlias(ctx, item); err != nil {
			return result, fmt.Errorf("upsert display alias %s: %w", item.Alias, err)
		}
		result.DisplayAliases++
	}

	for _, item := range in.Fixtures {
		if item.ID == "" {
			newID, err := s.ids.NewID()
			if err != nil {
				return result, fmt.Errorf("generate fixture id: %w", err)
			}
			item.ID = newID
		}
		item.Season = in.Season
		if err := s.fixtures.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("upsert fixture %s v %s gw%d: %w", item.HomeTeam, item.AwayTeam, item.Gameweek, err)
		}
		result.Fixtures++
	}

	s.logger.InfoContext(ctx, "league reference data synced",
		"season", in.Season,
		"teams", result.Teams,
		"team_aliases", result.TeamAliases,
		"players", result.Players,
		"display_aliases", result.DisplayAliases,
		"fixtures", result.Fixtures,
	)

	return result, nil
}
