package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
	"github.com/hjwoodall/prediction-league/internal/parse"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
)

// ReconcileService turns extracted prediction candidates into the persisted
// canonical set for a gameweek: latest-wins dedupe, fixture resolution with
// goal swapping, result derivation and one atomic upsert. FillMissing runs
// once per gameweek, after every submission has been processed, so a late
// file cannot clobber real scores from an earlier one.
type ReconcileService struct {
	fixtures    fixture.Repository
	resolver    *fixture.Resolver
	predictions prediction.Repository
	logger      *logging.Logger
}

func NewReconcileService(fixtures fixture.Repository, predictions prediction.Repository, logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		fixtures:    fixtures,
		resolver:    fixture.NewResolver(fixtures),
		predictions: predictions,
		logger:      logger,
	}
}

type ReconcileInput struct {
	Season   string
	Gameweek int
	Parsed   []parse.RawPrediction
}

type ReconcileResult struct {
	Parsed    int
	Deduped   int
	Dropped   int
	Persisted int
}

func (s *ReconcileService) Reconcile(ctx context.Context, in ReconcileInput) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Reconcile")
	defer span.End()

	var result ReconcileResult

	in.Season = strings.TrimSpace(in.Season)
	if in.Season == "" {
		return result, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if in.Gameweek <= 0 {
		return result, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	result.Parsed = len(in.Parsed)

	candidates := append([]parse.RawPrediction(nil), in.Parsed...)
	deduped := dedupeLatestWins(candidates)
	result.Deduped = len(candidates) - len(deduped)

	out := make([]prediction.Prediction, 0, len(deduped))
	for _, raw := range deduped {
		match, swapped, found, err := s.resolver.Resolve(ctx, in.Season, in.Gameweek, raw.HomeTeam, raw.AwayTeam)
		if err != nil {
			return result, fmt.Errorf("resolve fixture for %q: %w", raw.Line, err)
		}
		if !found {
			result.Dropped++
			s.logger.WarnContext(ctx, "prediction dropped, fixture unresolved",
				"player", raw.Player,
				"home", raw.HomeTeam,
				"away", raw.AwayTeam,
				"gameweek", in.Gameweek,
				"line", raw.Line,
			)
			continue
		}

		homeGoals, awayGoals := raw.HomeGoals, raw.AwayGoals
		if swapped {
			homeGoals, awayGoals = awayGoals, homeGoals
		}

		item := prediction.Prediction{
			Season:    in.Season,
			Gameweek:  in.Gameweek,
			Player:    raw.Player,
			FixtureID: match.ID,
			HomeTeam:  match.HomeTeam,
			AwayTeam:  match.AwayTeam,
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
			Result:    prediction.DeriveResult(homeGoals, awayGoals),
		}

		// A candidate that fails validation is a bad line, not a bad
		// submission; drop it and keep the rest of the file.
		if err := item.Validate(); err != nil {
			result.Dropped++
			s.logger.WarnContext(ctx, "prediction dropped, failed validation",
				"player", raw.Player,
				"error", err,
				"line", raw.Line,
			)
			continue
		}

		out = append(out, item)
	}

	if len(out) > 0 {
		if err := s.predictions.UpsertSet(ctx, out); err != nil {
			return result, fmt.Errorf("upsert prediction set: %w", err)
		}
	}
	result.Persisted = len(out)

	return result, nil
}

// FillMissing synthesizes one sentinel prediction per scheduled fixture for
// every active player with no persisted prediction in the gameweek,
// guaranteeing complete gameweek coverage downstream. It is idempotent: a
// player with any stored row, real or sentinel, is left alone.
func (s *ReconcileService) FillMissing(ctx context.Context, season string, gameweek int, players []player.Player) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.FillMissing")
	defer span.End()

	fixtures, err := s.fixtures.ListByGameweek(ctx, season, gameweek)
	if err != nil {
		return 0, fmt.Errorf("list fixtures for gameweek %d: %w", gameweek, err)
	}
	if len(fixtures) == 0 {
		return 0, nil
	}

	stored, err := s.predictions.ListByGameweek(ctx, season, gameweek)
	if err != nil {
		return 0, fmt.Errorf("list predictions for gameweek %d: %w", gameweek, err)
	}
	submitted := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		submitted[item.Player] = struct{}{}
	}

	var out []prediction.Prediction
	for _, p := range players {
		if !p.Active {
			continue
		}
		if _, ok := submitted[p.Name]; ok {
			continue
		}
		for _, f := range fixtures {
			out = append(out, prediction.Prediction{
				Season:    season,
				Gameweek:  gameweek,
				Player:    p.Name,
				FixtureID: f.ID,
				HomeTeam:  f.HomeTeam,
				AwayTeam:  f.AwayTeam,
				HomeGoals: prediction.SentinelGoals,
				AwayGoals: prediction.SentinelGoals,
				Result:    prediction.ResultDraw,
			})
		}
	}

	if len(out) == 0 {
		return 0, nil
	}
	if err := s.predictions.UpsertSet(ctx, out); err != nil {
		return 0, fmt.Errorf("upsert sentinel fill: %w", err)
	}

	return len(out), nil
}

// dedupeLatestWins keeps only the last-encountered entry per
// (player, home, away), so a correction later in the same submission
// replaces the typo before it.
func dedupeLatestWins(candidates []parse.RawPrediction) []parse.RawPrediction {
	type key struct {
		player string
		home   string
		away   string
	}

	latest := make(map[key]int, len(candidates))
	for idx, raw := range candidates {
		latest[key{player: raw.Player, home: raw.HomeTeam, away: raw.AwayTeam}] = idx
	}

	out := make([]parse.RawPrediction, 0, len(latest))
	for idx, raw := range candidates {
		k := key{player: raw.Player, home: raw.HomeTeam, away: raw.AwayTeam}
		if latest[k] == idx {
			out = append(out, raw)
		}
	}

	return out
}
