package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
)

// DuplicateService flags pairs of players whose entire gameweek submissions
// are identical. Matching on some fixtures is common and meaningless; only
// whole-round equality counts, meaning the same fixture set with the same
// score on every fixture.
type DuplicateService struct {
	predictions prediction.Repository
	players     player.Repository
	logger      *logging.Logger
}

func NewDuplicateService(predictions prediction.Repository, players player.Repository, logger *logging.Logger) *DuplicateService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DuplicateService{
		predictions: predictions,
		players:     players,
		logger:      logger,
	}
}

func (s *DuplicateService) DetectGameweek(ctx context.Context, season string, gameweek int) ([]prediction.DuplicatePair, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DuplicateService.DetectGameweek")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if gameweek <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	items, err := s.predictions.ListByGameweek(ctx, season, gameweek)
	if err != nil {
		return nil, fmt.Errorf("list predictions for gameweek %d: %w", gameweek, err)
	}

	active, err := s.players.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	activeNames := make(map[string]struct{}, len(active))
	for _, p := range active {
		activeNames[p.Name] = struct{}{}
	}

	type roundSet struct {
		scores   map[string]string
		sentinel bool
	}

	rounds := make(map[string]*roundSet)
	for _, item := range items {
		if _, ok := activeNames[item.Player]; !ok {
			continue
		}
		set, ok := rounds[item.Player]
		if !ok {
			set = &roundSet{scores: make(map[string]string), sentinel: true}
			rounds[item.Player] = set
		}
		set.scores[item.FixtureID] = item.ScoreString()
		if !item.IsSentinel() {
			set.sentinel = false
		}
	}

	names := make([]string, 0, len(rounds))
	for name := range rounds {
		names = append(names, name)
	}
	sort.Strings(names)

	var pairs []prediction.DuplicatePair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := rounds[names[i]], rounds[names[j]]
			if !equalRounds(a.scores, b.scores) {
				continue
			}

			pair := prediction.DuplicatePair{
				Season:              season,
				Gameweek:            gameweek,
				PlayerA:             names[i],
				PlayerB:             names[j],
				MatchedFixtureCount: len(a.scores),
				AllSentinel:         a.sentinel && b.sentinel,
			}
			pairs = append(pairs, pair)
			s.logger.WarnContext(ctx, "identical gameweek submission detected",
				"player_a", pair.PlayerA,
				"player_b", pair.PlayerB,
				"gameweek", gameweek,
				"fixtures", pair.MatchedFixtureCount,
				"all_sentinel", pair.AllSentinel,
			)
		}
	}

	return pairs, nil
}

// equalRounds requires identical fixture-set membership and an equal score
// string on every fixture; a single mismatch disqualifies the pair.
func equalRounds(a, b map[string]string) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for fixtureID, score := range a {
		other, ok := b[fixtureID]
		if !ok || other != score {
			return false
		}
	}
	return true
}

// ReportJSON renders duplicate pairs for operator review.
func (s *DuplicateService) ReportJSON(pairs []prediction.DuplicatePair) ([]byte, error) {
	out, err := sonic.MarshalIndent(map[string]any{
		"duplicate_pairs": pairs,
		"count":           len(pairs),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal duplicate report: %w", err)
	}
	return out, nil
}
