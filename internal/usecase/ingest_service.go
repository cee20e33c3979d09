package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/submission"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
	"github.com/hjwoodall/prediction-league/internal/parse"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// SubmissionSource is the blob store the pipeline reads raw submission text
// from.
type SubmissionSource interface {
	List(ctx context.Context, season string, gameweek int) ([]submission.Descriptor, error)
	Download(ctx context.Context, name string) ([]byte, error)
}

// IngestService runs the full pipeline for one gameweek: fetch raw
// submissions, normalize and extract, reconcile, persist. Bodies are
// prefetched concurrently but processing is strictly sequential in
// last-modified order; latest-wins dedupe depends on that ordering.
type IngestService struct {
	source           SubmissionSource
	teams            team.Repository
	players          player.Repository
	fixtures         fixture.Repository
	watermarks       submission.Repository
	reconciler       *ReconcileService
	fetchConcurrency int
	logger           *logging.Logger
}

func NewIngestService(
	source SubmissionSource,
	teams team.Repository,
	players player.Repository,
	fixtures fixture.Repository,
	watermarks submission.Repository,
	reconciler *ReconcileService,
	fetchConcurrency int,
	logger *logging.Logger,
) *IngestService {
	if fetchConcurrency < 1 {
		fetchConcurrency = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		source:           source,
		teams:            teams,
		players:          players,
		fixtures:         fixtures,
		watermarks:       watermarks,
		reconciler:       reconciler,
		fetchConcurrency: fetchConcurrency,
		logger:           logger,
	}
}

type RunResult struct {
	Season           string `json:"season"`
	Gameweek         int    `json:"gameweek"`
	Submissions      int    `json:"submissions"`
	Processed        int    `json:"processed"`
	SkippedUnchanged int    `json:"skipped_unchanged"`
	Failed           int    `json:"failed"`
	MergedLines      int    `json:"merged_lines"`
	AliasRewrites    int    `json:"alias_rewrites"`
	Persisted        int    `json:"persisted"`
	Filled           int    `json:"filled"`
	Dropped          int    `json:"dropped"`
}

type fetchedSubmission struct {
	desc submission.Descriptor
	body []byte
	err  error
}

func (s *IngestService) Run(ctx context.Context, season string, gameweek int) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run")
	defer span.End()

	result := RunResult{Season: season, Gameweek: gameweek}

	season = strings.TrimSpace(season)
	if season == "" {
		return result, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if gameweek <= 0 {
		return result, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	parseCtx, activePlayers, err := s.buildParsingContext(ctx)
	if err != nil {
		return result, err
	}

	descriptors, err := s.source.List(ctx, season, gameweek)
	if err != nil {
		return result, fmt.Errorf("%w: list submissions: %v", ErrDependencyUnavailable, err)
	}
	result.Submissions = len(descriptors)
	if len(descriptors) == 0 {
		return result, nil
	}

	sort.Slice(descriptors, func(i, j int) bool {
		if !descriptors[i].LastModified.Equal(descriptors[j].LastModified) {
			return descriptors[i].LastModified.Before(descriptors[j].LastModified)
		}
		return descriptors[i].Name < descriptors[j].Name
	})

	mapper := iter.Mapper[submission.Descriptor, fetchedSubmission]{MaxGoroutines: s.fetchConcurrency}
	fetched := mapper.Map(descriptors, func(d *submission.Descriptor) fetchedSubmission {
		body, err := s.source.Download(ctx, d.Name)
		return fetchedSubmission{desc: *d, body: body, err: err}
	})

	for _, item := range fetched {
		if item.err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "submission download failed, will retry next run",
				"source", item.desc.Name,
				"error", item.err,
			)
			continue
		}

		if err := s.processSubmission(ctx, season, gameweek, parseCtx, item, &result); err != nil {
			result.Failed++
			s.logger.ErrorContext(ctx, "submission processing failed",
				"source", item.desc.Name,
				"error", err,
			)
		}
	}

	// Fill runs once per gameweek, after every submission landed, so a
	// player's real scores from one file survive the processing of the next.
	// A failed submission may hold real scores for a player the fill would
	// mark as silent, so the fill waits for a fully clean run.
	if result.Failed > 0 {
		s.logger.WarnContext(ctx, "sentinel fill skipped, submissions failed this run",
			"failed", result.Failed,
			"gameweek", gameweek,
		)
		return result, nil
	}

	filled, err := s.reconciler.FillMissing(ctx, season, gameweek, activePlayers)
	if err != nil {
		return result, fmt.Errorf("fill missing players: %w", err)
	}
	result.Filled = filled

	return result, nil
}

func (s *IngestService) processSubmission(
	ctx context.Context,
	season string,
	gameweek int,
	parseCtx *parse.Context,
	item fetchedSubmission,
	result *RunResult,
) error {
	hash := submission.Hash(item.body)

	record, found, err := s.watermarks.Get(ctx, item.desc.Name)
	if err != nil {
		return fmt.Errorf("get submission watermark: %w", err)
	}
	if found && record.ContentHash == hash {
		result.SkippedUnchanged++
		s.logger.DebugContext(ctx, "submission unchanged, skipping", "source", item.desc.Name)
		return nil
	}

	lines := strings.Split(string(item.body), "\n")

	if parse.IsChatExport(lines) {
		var unknown []parse.SkippedLine
		lines, unknown = parseCtx.FlattenChatExport(lines)
		for _, skip := range unknown {
			s.logger.WarnContext(ctx, "chat line dropped",
				"source", item.desc.Name,
				"reason", skip.Reason,
				"line", skip.Line,
			)
		}
	}

	lines, mergedCount := parse.MergeSplitLines(lines)
	result.MergedLines += mergedCount

	for i := range lines {
		rewritten, hits := parseCtx.RewriteAliases(lines[i])
		lines[i] = rewritten
		result.AliasRewrites += len(hits)
		for _, hit := range hits {
			s.logger.DebugContext(ctx, "team alias rewritten",
				"source", item.desc.Name,
				"alias", hit.Alias,
				"canonical", hit.Canonical,
			)
		}
	}

	parsed, skipped := parseCtx.Extract(lines)
	for _, skip := range skipped {
		s.logger.WarnContext(ctx, "line skipped",
			"source", item.desc.Name,
			"reason", skip.Reason,
			"line", skip.Line,
		)
	}

	reconciled, err := s.reconciler.Reconcile(ctx, ReconcileInput{
		Season:   season,
		Gameweek: gameweek,
		Parsed:   parsed,
	})
	if err != nil {
		return fmt.Errorf("reconcile submission %s: %w", item.desc.Name, err)
	}
	result.Persisted += reconciled.Persisted
	result.Dropped += reconciled.Dropped

	if err := s.watermarks.Upsert(ctx, submission.Record{
		Source:       item.desc.Name,
		ContentHash:  hash,
		LastModified: item.desc.LastModified,
		ProcessedAt:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("upsert submission watermark: %w", err)
	}

	result.Processed++
	s.logger.InfoContext(ctx, "submission processed",
		"source", item.desc.Name,
		"parsed", reconciled.Parsed,
		"deduped", reconciled.Deduped,
		"dropped", reconciled.Dropped,
		"persisted", reconciled.Persisted,
		"merged_lines", mergedCount,
	)

	return nil
}

func (s *IngestService) buildParsingContext(ctx context.Context) (*parse.Context, []player.Player, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Canonical)
	}

	aliasRows, err := s.teams.ListAliases(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list team aliases: %w", err)
	}
	aliasTable, err := team.NewAliasTableFromRows(aliasRows)
	if err != nil {
		return nil, nil, fmt.Errorf("build alias table: %w", err)
	}

	activePlayers, err := s.players.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list active players: %w", err)
	}

	displayAliases, err := s.players.ListDisplayAliases(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list player display aliases: %w", err)
	}

	parseCtx, err := parse.NewContext(names, aliasTable, activePlayers, displayAliases)
	if err != nil {
		return nil, nil, fmt.Errorf("build parsing context: %w", err)
	}

	return parseCtx, activePlayers, nil
}
