package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/hjwoodall/prediction-league/internal/app"
	"github.com/hjwoodall/prediction-league/internal/config"
	"github.com/hjwoodall/prediction-league/internal/observability"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
	"github.com/hjwoodall/prediction-league/internal/usecase"
)

func main() {
	var (
		season     = flag.String("season", "", "season to ingest (overrides SEASON)")
		gameweek   = flag.Int("gameweek", 0, "gameweek to ingest")
		gameweeks  = flag.String("gameweeks", "", "comma-separated gameweeks to backfill")
		duplicates = flag.Bool("duplicates", false, "report whole-round duplicate submissions after ingest")
		syncFile   = flag.String("sync", "", "league reference file to sync (teams, roster, fixtures) before ingest")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if strings.TrimSpace(*season) != "" {
		cfg.Season = strings.TrimSpace(*season)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := run(ctx, cfg, logger, *gameweek, *gameweeks, *duplicates, *syncFile)

	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	os.Exit(exitCode)
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, gameweek int, gameweeks string, duplicates bool, syncFile string) int {
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(ctx); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	if strings.TrimSpace(syncFile) != "" {
		leagueFile, err := config.LoadLeagueFile(syncFile)
		if err != nil {
			logger.Error("load league file", "error", err)
			return 2
		}
		result, err := application.Sync.Run(ctx, usecase.SyncInput{
			Season:         leagueFile.Season,
			Teams:          leagueFile.TeamRows(),
			TeamAliases:    leagueFile.TeamAliasRows(),
			Players:        leagueFile.PlayerRows(),
			DisplayAliases: leagueFile.DisplayAliasRows(),
			Fixtures:       leagueFile.FixtureRows(),
		})
		if err != nil {
			logger.Error("sync league file", "error", err)
			return 1
		}
		printJSON(result)
	}

	targets, err := parseGameweeks(gameweek, gameweeks)
	if err != nil {
		logger.Error("parse gameweeks", "error", err)
		return 2
	}
	if len(targets) == 0 && !duplicates {
		if strings.TrimSpace(syncFile) != "" {
			return 0
		}
		logger.Error("nothing to do", "hint", "pass -gameweek, -gameweeks, -duplicates, or -sync")
		return 2
	}

	switch {
	case len(targets) > 1:
		result, err := application.Backfill.Run(ctx, usecase.BackfillInput{
			Season:     cfg.Season,
			Gameweeks:  targets,
			MaxWorkers: cfg.BackfillMaxWorkers,
		})
		if err != nil {
			logger.Error("backfill failed", "error", err)
			return 1
		}
		printJSON(result)
	case len(targets) == 1:
		result, err := application.Ingest.Run(ctx, cfg.Season, targets[0])
		if err != nil {
			logger.Error("ingest failed", "error", err)
			return 1
		}
		printJSON(result)
	}

	if duplicates {
		reportWeeks := targets
		if len(reportWeeks) == 0 && gameweek > 0 {
			reportWeeks = []int{gameweek}
		}
		for _, gw := range reportWeeks {
			pairs, err := application.Duplicates.DetectGameweek(ctx, cfg.Season, gw)
			if err != nil {
				logger.Error("duplicate detection failed", "gameweek", gw, "error", err)
				return 1
			}
			report, err := application.Duplicates.ReportJSON(pairs)
			if err != nil {
				logger.Error("encode duplicate report", "error", err)
				return 1
			}
			fmt.Println(string(report))
		}
	}

	return 0
}

func parseGameweeks(gameweek int, gameweeks string) ([]int, error) {
	if strings.TrimSpace(gameweeks) == "" {
		if gameweek > 0 {
			return []int{gameweek}, nil
		}
		return nil, nil
	}

	parts := strings.Split(gameweeks, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		gw, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid gameweek %q: %w", item, err)
		}
		if gw < 1 {
			return nil, fmt.Errorf("gameweek must be >= 1, got %d", gw)
		}
		out = append(out, gw)
	}

	return out, nil
}

func printJSON(v any) {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
