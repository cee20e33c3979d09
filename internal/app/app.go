package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hjwoodall/prediction-league/internal/config"
	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
	"github.com/hjwoodall/prediction-league/internal/domain/submission"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
	cacherepo "github.com/hjwoodall/prediction-league/internal/infrastructure/repository/cache"
	"github.com/hjwoodall/prediction-league/internal/infrastructure/repository/memory"
	"github.com/hjwoodall/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/hjwoodall/prediction-league/internal/infrastructure/storage"
	basecache "github.com/hjwoodall/prediction-league/internal/platform/cache"
	"github.com/hjwoodall/prediction-league/internal/platform/id"
	"github.com/hjwoodall/prediction-league/internal/platform/logging"
	"github.com/hjwoodall/prediction-league/internal/platform/resilience"
	"github.com/hjwoodall/prediction-league/internal/usecase"

	_ "github.com/lib/pq"
)

// DBURLMemory selects the seeded in-memory repositories instead of postgres.
// Intended for local runs against a SOURCE_DIR.
const DBURLMemory = "memory"

// App holds the wired pipeline services.
type App struct {
	Config     config.Config
	Logger     *logging.Logger
	Ingest     *usecase.IngestService
	Backfill   *usecase.BackfillService
	Duplicates *usecase.DuplicateService
	Sync       *usecase.SyncService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db          *sqlx.DB
		teamRepo    team.Repository
		playerRepo  player.Repository
		fixtureRepo fixture.Repository

		teamWriter    usecase.TeamWriter
		playerWriter  usecase.PlayerWriter
		fixtureWriter usecase.FixtureWriter

		predictions prediction.Repository = memory.NewPredictionRepository()
		watermarks  submission.Repository = memory.NewSubmissionRepository()
	)

	if cfg.DBURL == DBURLMemory {
		teams := memory.NewTeamRepository(memory.SeedTeams(), memory.SeedTeamAliases())
		players := memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedDisplayAliases())
		fixtures := memory.NewFixtureRepository(memory.SeedFixtures())
		teamRepo, playerRepo, fixtureRepo = teams, players, fixtures
		teamWriter, playerWriter, fixtureWriter = teams, players, fixtures
	} else {
		conn, err := otelsqlx.Connect("postgres", cfg.DBURL,
			otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		db = conn

		teams := postgres.NewTeamRepository(db)
		players := postgres.NewPlayerRepository(db)
		fixtures := postgres.NewFixtureRepository(db)
		teamRepo, playerRepo, fixtureRepo = teams, players, fixtures
		teamWriter, playerWriter, fixtureWriter = teams, players, fixtures
		predictions = postgres.NewPredictionRepository(db)
		watermarks = postgres.NewSubmissionRepository(db)
	}

	if cfg.AliasFile != "" {
		aliasFile, err := config.LoadAliasFile(cfg.AliasFile)
		if err != nil {
			return nil, fmt.Errorf("load alias file: %w", err)
		}
		teamRepo = aliasOverrideTeamRepository{Repository: teamRepo, aliases: aliasFile.TeamAliases()}
		playerRepo = aliasOverridePlayerRepository{Repository: playerRepo, aliases: aliasFile.DisplayAliases()}
		logger.Info("alias file loaded",
			"path", cfg.AliasFile,
			"team_aliases", len(aliasFile.TeamAliases()),
			"display_aliases", len(aliasFile.DisplayAliases()),
		)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		fixtureRepo = cacherepo.NewFixtureRepository(fixtureRepo, store)
	}

	var source usecase.SubmissionSource
	if cfg.SourceDir != "" {
		dirSource, err := storage.NewDirSource(cfg.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("open source dir: %w", err)
		}
		source = dirSource
	} else {
		source = storage.NewClient(storage.ClientConfig{
			BaseURL:    cfg.StorageBaseURL,
			Token:      cfg.StorageToken,
			Timeout:    cfg.StorageTimeout,
			MaxRetries: cfg.StorageMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StorageCircuitEnabled,
				FailureThreshold: cfg.StorageCircuitFailureCount,
				OpenTimeout:      cfg.StorageCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenReq,
			},
		})
	}

	reconciler := usecase.NewReconcileService(fixtureRepo, predictions, logger)
	ingest := usecase.NewIngestService(source, teamRepo, playerRepo, fixtureRepo, watermarks, reconciler, cfg.FetchConcurrency, logger)
	backfill := usecase.NewBackfillService(ingest, logger)
	duplicates := usecase.NewDuplicateService(predictions, playerRepo, logger)
	sync := usecase.NewSyncService(teamWriter, playerWriter, fixtureWriter, id.NewRandomGenerator(), logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Ingest:     ingest,
		Backfill:   backfill,
		Duplicates: duplicates,
		Sync:       sync,
		db:         db,
	}, nil
}

func (a *App) Close(_ context.Context) error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

type aliasOverrideTeamRepository struct {
	team.Repository
	aliases []team.Alias
}

func (r aliasOverrideTeamRepository) ListAliases(_ context.Context) ([]team.Alias, error) {
	return append([]team.Alias(nil), r.aliases...), nil
}

type aliasOverridePlayerRepository struct {
	player.Repository
	aliases []player.DisplayAlias
}

func (r aliasOverridePlayerRepository) ListDisplayAliases(_ context.Context) ([]player.DisplayAlias, error) {
	return append([]player.DisplayAlias(nil), r.aliases...), nil
}
