package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tutorspet/tutorspet/config"
	"github.com/tutorspet/tutorspet/internal/application/eventhandler"
	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/application/sampledata"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/infrastructure/messaging"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/file"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/postgres"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/redis"
	"github.com/tutorspet/tutorspet/pkg/circuitbreaker"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// App holds the wired components of one invocation.
type App struct {
	cfg *config.Config
	log *logger.Logger
	out io.Writer

	repo      tutorspet.Repository
	conn      *postgres.Connection
	snapshots *postgres.SnapshotRepository
	cache     *redis.Cache

	bus         *messaging.InMemoryEventBus
	manager     *model.Manager
	autosaveErr error
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer) (*App, error) {
	a := &App{cfg: cfg, log: log, out: out}

	var durable tutorspet.Repository
	var namespace string

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		conn, err := connectPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.conn = conn
		a.snapshots = postgres.NewSnapshotRepository(conn, postgres.SnapshotRepositoryConfig{
			Namespace:     cfg.Database.Namespace,
			KeepRevisions: cfg.Database.KeepRevisions,
		}, log)
		durable = a.snapshots
		namespace = "pg:" + cfg.Database.Namespace
	default:
		durable = file.NewStorage(cfg.Storage.Path, log)
		namespace = "file:" + absPath(cfg.Storage.Path)
	}
	a.repo = durable

	if cfg.Redis.Enabled {
		cache, err := redis.NewCache(redisConfig(cfg.Redis, namespace))
		if err != nil {
			log.Warn("redis unavailable, snapshot cache disabled", logger.Err(err))
		} else {
			a.cache = cache
			breaker := circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
				log.Warn("circuit breaker state changed",
					logger.String("breaker", name),
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			}, circuitbreaker.WithIsFailure(redis.IsCacheFailure))
			a.repo = redis.NewCachedRepository(durable, redis.NewSnapshotCache(cache, breaker), log)
		}
	}

	a.bus = messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		Logger:        log,
		EnableMetrics: cfg.App.Debug,
	})

	return a, nil
}

// open loads the stored data and builds the model with autosave attached.
func (a *App) open(ctx context.Context) error {
	if a.conn != nil && a.cfg.Database.AutoMigrate {
		applied, err := postgres.NewMigrator(a.conn).Migrate(ctx)
		if err != nil {
			return err
		}
		if applied > 0 {
			a.log.Info("database migrated", logger.Int("applied", applied))
		}
	}

	initial, err := loadInitial(ctx, a.repo, a.cfg.Storage, a.log)
	if err != nil {
		return err
	}

	autosave := eventhandler.NewOnStateChangedHandler(a.repo, a.bus, a.log,
		eventhandler.StateChangedConfig{SaveTimeout: a.cfg.Storage.SaveTimeout})
	if err := a.bus.Subscribe(shared.EventStateChanged, func(e shared.Event) error {
		a.autosaveErr = autosave.Handle(e)
		return a.autosaveErr
	}); err != nil {
		return err
	}
	if err := a.bus.Subscribe(shared.EventStorageSaved, func(e shared.Event) error {
		if saved, ok := e.(*tutorspet.StorageSavedEvent); ok && saved.Skipped {
			a.log.Debug("stored data already up to date")
		}
		return nil
	}); err != nil {
		return err
	}

	a.manager = model.NewManager(initial, model.WithPublisher(a.bus), model.WithLogger(a.log))
	return nil
}

// loadInitial returns the stored aggregate. Missing storage starts from the
// sample data or empty. Corrupted storage is an error in strict mode and
// otherwise starts empty.
func loadInitial(ctx context.Context, repo tutorspet.Repository, cfg config.StorageConfig, log *logger.Logger) (*tutorspet.TutorsPet, error) {
	t, err := repo.Load(ctx)
	switch {
	case err == nil:
		return t, nil
	case errors.Is(err, shared.ErrStorageNotFound):
		if cfg.SeedSampleData {
			log.Info("no stored data found, starting with sample data")
			return sampledata.TutorsPet(), nil
		}
		log.Info("no stored data found, starting empty")
		return tutorspet.New(), nil
	case shared.IsStorageCorrupted(err):
		if cfg.Strict {
			return nil, fmt.Errorf("%w (set STORAGE_STRICT=false to start with empty data)", err)
		}
		log.Warn("stored data is corrupted, starting with empty data", logger.Err(err))
		return tutorspet.New(), nil
	default:
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
}

// execute runs cmd and reports a failed autosave as an error.
func (a *App) execute(cmd model.Executable) (model.Result, error) {
	a.autosaveErr = nil
	res, err := a.manager.Execute(cmd)
	if err != nil {
		return model.Result{}, err
	}
	if a.autosaveErr != nil {
		return res, fmt.Errorf("changes were not saved: %w", a.autosaveErr)
	}
	return res, nil
}

// Close releases every connection the App opened.
func (a *App) Close() {
	if a.bus != nil {
		if a.cfg.App.Debug {
			m := a.bus.Metrics().Snapshot()
			a.log.Debug("event bus metrics",
				logger.Int64("published", m.TotalPublished),
				logger.Int64("handler_failures", m.HandlerFailures),
			)
		}
		_ = a.bus.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.conn != nil {
		a.conn.Close()
	}
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig) (*postgres.Connection, error) {
	if cfg.URL != "" {
		return postgres.NewConnectionFromURL(ctx, cfg.URL)
	}
	pg := postgres.DefaultConfig()
	pg.Host = cfg.Host
	pg.Port = cfg.Port
	pg.Database = cfg.Name
	pg.User = cfg.User
	pg.Password = cfg.Password
	pg.SSLMode = cfg.SSLMode
	pg.MaxConns = int32(cfg.MaxConns)
	pg.MinConns = int32(cfg.MinConns)
	return postgres.NewConnection(ctx, pg)
}

func redisConfig(cfg config.RedisConfig, namespace string) redis.Config {
	rc := redis.DefaultConfig()
	rc.Host = cfg.Host
	rc.Port = cfg.Port
	rc.Password = cfg.Password
	rc.DB = cfg.DB
	rc.PoolSize = cfg.PoolSize
	rc.DialTimeout = cfg.DialTimeout
	rc.ReadTimeout = cfg.ReadTimeout
	rc.WriteTimeout = cfg.WriteTimeout
	rc.TTL = cfg.TTL
	rc.Namespace = namespace
	return rc
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
