package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/doeshing/sqai-go/internal/application/doctor"
	"github.com/doeshing/sqai-go/internal/application/query"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/infrastructure/ai"
	"github.com/doeshing/sqai-go/internal/infrastructure/cache"
	"github.com/doeshing/sqai-go/internal/infrastructure/config"
	"github.com/doeshing/sqai-go/internal/infrastructure/database"
	"github.com/doeshing/sqai-go/internal/infrastructure/glossary"
	"github.com/doeshing/sqai-go/internal/infrastructure/history"
	"github.com/doeshing/sqai-go/internal/infrastructure/metrics"
	"github.com/doeshing/sqai-go/internal/infrastructure/schema"
	"github.com/doeshing/sqai-go/internal/pkg/filesystem"
	"github.com/doeshing/sqai-go/internal/pkg/logger"
	"github.com/doeshing/sqai-go/internal/ports"
)

// Options controls container construction.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	QueryService   *query.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	SchemaCache    *cache.FileCache
	Metrics        *metrics.Recorder
	Logger         ports.Logger

	// DatabaseErr explains why no database handle exists. Commands that
	// never touch the database keep working when it is set.
	DatabaseErr error

	db           *sql.DB
	historyDB    *history.SQLiteStore
	liveSchema   ports.SchemaSource
	schemaKey    string
	schemaCached bool
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(opts.Verbose)
	recorder := metrics.NewRecorder()
	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Metrics:        recorder,
		Logger:         log,
	}

	if cfg.History.Enabled {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			log.Warn("history disabled", map[string]interface{}{"error": err.Error()})
		} else {
			c.historyDB = store
			c.HistoryStore = store
		}
	}

	ttl, err := schemaCacheTTL(cfg.Database.SchemaCacheTTL)
	if err != nil {
		return nil, err
	}
	c.SchemaCache = cache.NewFileCache(filepath.Join(filesystem.AppDir(), "cache", "schema"), ttl)
	c.schemaCached = cfg.Database.SchemaCacheTTL != "0"

	dsn := config.ResolveDSN(cfg.Database)
	var executor ports.QueryExecutor
	c.db, c.DatabaseErr = database.Open(cfg.Database.Driver, dsn)
	if c.DatabaseErr == nil {
		c.liveSchema, c.DatabaseErr = schema.ForDriver(c.db, cfg.Database)
		c.schemaKey = cache.Key(cfg.Database.Driver, dsn, cfg.Database.Schema)
		executor = database.NewExecutor(c.db)
	}

	c.QueryService = &query.Service{
		ConfigProvider: cfgLoader,
		Schema:         c.SchemaSource(false),
		Glossary:       glossary.NewFileSource(cfg.Glossary.Path),
		Invoker:        ai.NewInvoker(ai.NewFactory(), cfg.Models, log, recorder),
		Executor:       executor,
		History:        c.HistoryStore,
		Metrics:        recorder,
		Logger:         log,
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		DatabaseErr:    c.DatabaseErr,
		History:        c.HistoryStore,
	}
	if c.db != nil {
		db := c.db
		c.DoctorService.Ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	return c, nil
}

// SchemaSource returns the schema describer, behind the on-disk cache unless
// caching is disabled. With refresh set the cache is rewritten but not read.
func (c *Container) SchemaSource(refresh bool) ports.SchemaSource {
	if c.liveSchema == nil {
		return unavailableSchema{err: c.DatabaseErr}
	}
	if !c.schemaCached {
		return c.liveSchema
	}
	return schema.NewCached(c.liveSchema, c.SchemaCache, c.schemaKey, c.Config.Database, refresh)
}

// Close flushes metrics and releases database handles.
func (c *Container) Close() error {
	var errs []error
	if err := c.Metrics.WriteTextfile(c.Config.Metrics.Textfile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.historyDB != nil {
		errs = append(errs, c.historyDB.Close())
	}
	return errors.Join(errs...)
}

func schemaCacheTTL(raw string) (time.Duration, error) {
	if raw == "" {
		return domain.DefaultSchemaCacheTTL, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("database.schema_cache_ttl: %w", err)
	}
	return ttl, nil
}

type unavailableSchema struct {
	err error
}

func (u unavailableSchema) Describe(context.Context) (string, error) {
	if u.err == nil {
		return "", errors.New("database unavailable")
	}
	return "", u.err
}
