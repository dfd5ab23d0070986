package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/biosecure/internal/envstruct"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/logging"
	"github.com/myrjola/biosecure/internal/mira"
	"github.com/myrjola/biosecure/internal/pprofserver"
	"github.com/myrjola/biosecure/internal/repositories"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/myrjola/biosecure/internal/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	templates      templateCache
	engines        map[string]*risk.Engine
	catalogs       map[string]risk.Catalog
	defaultCatalog string
	assistant      *mira.Assistant
	alerts         *repositories.AlertRepository
	learning       *repositories.LearningRepository
	records        *repositories.RecordRepository
	metrics        *metrics
	chatLimiter    *keyedLimiter
	now            func() time.Time
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	catalog := risk.DefaultCatalog()
	if cfg.CatalogPath != "" {
		var err error
		if catalog, err = risk.LoadCatalogFile(cfg.CatalogPath); err != nil {
			return errors.Wrap(err, "load catalog")
		}
	}
	engine, err := catalog.Engine(logger)
	if err != nil {
		return errors.Wrap(err, "build risk engine")
	}

	templates, err := newTemplateCache()
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour) //nolint:mnd // daily
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.HttpOnly = true

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // defaults
	)
	if cfg.PprofAddr != "" {
		if err = pprofserver.Launch(ctx, cfg.PprofAddr, registry, logger); err != nil {
			return errors.Wrap(err, "launch debug server")
		}
	}

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		templates:      templates,
		engines:        map[string]*risk.Engine{catalog.Name: engine},
		catalogs:       map[string]risk.Catalog{catalog.Name: catalog},
		defaultCatalog: catalog.Name,
		assistant:      mira.Default(),
		alerts:         repositories.NewAlertRepository(db, logger),
		learning:       repositories.NewLearningRepository(db, logger),
		records:        repositories.NewRecordRepository(db, logger),
		metrics:        newMetrics(registry),
		chatLimiter:    newKeyedLimiter(cfg.ChatRate),
		now:            time.Now,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stdout, logging.ParseLevel(os.Getenv("BIOSECURE_LOG_LEVEL")), nil)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
