package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/random"
)

//go:embed schema.sql
var schemaDefinition string

//go:embed fixtures.sql
var fixtures string

const (
	maxReadConns       = 10
	inMemoryNameLength = 20
)

// Database holds a single-connection writer pool and a read-only reader pool over the same file.
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
	logger    *slog.Logger
}

// NewDatabase connects to the database at url, synchronises the schema, loads the reference farm
// content and starts the background optimizer which stops when ctx is done.
//
// Use ":memory:" for a private in-memory database, which is what the tests do.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(url, logger)
	if err != nil {
		return nil, errors.Wrap(err, "connect", slog.String("url", url))
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Wrap(err, "synchronise schema")
	}
	if _, err = db.ReadWrite.ExecContext(ctx, fixtures); err != nil {
		return nil, errors.Wrap(err, "apply fixtures")
	}
	go db.startOptimizer(ctx, time.Hour)
	return db, nil
}

func connect(url string, logger *slog.Logger) (*Database, error) {
	// Both pools must see the same in-memory database, so it gets a shared cache under a unique name.
	inMemoryConfig := ""
	if strings.Contains(url, ":memory:") {
		name, err := random.Letters(inMemoryNameLength)
		if err != nil {
			return nil, errors.Wrap(err, "generate in-memory database name")
		}
		url = name
		inMemoryConfig = "&mode=memory&cache=shared"
	}

	// Underscore-prefixed options are pragmas, https://www.sqlite.org/pragma.html.
	pragmas := strings.Join([]string{
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
		"_temp_store=memory",
	}, "&")
	readWriteDSN := fmt.Sprintf("file:%s?_txlock=immediate&%s%s", url, pragmas, inMemoryConfig)
	readOnlyDSN := fmt.Sprintf("file:%s?_txlock=deferred&_query_only=true&%s%s", url, pragmas, inMemoryConfig)
	if inMemoryConfig == "" {
		readWriteDSN += "&mode=rwc"
		readOnlyDSN += "&mode=ro"
	}

	readWrite, err := sqlx.Open("sqlite3", readWriteDSN)
	if err != nil {
		return nil, errors.Wrap(err, "open read-write pool")
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)

	readOnly, err := sqlx.Open("sqlite3", readOnlyDSN)
	if err != nil {
		return nil, errors.Wrap(err, "open read-only pool")
	}
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger.With(slog.String("source", "sqlite")),
	}, nil
}

// Close closes both pools.
func (db *Database) Close() error {
	return errors.Join(
		errors.Wrap(db.ReadOnly.Close(), "close read-only pool"),
		errors.Wrap(db.ReadWrite.Close(), "close read-write pool"),
	)
}
