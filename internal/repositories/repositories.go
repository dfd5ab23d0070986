// Package repositories reads the reference farm content from SQLite.
package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/sqlite"
)

var ErrNotFound = errors.NewSentinel("not found")

type orderedText struct {
	OwnerID string `db:"owner_id"`
	Text    string `db:"text"`
}

// groupTexts returns the texts per owner in query order.
func groupTexts(rows []orderedText) map[string][]string {
	grouped := make(map[string][]string)
	for _, r := range rows {
		grouped[r.OwnerID] = append(grouped[r.OwnerID], r.Text)
	}
	return grouped
}

func notFoundOr(err error, msg string, attrs ...slog.Attr) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, msg, attrs...)
	}
	return errors.Wrap(err, msg, attrs...)
}

type repository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func newRepository(dbs *sqlite.Database, logger *slog.Logger, source string) repository {
	return repository{dbs: dbs, logger: logger.With(slog.String("source", source))}
}

func (r repository) selectTexts(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	var rows []orderedText
	if err := r.dbs.ReadOnly.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select texts")
	}
	return groupTexts(rows), nil
}
