package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/random"
)

// migrateTo makes the live schema match target with a declarative migration:
//
//  1. tables missing from target are dropped and new ones created,
//  2. changed tables are rebuilt with the 12-step procedure of https://www.sqlite.org/lang_altertable.html#otheralter
//     keeping the columns both versions share,
//  3. indexes and triggers are dropped and recreated wherever their SQL differs.
//
// Target is first applied to a scratch in-memory database which is attached as schemaTarget for comparison.
func (db *Database) migrateTo(ctx context.Context, target string) (err error) {
	scratchName, err := random.Letters(inMemoryNameLength)
	if err != nil {
		return errors.Wrap(err, "generate scratch database name")
	}
	scratchDSN := fmt.Sprintf("file:%s?mode=memory&cache=shared", scratchName)
	scratch, err := sqlx.Open("sqlite3", scratchDSN)
	if err != nil {
		return errors.Wrap(err, "open scratch database")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(scratch.Close(), "close scratch database"))
	}()
	if _, err = scratch.ExecContext(ctx, target); err != nil {
		return errors.Wrap(err, "apply target schema to scratch database")
	}

	conn, err := db.ReadWrite.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer func() {
		err = errors.Join(err, errors.Wrap(conn.Close(), "release connection"))
	}()

	// Foreign keys and ATTACH cannot be toggled inside a transaction.
	if _, err = conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign keys")
	}
	defer func() {
		if _, fkErr := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, errors.Wrap(fkErr, "re-enable foreign keys"))
		}
	}()
	if _, err = conn.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", scratchDSN); err != nil {
		return errors.Wrap(err, "attach scratch database")
	}
	defer func() {
		if _, detachErr := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE schemaTarget"); detachErr != nil {
			err = errors.Join(err, errors.Wrap(detachErr, "detach scratch database"))
		}
	}()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = db.syncTables(ctx, tx); err != nil {
		return errors.Wrap(err, "sync tables")
	}
	if err = db.syncIndexesAndTriggers(ctx, tx); err != nil {
		return errors.Wrap(err, "sync indexes and triggers")
	}
	var violations []struct {
		Table  string `db:"table"`
		RowID  *int64 `db:"rowid"`
		Parent string `db:"parent"`
		FKID   int    `db:"fkid"`
	}
	if err = tx.SelectContext(ctx, &violations, "PRAGMA foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if len(violations) > 0 {
		return errors.New("foreign key violations after migration",
			slog.String("table", violations[0].Table), slog.Int("count", len(violations)))
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit migration")
	}
	return nil
}

type changedTable struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	NewSQL     string `db:"new_sql"`
}

func (db *Database) syncTables(ctx context.Context, tx *sqlx.Tx) error {
	var dropped []string
	if err := tx.SelectContext(ctx, &dropped, `SELECT current.name
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND target.type IS NULL AND current.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query dropped tables")
	}
	for _, table := range dropped {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE "%s"`, table)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", table))
		}
	}

	var created []string
	if err := tx.SelectContext(ctx, &created, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type = 'table' AND current.type IS NULL AND target.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query new tables")
	}
	for _, query := range created {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", query))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "create table", slog.String("query", query))
		}
	}

	var changed []changedTable
	if err := tx.SelectContext(ctx, &changed, `SELECT current.name, current.sql AS current_sql, target.sql AS new_sql
FROM main.sqlite_schema AS current
JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND current.name NOT LIKE 'sqlite_%' AND current.sql <> target.sql`); err != nil {
		return errors.Wrap(err, "query changed tables")
	}
	for _, table := range changed {
		if err := db.rebuildTable(ctx, tx, table); err != nil {
			return errors.Wrap(err, "rebuild table", slog.String("table", table.Name))
		}
	}
	return nil
}

func (db *Database) rebuildTable(ctx context.Context, tx *sqlx.Tx, table changedTable) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "rebuilding table",
		slog.String("table", table.Name),
		slog.String("current_sql", table.CurrentSQL),
		slog.String("new_sql", table.NewSQL))

	tempName := table.Name + "_migration_temp"
	createTemp := strings.Replace(table.NewSQL, table.Name, tempName, 1)
	if _, err := tx.ExecContext(ctx, createTemp); err != nil {
		return errors.Wrap(err, "create replacement table", slog.String("query", createTemp))
	}

	// Quoted so that columns named after keywords survive.
	var columns []string
	if err := tx.SelectContext(ctx, &columns, `SELECT '"' || target.name || '"'
FROM pragma_table_info(?) AS current
JOIN pragma_table_info(?, 'schemaTarget') AS target ON target.name = current.name`,
		table.Name, table.Name); err != nil {
		return errors.Wrap(err, "query shared columns")
	}
	if len(columns) > 0 {
		shared := strings.Join(columns, ", ")
		copySQL := fmt.Sprintf(`INSERT INTO "%s" (%s) SELECT %s FROM "%s"`, tempName, shared, shared, table.Name)
		if _, err := tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy rows", slog.String("query", copySQL))
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE "%s"`, table.Name)); err != nil {
		return errors.Wrap(err, "drop previous table")
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE "%s" RENAME TO "%s"`, tempName, table.Name)); err != nil {
		return errors.Wrap(err, "rename replacement table")
	}
	return nil
}

type schemaObject struct {
	Type string `db:"type"`
	Name string `db:"name"`
}

func (db *Database) syncIndexesAndTriggers(ctx context.Context, tx *sqlx.Tx) error {
	// Automatic indexes have NULL sql and follow their table.
	var stale []schemaObject
	if err := tx.SelectContext(ctx, &stale, `SELECT current.type, current.name
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type IN ('index', 'trigger') AND current.sql IS NOT NULL
  AND (target.sql IS NULL OR target.sql <> current.sql)`); err != nil {
		return errors.Wrap(err, "query stale indexes and triggers")
	}
	for _, o := range stale {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping "+o.Type, slog.String("name", o.Name))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP %s IF EXISTS "%s"`, strings.ToUpper(o.Type), o.Name)); err != nil {
			return errors.Wrap(err, "drop "+o.Type, slog.String("name", o.Name))
		}
	}

	var missing []string
	if err := tx.SelectContext(ctx, &missing, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type IN ('index', 'trigger') AND target.sql IS NOT NULL AND current.sql IS NULL`); err != nil {
		return errors.Wrap(err, "query missing indexes and triggers")
	}
	for _, query := range missing {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object", slog.String("query", query))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("query", query))
		}
	}
	return nil
}
