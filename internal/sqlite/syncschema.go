package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/random"
	"log/slog"
	"strings"
)

// migrateTo makes the database schema match schemaDefinition.
//
// The migration is declarative. The target schema is created in a scratch in-memory database that is attached to
// the connection, then the two sqlite_schema tables are compared:
//
//  1. tables missing from the target are dropped,
//  2. tables missing from the database are created,
//  3. tables with a different definition are rebuilt with the 12-step procedure from
//     https://www.sqlite.org/lang_altertable.html#otheralter, keeping the common columns,
//  4. indexes and triggers are dropped and recreated where they differ.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/.
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) (err error) {
	// Foreign keys can't be toggled inside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign key validation")
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, errors.Wrap(fkErr, "re-enable foreign key validation"))
		}
	}()

	var target *sql.DB
	var targetDSN string
	if target, targetDSN, err = openSchemaTarget(ctx, schemaDefinition); err != nil {
		return errors.Wrap(err, "open schema target")
	}
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			closeErr = errors.Wrap(closeErr, "close schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				errors.SlogError(closeErr))
		}
	}()

	// ATTACH is not allowed inside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", targetDSN); err != nil {
		return errors.Wrap(err, "attach schema target database")
	}
	defer func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			detachErr = errors.Wrap(detachErr, "detach schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach schema target database",
				errors.SlogError(detachErr))
		}
	}()

	var tx *sqlx.Tx
	if tx, err = db.ReadWrite.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction",
				errors.SlogError(errors.Wrap(rbErr, "rollback")))
		}
	}()

	if err = db.migrateTables(ctx, tx); err != nil {
		return errors.Wrap(err, "migrate tables")
	}
	if err = db.migrateIndexesAndTriggers(ctx, tx); err != nil {
		return errors.Wrap(err, "migrate indexes and triggers")
	}

	var violations []string
	if err = tx.SelectContext(ctx, &violations, `SELECT "table" FROM pragma_foreign_key_check`); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if len(violations) > 0 {
		return errors.New("foreign key violations", slog.Any("tables", violations))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// openSchemaTarget creates schemaDefinition in a fresh in-memory database and returns it with its data source name.
// The database lives as long as the returned pool keeps a connection open.
func openSchemaTarget(ctx context.Context, schemaDefinition string) (*sql.DB, string, error) {
	var dbNameLength uint = 20
	randomID, err := random.Letters(dbNameLength)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate random ID")
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", randomID)
	target, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, "", errors.Wrap(err, "open")
	}
	target.SetMaxIdleConns(1)
	if _, err = target.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, "", errors.Join(errors.Wrap(err, "create target schema"), target.Close())
	}
	return target, dsn, nil
}

type changedTable struct {
	Name       string `db:"name"`
	CurrentSQL string `db:"current_sql"`
	NewSQL     string `db:"new_sql"`
}

func (db *Database) migrateTables(ctx context.Context, tx *sqlx.Tx) error {
	var deletedTables []string
	if err := tx.SelectContext(ctx, &deletedTables, `SELECT current.name
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND target.type IS NULL AND current.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query deleted tables")
	}
	for _, table := range deletedTables {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q", table)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", table))
		}
	}

	var newTableSQLs []string
	if err := tx.SelectContext(ctx, &newTableSQLs, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current ON current.name = target.name AND current.type = target.type
WHERE target.type = 'table' AND current.type IS NULL AND target.name NOT LIKE 'sqlite_%'`); err != nil {
		return errors.Wrap(err, "query new tables")
	}
	for _, query := range newTableSQLs {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", query))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return errors.Wrap(err, "create table", slog.String("query", query))
		}
	}

	var changedTables []changedTable
	if err := tx.SelectContext(ctx, &changedTables, `SELECT current.name AS name,
       current.sql AS current_sql,
       target.sql AS new_sql
FROM main.sqlite_schema AS current
JOIN schemaTarget.sqlite_schema AS target ON current.name = target.name AND current.type = target.type
WHERE current.type = 'table' AND current.name NOT LIKE 'sqlite_%' AND current.sql <> target.sql`); err != nil {
		return errors.Wrap(err, "query changed tables")
	}
	for _, table := range changedTables {
		if err := db.rebuildTable(ctx, tx, table); err != nil {
			return errors.Wrap(err, "rebuild table", slog.String("table", table.Name))
		}
	}
	return nil
}

// rebuildTable recreates a table with its new definition and copies over the columns both definitions share.
func (db *Database) rebuildTable(ctx context.Context, tx *sqlx.Tx, table changedTable) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("table", table.Name),
		slog.String("current_sql", table.CurrentSQL),
		slog.String("new_sql", table.NewSQL))

	tempName := table.Name + "_migration_temp"
	tempSQL := strings.Replace(table.NewSQL, table.Name, tempName, 1)
	if _, err := tx.ExecContext(ctx, tempSQL); err != nil {
		return errors.Wrap(err, "create table with temporary name", slog.String("query", tempSQL))
	}

	// Quoted because column names may be SQLite keywords.
	var columns []string
	if err := tx.SelectContext(ctx, &columns, `SELECT '"' || target.name || '"'
FROM pragma_table_info(?1, 'main') AS current
JOIN pragma_table_info(?1, 'schemaTarget') AS target ON target.name = current.name`, table.Name); err != nil {
		return errors.Wrap(err, "query common columns")
	}
	if len(columns) > 0 {
		common := strings.Join(columns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %q (%s) SELECT %s FROM %q", //nolint:gosec // names come from sqlite_schema
			tempName, common, common, table.Name)
		db.logger.LogAttrs(ctx, slog.LevelInfo, "copying data", slog.String("query", copySQL))
		if _, err := tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy data")
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q", table.Name)); err != nil {
		return errors.Wrap(err, "drop old table")
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %q RENAME TO %q", tempName, table.Name)); err != nil {
		return errors.Wrap(err, "rename new table")
	}
	return nil
}

type schemaObject struct {
	Type string `db:"type"`
	Name string `db:"name"`
	SQL  string `db:"sql"`
}

// migrateIndexesAndTriggers runs after the tables are in place. Dropping a table drops its indexes and triggers so
// rebuilt tables get theirs back here.
func (db *Database) migrateIndexesAndTriggers(ctx context.Context, tx *sqlx.Tx) error {
	// Automatic indexes have no SQL and are managed by SQLite.
	var stale []schemaObject
	if err := tx.SelectContext(ctx, &stale, `SELECT current.type, current.name, current.sql
FROM main.sqlite_schema AS current
LEFT JOIN schemaTarget.sqlite_schema AS target
       ON current.name = target.name AND current.type = target.type AND current.sql = target.sql
WHERE current.type IN ('index', 'trigger') AND current.sql IS NOT NULL AND target.name IS NULL`); err != nil {
		return errors.Wrap(err, "query stale objects")
	}
	for _, obj := range stale {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", obj.Type), slog.String("name", obj.Name))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP %s %q", strings.ToUpper(obj.Type), obj.Name)); err != nil {
			return errors.Wrap(err, "drop schema object", slog.String("name", obj.Name))
		}
	}

	var missing []schemaObject
	if err := tx.SelectContext(ctx, &missing, `SELECT target.type, target.name, target.sql
FROM schemaTarget.sqlite_schema AS target
LEFT JOIN main.sqlite_schema AS current
       ON current.name = target.name AND current.type = target.type AND current.sql = target.sql
WHERE target.type IN ('index', 'trigger') AND target.sql IS NOT NULL AND current.name IS NULL`); err != nil {
		return errors.Wrap(err, "query missing objects")
	}
	for _, obj := range missing {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object",
			slog.String("type", obj.Type), slog.String("query", obj.SQL))
		if _, err := tx.ExecContext(ctx, obj.SQL); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("name", obj.Name))
		}
	}
	return nil
}
