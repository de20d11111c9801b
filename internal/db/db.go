// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/codr1/CopticLeague/internal/config"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a league database connection with its generated queries.
type DB struct {
	*sql.DB
	Queries *dbgen.Queries
}

// New opens a SQLite database for the given data source name, applies the
// embedded migrations, and returns a DB with generated queries bound to the
// connection. Foreign keys and immediate write transactions are enabled in
// the DSN unless the caller already set them.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", prepareDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &DB{
		DB:      sqlDB,
		Queries: dbgen.New(sqlDB),
	}, nil
}

// NewFromConfig creates the database directory if needed and opens the
// configured database via New.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		return New(cfg.Database.Filename)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// prepareDSN adds `_fk=1` and `_txlock=immediate` when missing. Immediate
// transactions take the write lock at BEGIN, so two reconciliations of the
// same game cannot both read the prior state before either writes.
func prepareDSN(dataSourceName string) string {
	dataSourceName = appendDSNParam(dataSourceName, "_fk", "1")
	return appendDSNParam(dataSourceName, "_txlock", "immediate")
}

func appendDSNParam(dataSourceName, key, value string) string {
	if strings.Contains(dataSourceName, key+"=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&" + key + "=" + value
	}
	return dataSourceName + "?" + key + "=" + value
}

func migrationSource() (source.Driver, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return src, nil
}

// runMigrations brings the schema up to date on an open connection.
func runMigrations(conn *sql.DB) error {
	src, err := migrationSource()
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite3 migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// NewMigrator returns a migrate instance over the embedded migrations for
// the SQLite file at path. The caller closes it.
func NewMigrator(path string) (*migrate.Migrate, error) {
	src, err := migrationSource()
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func (db *DB) withTx(tx *sql.Tx) *DB {
	return &DB{DB: db.DB, Queries: db.Queries.WithTx(tx)}
}

// RunInTx runs fn against a transaction-bound DB. The transaction commits
// when fn returns nil and rolls back on error or panic. Because the DSN sets
// _txlock=immediate, the write lock is held from the first statement.
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) (err error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	if err = fn(db.withTx(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
