package repos

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"lascala/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// OpenDB connects with driver "sqlite" or "pgx" and verifies the connection.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection: keeps ":memory:" databases alive and serialises writers
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies pending goose migrations.
func Migrate(db *sqlx.DB) error {
	dialect := "postgres"
	if db.DriverName() == "sqlite" {
		dialect = "sqlite3"
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Setup migrates and, when seed is set, loads the demo catalog into an
// empty database.
func Setup(db *sqlx.DB, seed bool) error {
	if err := Migrate(db); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	return SeedIfEmpty(db)
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) { log.L().Sugar().Infof(format, v...) }
func (gooseLogger) Fatalf(format string, v ...any) { log.L().Sugar().Fatalf(format, v...) }

// now is the fixed-width UTC timestamp stored in *_at columns, so text
// ordering matches time ordering.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
