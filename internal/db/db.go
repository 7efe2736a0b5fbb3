package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// sqlx does not know the modernc driver name; it takes "?" placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLiteDSN builds the connection string used for a SQLite database file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// Open connects to the database for driver ("sqlite" or "postgres") and
// applies any pending migrations. For sqlite, dsn is a connection string as
// built by SQLiteDSN; for postgres it is a URL or keyword/value DSN.
func Open(driver, dsn string) (*sqlx.DB, error) {
	sqlDriver, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(driver, dsn); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to run migrations: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// OpenForTesting returns a migrated, private in-memory SQLite database.
func OpenForTesting() (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The in-memory database lives only as long as a connection to it does.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := runMigrations(DriverSQLite, dsn); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// runMigrations applies the embedded migrations for driver over a dedicated
// connection, which the migrate instance closes when done.
func runMigrations(driver, dsn string) error {
	sqlDriver, err := sqlDriverName(driver)
	if err != nil {
		return err
	}

	conn, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var m *migrate.Migrate
	switch driver {
	case DriverSQLite:
		target, derr := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
		if derr != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to create sqlite migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "sqlite", target)
	case DriverPostgres:
		target, derr := migratepgx.WithInstance(conn, &migratepgx.Config{})
		if derr != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to create postgres migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "pgx5", target)
	}
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
