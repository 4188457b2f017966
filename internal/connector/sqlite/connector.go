// Package sqlite is the default dashboard store dialect, backed by the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteConnector implements connector.Connector for SQLite databases.
type SQLiteConnector struct {
	db *sqlx.DB
}

// New creates a new SQLiteConnector.
func New() connector.Connector {
	return &SQLiteConnector{}
}

// Connect opens the SQLite database file named by the DSN, or an in-memory
// database for ":memory:". Timestamps are written in SQLite's text format so
// range predicates on created_at compare chronologically.
func (c *SQLiteConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("sqlite", withTimeFormat(cfg.DSN))
	if err != nil {
		return fmt.Errorf("sqlite connect: %w", err)
	}

	// Pool settings are ignored: one writer at a time, and an in-memory
	// database lives and dies with its single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	c.db = db
	return nil
}

func withTimeFormat(dsn string) string {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_time_format=sqlite"
}

// Disconnect closes the database connection.
func (c *SQLiteConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *SQLiteConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *SQLiteConnector) DB() *sqlx.DB {
	return c.db
}

// DriverName returns the driver identifier for SQLite.
func (c *SQLiteConnector) DriverName() string { return "sqlite" }

// QuoteIdentifier wraps a SQL identifier in double quotes, escaping any
// embedded double quotes to prevent SQL injection.
func (c *SQLiteConnector) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Placeholder returns the "?" placeholder format.
func (c *SQLiteConnector) Placeholder() sq.PlaceholderFormat { return sq.Question }

// Paginate appends LIMIT/OFFSET.
func (c *SQLiteConnector) Paginate(b sq.SelectBuilder, limit, offset uint64) sq.SelectBuilder {
	return connector.LimitOffset(b, limit, offset)
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
func (c *SQLiteConnector) IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Migrations returns the idempotent DDL for the dashboard schema.
func (c *SQLiteConnector) Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'admin',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS waitlist (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			tier INTEGER NOT NULL DEFAULT 3,
			current_app TEXT,
			current_app_other TEXT,
			send_to_country TEXT,
			send_to_country_other TEXT,
			frequency TEXT,
			biggest_frustration TEXT,
			biggest_frustration_other TEXT,
			one_thing_to_change TEXT,
			investing_status TEXT,
			desired_feature TEXT,
			desired_feature_other TEXT,
			perfect_app_design TEXT,
			research_follow_up TEXT,
			preferred_contact_method TEXT,
			whatsapp_number TEXT,
			invite_count INTEGER NOT NULL DEFAULT 0,
			email_sent INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_waitlist_created_at ON waitlist(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_waitlist_tier ON waitlist(tier)`,
		`CREATE INDEX IF NOT EXISTS idx_waitlist_email ON waitlist(email)`,
	}
}
