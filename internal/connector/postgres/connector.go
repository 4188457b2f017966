package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresConnector implements connector.Connector for PostgreSQL databases.
type PostgresConnector struct {
	db *sqlx.DB
}

// New creates a new PostgresConnector.
func New() connector.Connector {
	return &PostgresConnector{}
}

// Connect establishes a connection to the PostgreSQL database using the
// provided configuration and applies the pool settings.
func (c *PostgresConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	connector.ConfigurePool(db, cfg)
	c.db = db
	return nil
}

// Disconnect closes the database connection pool.
func (c *PostgresConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *PostgresConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *PostgresConnector) DB() *sqlx.DB {
	return c.db
}

// DriverName returns the driver identifier for PostgreSQL.
func (c *PostgresConnector) DriverName() string { return "postgres" }

// QuoteIdentifier wraps a SQL identifier in double quotes, escaping any
// embedded double quotes.
func (c *PostgresConnector) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Placeholder returns the $N placeholder format.
func (c *PostgresConnector) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

// Paginate appends LIMIT/OFFSET.
func (c *PostgresConnector) Paginate(b sq.SelectBuilder, limit, offset uint64) sq.SelectBuilder {
	return connector.LimitOffset(b, limit, offset)
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func (c *PostgresConnector) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Migrations returns the idempotent DDL for the dashboard schema.
func (c *PostgresConnector) Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id VARCHAR(36) PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email VARCHAR(254) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'admin',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS waitlist (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(254) NOT NULL,
			tier INTEGER NOT NULL DEFAULT 3,
			current_app VARCHAR(64),
			current_app_other TEXT,
			send_to_country VARCHAR(64),
			send_to_country_other TEXT,
			frequency VARCHAR(64),
			biggest_frustration VARCHAR(64),
			biggest_frustration_other TEXT,
			one_thing_to_change TEXT,
			investing_status VARCHAR(64),
			desired_feature VARCHAR(64),
			desired_feature_other TEXT,
			perfect_app_design TEXT,
			research_follow_up VARCHAR(64),
			preferred_contact_method VARCHAR(64),
			whatsapp_number VARCHAR(64),
			invite_count INTEGER NOT NULL DEFAULT 0,
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_waitlist_created_at ON waitlist(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_waitlist_tier ON waitlist(tier)`,
		`CREATE INDEX IF NOT EXISTS idx_waitlist_email ON waitlist(email)`,
	}
}
