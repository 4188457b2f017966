package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// erDupEntry is ER_DUP_ENTRY.
const erDupEntry = 1062

// MySQLConnector implements connector.Connector for MySQL and MariaDB.
type MySQLConnector struct {
	db *sqlx.DB
}

// New creates a new MySQLConnector.
func New() connector.Connector {
	return &MySQLConnector{}
}

// Connect establishes a connection to the MySQL database. DATETIME columns
// are always scanned into time.Time in UTC, and UPDATE reports matched rather
// than changed rows so a no-op update is not mistaken for a missing record.
func (c *MySQLConnector) Connect(cfg connector.ConnectionConfig) error {
	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return fmt.Errorf("mysql dsn: %w", err)
	}

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	connector.ConfigurePool(db, cfg)
	c.db = db
	return nil
}

func normalizeDSN(dsn string) (string, error) {
	mc, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// Disconnect closes the database connection pool.
func (c *MySQLConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *MySQLConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *MySQLConnector) DB() *sqlx.DB {
	return c.db
}

// DriverName returns the driver identifier for MySQL.
func (c *MySQLConnector) DriverName() string { return "mysql" }

// QuoteIdentifier wraps a SQL identifier in backticks.
func (c *MySQLConnector) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Placeholder returns the "?" placeholder format.
func (c *MySQLConnector) Placeholder() sq.PlaceholderFormat { return sq.Question }

// Paginate appends LIMIT/OFFSET.
func (c *MySQLConnector) Paginate(b sq.SelectBuilder, limit, offset uint64) sq.SelectBuilder {
	return connector.LimitOffset(b, limit, offset)
}

// IsUniqueViolation reports whether err is ER_DUP_ENTRY.
func (c *MySQLConnector) IsUniqueViolation(err error) bool {
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}

// Migrations returns the DDL for the dashboard schema. MySQL has no
// CREATE INDEX IF NOT EXISTS, so the store treats "Duplicate key name"
// as already applied.
func (c *MySQLConnector) Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(254) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'admin',
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL,
			UNIQUE KEY uq_admins_email (email)
		) DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS waitlist (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(254) NOT NULL,
			tier INT NOT NULL DEFAULT 3,
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
			invite_count INT NOT NULL DEFAULT 0,
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL
		) DEFAULT CHARSET=utf8mb4`,

		`CREATE INDEX idx_waitlist_created_at ON waitlist(created_at)`,
		`CREATE INDEX idx_waitlist_tier ON waitlist(tier)`,
		`CREATE INDEX idx_waitlist_email ON waitlist(email)`,
	}
}
