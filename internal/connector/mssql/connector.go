package mssql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	mssqldriver "github.com/microsoft/go-mssqldb"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// Duplicate key errors: 2627 for constraints, 2601 for unique indexes.
const (
	errUniqueConstraint = 2627
	errUniqueIndex      = 2601
)

// MSSQLConnector implements connector.Connector for SQL Server databases.
type MSSQLConnector struct {
	db *sqlx.DB
}

// New creates a new MSSQLConnector.
func New() connector.Connector {
	return &MSSQLConnector{}
}

// Connect establishes a connection to the SQL Server database using the
// provided configuration and applies the pool settings.
func (c *MSSQLConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("sqlserver", cfg.DSN)
	if err != nil {
		return fmt.Errorf("mssql connect: %w", err)
	}
	connector.ConfigurePool(db, cfg)
	c.db = db
	return nil
}

// Disconnect closes the database connection pool.
func (c *MSSQLConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *MSSQLConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *MSSQLConnector) DB() *sqlx.DB {
	return c.db
}

// DriverName returns the driver identifier for SQL Server.
func (c *MSSQLConnector) DriverName() string { return "mssql" }

// QuoteIdentifier wraps a SQL identifier in brackets, escaping any
// embedded closing brackets to prevent SQL injection.
func (c *MSSQLConnector) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// Placeholder returns the @pN placeholder format.
func (c *MSSQLConnector) Placeholder() sq.PlaceholderFormat { return sq.AtP }

// Paginate uses OFFSET/FETCH, which SQL Server only accepts after ORDER BY.
// Every list query the store issues is ordered.
func (c *MSSQLConnector) Paginate(b sq.SelectBuilder, limit, offset uint64) sq.SelectBuilder {
	return b.Suffix("OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", offset, limit)
}

// IsUniqueViolation reports whether err is a duplicate key error.
func (c *MSSQLConnector) IsUniqueViolation(err error) bool {
	var msErr mssqldriver.Error
	if !errors.As(err, &msErr) {
		return false
	}
	return msErr.Number == errUniqueConstraint || msErr.Number == errUniqueIndex
}

// Migrations returns the idempotent DDL for the dashboard schema.
func (c *MSSQLConnector) Migrations() []string {
	return []string{
		`IF OBJECT_ID(N'admins', N'U') IS NULL
		CREATE TABLE admins (
			id NVARCHAR(36) NOT NULL PRIMARY KEY,
			name NVARCHAR(255) NOT NULL DEFAULT '',
			email NVARCHAR(254) NOT NULL CONSTRAINT uq_admins_email UNIQUE,
			password_hash NVARCHAR(255) NOT NULL,
			role NVARCHAR(32) NOT NULL DEFAULT 'admin',
			created_at DATETIMEOFFSET(3) NOT NULL,
			updated_at DATETIMEOFFSET(3) NOT NULL
		)`,

		`IF OBJECT_ID(N'waitlist', N'U') IS NULL
		CREATE TABLE waitlist (
			id NVARCHAR(36) NOT NULL PRIMARY KEY,
			email NVARCHAR(254) NOT NULL,
			tier INT NOT NULL DEFAULT 3,
			current_app NVARCHAR(64),
			current_app_other NVARCHAR(MAX),
			send_to_country NVARCHAR(64),
			send_to_country_other NVARCHAR(MAX),
			frequency NVARCHAR(64),
			biggest_frustration NVARCHAR(64),
			biggest_frustration_other NVARCHAR(MAX),
			one_thing_to_change NVARCHAR(MAX),
			investing_status NVARCHAR(64),
			desired_feature NVARCHAR(64),
			desired_feature_other NVARCHAR(MAX),
			perfect_app_design NVARCHAR(MAX),
			research_follow_up NVARCHAR(64),
			preferred_contact_method NVARCHAR(64),
			whatsapp_number NVARCHAR(64),
			invite_count INT NOT NULL DEFAULT 0,
			email_sent BIT NOT NULL DEFAULT 0,
			created_at DATETIMEOFFSET(3) NOT NULL,
			updated_at DATETIMEOFFSET(3) NOT NULL
		)`,

		indexDDL("idx_waitlist_created_at", "created_at"),
		indexDDL("idx_waitlist_tier", "tier"),
		indexDDL("idx_waitlist_email", "email"),
	}
}

func indexDDL(name, column string) string {
	return fmt.Sprintf(`IF NOT EXISTS (SELECT 1 FROM sys.indexes WHERE name = '%s' AND object_id = OBJECT_ID(N'waitlist'))
		CREATE INDEX %s ON waitlist(%s)`, name, name, column)
}
