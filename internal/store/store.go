// Package store is the dashboard's record store: administrator accounts and
// waitlist entries in a SQL database reached through a connector.Connector.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/waitdesk/waitdesk/internal/connector"
	"github.com/waitdesk/waitdesk/internal/connector/mssql"
	"github.com/waitdesk/waitdesk/internal/connector/mysql"
	"github.com/waitdesk/waitdesk/internal/connector/postgres"
	"github.com/waitdesk/waitdesk/internal/connector/sqlite"
)

// Store reads and writes dashboard records. It is safe for concurrent use.
type Store struct {
	conn connector.Connector
	db   *sqlx.DB
	sb   sq.StatementBuilderType
	now  func() time.Time
}

// NewRegistry returns a connector registry with every supported dialect.
func NewRegistry() *connector.Registry {
	r := connector.NewRegistry()
	r.RegisterDriver("sqlite", sqlite.New)
	r.RegisterDriver("postgres", postgres.New)
	r.RegisterDriver("mysql", mysql.New)
	r.RegisterDriver("mssql", mssql.New)
	return r
}

// Open wraps a connected connector and applies the schema migrations.
func Open(ctx context.Context, conn connector.Connector) (*Store, error) {
	s := New(conn)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps a connected connector without migrating.
func New(conn connector.Connector) *Store {
	return &Store{
		conn: conn,
		db:   conn.DB(),
		sb:   sq.StatementBuilder.PlaceholderFormat(conn.Placeholder()),
		now:  time.Now,
	}
}

// OpenMemory opens a migrated store on a private in-memory SQLite database.
func OpenMemory(ctx context.Context) (*Store, error) {
	conn := sqlite.New()
	if err := conn.Connect(connector.ConnectionConfig{Driver: "sqlite", DSN: sqlite.MemoryDSN}); err != nil {
		return nil, err
	}
	s, err := Open(ctx, conn)
	if err != nil {
		conn.Disconnect()
		return nil, err
	}
	return s, nil
}

// Migrate creates the schema. Statements that fail because the object
// already exists are skipped.
func (s *Store) Migrate(ctx context.Context) error {
	for _, m := range s.conn.Migrations() {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			if alreadyApplied(err) {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

func alreadyApplied(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "Duplicate key name") ||
		strings.Contains(msg, "duplicate column")
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Driver returns the dialect name.
func (s *Store) Driver() string {
	return s.conn.DriverName()
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Disconnect()
}

// SetClock replaces the time source used for created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
