package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/waitdesk/waitdesk/internal/model"
)

var adminColumns = []string{
	"id", "name", "email", "password_hash", "role", "created_at", "updated_at",
}

// CreateAdmin inserts a new admin account. ID, Role, CreatedAt and UpdatedAt
// are populated before the insert. A taken email yields ErrDuplicateEmail.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	now := s.timestamp()
	admin.ID = newID()
	admin.Email = normalizeEmail(admin.Email)
	if admin.Role == "" {
		admin.Role = model.RoleAdmin
	}
	admin.CreatedAt = now
	admin.UpdatedAt = now

	q, args, err := s.sb.Insert("admins").
		Columns(adminColumns...).
		Values(admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Role, admin.CreatedAt, admin.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert admin: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.conn.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetAdmin returns an admin by ID.
func (s *Store) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	return s.getAdmin(ctx, sq.Eq{"id": id})
}

// GetAdminByEmail returns an admin by email address.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.getAdmin(ctx, sq.Eq{"email": normalizeEmail(email)})
}

func (s *Store) getAdmin(ctx context.Context, where sq.Eq) (*model.Admin, error) {
	q, args, err := s.sb.Select(adminColumns...).From("admins").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get admin: %w", err)
	}

	var admin model.Admin
	if err := s.db.GetContext(ctx, &admin, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts, newest first.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	q, args, err := s.sb.Select(adminColumns...).From("admins").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list admins: %w", err)
	}

	admins := []model.Admin{}
	if err := s.db.SelectContext(ctx, &admins, q, args...); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// CountAdmins returns the number of admin accounts.
func (s *Store) CountAdmins(ctx context.Context) (int64, error) {
	q, args, err := s.sb.Select("COUNT(*)").From("admins").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count admins: %w", err)
	}
	var n int64
	if err := s.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// UpdateAdmin saves name, email and password hash for admin.ID and bumps
// UpdatedAt. A taken email yields ErrDuplicateEmail.
func (s *Store) UpdateAdmin(ctx context.Context, admin *model.Admin) error {
	admin.Email = normalizeEmail(admin.Email)
	updatedAt := s.timestamp()

	q, args, err := s.sb.Update("admins").
		Set("name", admin.Name).
		Set("email", admin.Email).
		Set("password_hash", admin.PasswordHash).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": admin.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update admin: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		if s.conn.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update admin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	admin.UpdatedAt = updatedAt
	return nil
}

// DeleteAdmin removes an admin account.
func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	q, args, err := s.sb.Delete("admins").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete admin: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete admin rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
