package model

import "time"

// RoleAdmin is the only role an administrator can hold.
const RoleAdmin = "admin"

// Admin represents a dashboard operator. Passwords are stored as bcrypt
// hashes and never serialized.
type Admin struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// AdminProfile is the public view of an administrator returned by /auth/me.
type AdminProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Profile returns the public profile of a.
func (a *Admin) Profile() AdminProfile {
	return AdminProfile{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
