package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

// updateAccountRequest holds the optional fields of an account update.
// Absent fields are left unchanged.
type updateAccountRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type accountResponse struct {
	Admin   model.Admin `json:"admin"`
	Message string      `json:"message"`
}

// UpdateAccount lets the signed-in admin change their name, email or
// password. A password change must present the current password.
// PATCH /api/account
func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessions.Current(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateAccountRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}
	if failed, err := failedTags(req); err != nil {
		writeServerError(w, r, h.opts, "Failed to update account", err)
		return
	} else if failed != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	admin, err := h.admins.GetAdmin(r.Context(), claims.AdminID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to update account", err)
		return
	}

	emailChanged := false
	if req.Email != nil && *req.Email != "" && !strings.EqualFold(*req.Email, admin.Email) {
		existing, err := h.admins.GetAdminByEmail(r.Context(), *req.Email)
		switch {
		case err == nil && existing.ID != admin.ID:
			writeError(w, http.StatusBadRequest, "Email is already taken")
			return
		case err != nil && !errors.Is(err, store.ErrNotFound):
			writeServerError(w, r, h.opts, "Failed to update account", err)
			return
		}
		admin.Email = *req.Email
		emailChanged = true
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		admin.Name = strings.TrimSpace(*req.Name)
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			writeError(w, http.StatusBadRequest, "Current password is required to change password")
			return
		}
		if err := service.CheckPassword(admin.PasswordHash, req.CurrentPassword); err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Current password is incorrect")
				return
			}
			writeServerError(w, r, h.opts, "Failed to update account", err)
			return
		}
		hash, err := service.HashPassword(req.NewPassword)
		if errors.Is(err, service.ErrPasswordTooShort) {
			writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			writeError(w, http.StatusBadRequest, passwordTooLongMessage)
			return
		}
		if err != nil {
			writeServerError(w, r, h.opts, "Failed to update account", err)
			return
		}
		admin.PasswordHash = hash
	}

	if err := h.admins.UpdateAdmin(r.Context(), admin); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "Email is already taken")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Admin not found")
		default:
			writeServerError(w, r, h.opts, "Failed to update account", err)
		}
		return
	}

	// The session carries the email, so it is reissued after a change.
	if emailChanged {
		if err := h.sessions.Create(w, admin.ID, admin.Email); err != nil {
			writeServerError(w, r, h.opts, "Failed to update account", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, accountResponse{Admin: *admin, Message: "Account updated successfully"})
}
