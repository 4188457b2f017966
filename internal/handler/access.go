package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/server/middleware"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

type createAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// ListAdmins returns every admin, newest first.
// GET /api/access
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.ListAdmins(r.Context())
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to fetch admins", err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

// CreateAdmin grants dashboard access to a new admin.
// POST /api/access
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	failed, err := failedTags(req)
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to create admin", err)
		return
	}
	switch {
	case hasTag(failed, "required"):
		writeError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	case failed["email"] != "":
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	case failed["password"] == "max":
		writeError(w, http.StatusBadRequest, passwordTooLongMessage)
		return
	case failed["password"] != "":
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := service.HashPassword(req.Password)
	if errors.Is(err, service.ErrPasswordTooLong) {
		writeError(w, http.StatusBadRequest, passwordTooLongMessage)
		return
	}
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to create admin", err)
		return
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := h.admins.CreateAdmin(r.Context(), admin); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "Admin with this email already exists")
			return
		}
		writeServerError(w, r, h.opts, "Failed to create admin", err)
		return
	}

	h.opts.logger().InfoContext(r.Context(), "admin created",
		"admin_id", admin.ID,
		"created_by", sessionAdminID(r),
	)
	writeJSON(w, http.StatusCreated, admin)
}

// DeleteAdmin revokes an admin's access. Admins cannot remove themselves.
// DELETE /api/access/{id}
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Admin id is required")
		return
	}
	if id == sessionAdminID(r) {
		writeError(w, http.StatusBadRequest, "You cannot remove your own access")
		return
	}

	if err := h.admins.DeleteAdmin(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Admin not found")
			return
		}
		writeServerError(w, r, h.opts, "Failed to delete admin", err)
		return
	}

	h.opts.logger().InfoContext(r.Context(), "admin deleted",
		"admin_id", id,
		"deleted_by", sessionAdminID(r),
	)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Admin deleted successfully"})
}

func sessionAdminID(r *http.Request) string {
	if claims := middleware.GetSession(r.Context()); claims != nil {
		return claims.AdminID
	}
	return ""
}
