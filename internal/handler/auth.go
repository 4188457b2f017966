package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/waitdesk/waitdesk/internal/model"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
)

// AdminStore is the slice of the record store the admin endpoints use.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	UpdateAdmin(ctx context.Context, admin *model.Admin) error
	DeleteAdmin(ctx context.Context, id string) error
}

// AdminHandler serves sign-in, access management and self-service account
// endpoints.
type AdminHandler struct {
	admins   AdminStore
	sessions *service.SessionManager
	opts     Options
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admins AdminStore, sessions *service.SessionManager, opts Options) *AdminHandler {
	return &AdminHandler{admins: admins, sessions: sessions, opts: opts}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Admin   model.Admin `json:"admin"`
	Message string      `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type meResponse struct {
	Admin model.AdminProfile `json:"admin"`
}

// Login verifies an email and password and starts a session. Unknown emails
// and wrong passwords get the same answer.
// POST /api/auth/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if failed, err := failedTags(req); err != nil {
		writeServerError(w, r, h.opts, "Failed to login", err)
		return
	} else if failed != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, err := h.admins.GetAdminByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to login", err)
		return
	}

	if err := service.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeServerError(w, r, h.opts, "Failed to login", err)
		return
	}

	if err := h.sessions.Create(w, admin.ID, admin.Email); err != nil {
		writeServerError(w, r, h.opts, "Failed to login", err)
		return
	}

	h.opts.logger().InfoContext(r.Context(), "admin signed in", "admin_id", admin.ID)
	writeJSON(w, http.StatusOK, loginResponse{Admin: *admin, Message: "Login successful"})
}

// Logout clears the session cookie. It always succeeds.
// POST /api/auth/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// Me returns the signed-in admin's public profile.
// GET /api/auth/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessions.Current(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	admin, err := h.admins.GetAdmin(r.Context(), claims.AdminID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		writeServerError(w, r, h.opts, "Failed to fetch admin", err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Admin: admin.Profile()})
}
