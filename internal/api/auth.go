package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/store"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	Gateway *auth.Gateway
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionResponse struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=256"`
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		validationError(w, err)
		return
	}

	user, err := h.Gateway.SignUp(r.Context(), req.Email, req.Password)
	if errors.Is(err, store.ErrEmailTaken) {
		jsonError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInput) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to sign up", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to sign up")
		return
	}

	jsonResponse(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	session, err := h.Gateway.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to sign in", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, loginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())
	jsonResponse(w, http.StatusOK, sessionResponse{UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Gateway.SignOut(r.Context(), auth.SessionFromContext(r.Context())); err != nil {
		slog.Error("failed to sign out", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		validationError(w, err)
		return
	}

	err := h.Gateway.ChangePassword(r.Context(), s.UserID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		jsonError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	if err != nil {
		if errors.Is(err, auth.ErrInvalidInput) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to change password", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	slog.Info("user changed password", "email", s.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
