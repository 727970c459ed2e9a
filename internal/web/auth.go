package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	pd := pageData(r, "Sign in")
	s.Templates.Render(w, "login.html", &pd)
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	session, err := s.Gateway.SignIn(r.Context(), email, password)
	if err != nil {
		msg := "Invalid email or password."
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("failed to sign in", "error", err)
			msg = "Sign in failed, try again."
		}
		s.Templates.Render(w, "login.html", &PageData{Title: "Sign in", Error: msg})
		return
	}

	setAuthCookie(w, session, s.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	pd := pageData(r, "Create account")
	s.Templates.Render(w, "signup.html", &pd)
}

// SignupSubmit handles POST /signup. A successful sign-up signs the user in.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if password != r.FormValue("confirm") {
		s.Templates.Render(w, "signup.html", &PageData{Title: "Create account", Error: "Passwords do not match."})
		return
	}

	if _, err := s.Gateway.SignUp(r.Context(), email, password); err != nil {
		var msg string
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			msg = "An account with this email already exists."
		case errors.Is(err, auth.ErrInvalidInput):
			msg = "Enter a valid email and a password of at least 8 characters."
		default:
			slog.Error("failed to sign up", "error", err)
			msg = "Sign up failed, try again."
		}
		s.Templates.Render(w, "signup.html", &PageData{Title: "Create account", Error: msg})
		return
	}

	session, err := s.Gateway.SignIn(r.Context(), email, password)
	if err != nil {
		slog.Error("failed to sign in after sign up", "error", err)
		redirectFlash(w, r, "/login", "success", "Account created, please sign in.")
		return
	}

	setAuthCookie(w, session, s.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The session's token is revoked so
// copies of it held by page scripts stop working too.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		if session, err := s.Gateway.Resolve(r.Context(), cookie.Value); err == nil {
			if err := s.Gateway.SignOut(r.Context(), session); err != nil {
				slog.Error("failed to revoke session", "error", err)
			}
		}
	}

	clearAuthCookie(w, s.SecureCookies)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	pd := pageData(r, "Settings")
	s.Templates.Render(w, "settings.html", &pd)
}

// SettingsSubmit handles POST /settings (change own password).
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	if current == "" || next == "" {
		redirectFlash(w, r, "/settings", "error", "Enter your current and new password.")
		return
	}

	err := s.Gateway.ChangePassword(r.Context(), session.UserID, current, next)
	switch {
	case err == nil:
		slog.Info("user changed password", "email", session.Email)
		redirectFlash(w, r, "/settings", "success", "Password changed.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		redirectFlash(w, r, "/settings", "error", "Current password is incorrect.")
	case errors.Is(err, auth.ErrInvalidInput):
		redirectFlash(w, r, "/settings", "error", "New password must be at least 8 characters.")
	default:
		slog.Error("failed to change password", "error", err)
		redirectFlash(w, r, "/settings", "error", "Could not change password.")
	}
}
