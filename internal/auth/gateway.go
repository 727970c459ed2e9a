// Package auth implements email/password accounts and JWT-backed sessions.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/wardrobe/internal/model"
	"github.com/erazemk/wardrobe/internal/store"
	"github.com/erazemk/wardrobe/internal/validate"
)

// Errors returned by the gateway.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidInput       = errors.New("invalid input")
)

// Gateway signs users up and in, and resolves tokens into sessions.
type Gateway struct {
	DB     *sql.DB
	Secret string
}

// SignUp registers a new account.
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if err := validate.Email(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := model.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := store.CreateUser(ctx, g.DB, email, string(hash))
	if err != nil {
		return nil, err
	}

	slog.Info("user signed up", "email", user.Email)
	return user, nil
}

// SignIn checks credentials and opens a new session.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = model.NormalizeEmail(email)
	user, err := store.GetUserByEmail(ctx, g.DB, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("sign in failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, claims, err := GenerateToken(g.Secret, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	slog.Info("user signed in", "email", user.Email)
	return sessionFromClaims(claims, token), nil
}

// SignOut revokes the session's token.
func (g *Gateway) SignOut(ctx context.Context, s *Session) error {
	if s == nil || s.TokenID == "" {
		return nil
	}
	if err := store.RevokeToken(ctx, g.DB, s.TokenID, s.ExpiresAt); err != nil {
		return err
	}
	slog.Info("user signed out", "email", s.Email)
	return nil
}

// Resolve validates a token and returns its session, rejecting revoked tokens.
func (g *Gateway) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := ValidateToken(g.Secret, token)
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(ctx, g.DB, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrSessionRevoked
		}
	}

	return sessionFromClaims(claims, token), nil
}

// ChangePassword replaces the user's password after checking the current one.
func (g *Gateway) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := store.GetUser(ctx, g.DB, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return store.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if err := model.ValidatePassword(next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return store.UpdateUserPassword(ctx, g.DB, userID, string(hash))
}
