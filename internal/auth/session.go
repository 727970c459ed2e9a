package auth

import (
	"context"
	"time"
)

// Session is the signed-in user behind a request.
type Session struct {
	UserID    int64
	Email     string
	TokenID   string
	ExpiresAt time.Time
	Token     string
}

func sessionFromClaims(claims *Claims, token string) *Session {
	s := &Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
		Token:   token,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored in ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
