package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/erazemk/wardrobe/internal/auth"
)

const cookieName = "token"

// CookieAuthMiddleware resolves the session cookie through the gateway and
// adds the session to the context. Missing, invalid, or revoked sessions
// are sent to the login page.
func CookieAuthMiddleware(gw *auth.Gateway, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			session, err := gw.Resolve(r.Context(), cookie.Value)
			if err != nil {
				clearAuthCookie(w, secure)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), session)))
		})
	}
}

func setAuthCookie(w http.ResponseWriter, s *auth.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// redirectFlash redirects to path carrying a one-shot notification.
func redirectFlash(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	http.Redirect(w, r, path+"?"+url.Values{kind: {message}}.Encode(), http.StatusSeeOther)
}
