package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/catalog"
	"github.com/erazemk/wardrobe/internal/outfit"
	webembed "github.com/erazemk/wardrobe/web"
)

// DefaultMaxUploadBytes caps photo uploads when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Options tunes the page router.
type Options struct {
	MaxUploadBytes int64
	SecureCookies  bool
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, gw *auth.Gateway, planners *outfit.Registry, opts Options) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		Catalog:        &catalog.Catalog{DB: db},
		Gateway:        gw,
		Planners:       planners,
		Templates:      templates,
		MaxUploadBytes: opts.MaxUploadBytes,
		SecureCookies:  opts.SecureCookies,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(gw, opts.SecureCookies)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.WardrobePage)))

	mux.Handle("POST /items", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /items/{id}", cookieAuth(http.HandlerFunc(s.ItemPage)))
	mux.Handle("POST /items/{id}", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))

	mux.Handle("GET /planner", cookieAuth(http.HandlerFunc(s.PlannerPage)))

	mux.Handle("GET /settings", cookieAuth(http.HandlerFunc(s.SettingsPage)))
	mux.Handle("POST /settings", cookieAuth(http.HandlerFunc(s.SettingsSubmit)))

	return mux, nil
}
