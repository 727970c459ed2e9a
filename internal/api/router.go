package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/catalog"
	"github.com/erazemk/wardrobe/internal/outfit"
)

// DefaultMaxUploadBytes caps image uploads when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Options tunes the API router.
type Options struct {
	MaxUploadBytes int64
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, gw *auth.Gateway, planners *outfit.Registry, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	mux := http.NewServeMux()

	cat := &catalog.Catalog{DB: db}
	authHandler := &AuthHandler{Gateway: gw}
	itemsHandler := &ItemsHandler{Catalog: cat, MaxUploadBytes: opts.MaxUploadBytes}
	plannerHandler := &PlannerHandler{Catalog: cat, Planners: planners}

	authMW := AuthMiddleware(gw)

	// Public.
	mux.HandleFunc("POST /api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/zones", plannerHandler.Zones)

	// Session.
	mux.Handle("GET /api/auth/session", authMW(http.HandlerFunc(authHandler.Session)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Catalog.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Outfit planner.
	mux.Handle("POST /api/planners", authMW(http.HandlerFunc(plannerHandler.Open)))
	mux.Handle("GET /api/planners/{id}", authMW(http.HandlerFunc(plannerHandler.Get)))
	mux.Handle("DELETE /api/planners/{id}", authMW(http.HandlerFunc(plannerHandler.Close)))
	mux.Handle("POST /api/planners/{id}/reset", authMW(http.HandlerFunc(plannerHandler.Reset)))
	mux.Handle("PUT /api/planners/{id}/zones/{zone}", authMW(http.HandlerFunc(plannerHandler.Place)))
	mux.Handle("DELETE /api/planners/{id}/zones/{zone}", authMW(http.HandlerFunc(plannerHandler.Clear)))

	return mux
}
