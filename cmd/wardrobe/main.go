package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/wardrobe/internal/api"
	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/config"
	"github.com/erazemk/wardrobe/internal/db"
	"github.com/erazemk/wardrobe/internal/metrics"
	"github.com/erazemk/wardrobe/internal/outfit"
	"github.com/erazemk/wardrobe/internal/store"
	"github.com/erazemk/wardrobe/internal/web"
)

const pruneInterval = time.Hour

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("wardrobe", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: wardrobe [flags]

Flags:
  -d, -db <path>          SQLite database path (env WARDROBE_DB, default: wardrobe.sqlite3)
  -a, -addr <host:port>   listen address (env WARDROBE_ADDR, default: :8080)
  -l, -log <path>         log file path (env WARDROBE_LOG, default: stdout/stderr only)
  -h, -help               show this help and exit

Other settings are read from the environment or a .env file:
  WARDROBE_PLANNER_TTL, WARDROBE_PLANNER_MAX_VIEWS,
  WARDROBE_MAX_UPLOAD_BYTES, WARDROBE_SECURE_COOKIES
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stdout, os.Stderr, cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// JWT secret is generated on first run and kept in the database.
	jwtSecret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}
	gw := &auth.Gateway{DB: database, Secret: jwtSecret}

	planners := outfit.NewRegistry(cfg.PlannerMax, cfg.PlannerTTL)
	if err := metrics.RegisterOpenPlanners(prometheus.DefaultRegisterer, planners.Len); err != nil {
		return fmt.Errorf("registering planner gauge: %w", err)
	}

	apiRouter := api.NewRouter(database, gw, planners, api.Options{MaxUploadBytes: cfg.MaxUploadBytes})
	webRouter, err := web.NewRouter(database, gw, planners, web.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		SecureCookies:  cfg.SecureCookies,
	})
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("GET /assets/{name}", &api.AssetsHandler{DB: database})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", healthz(database))
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(metrics.Middleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneRevokedTokens(ctx, database)

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}

// healthz reports whether the database is reachable.
func healthz(database *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	}
}

// pruneRevokedTokens periodically drops revocation entries for tokens that
// have expired anyway.
func pruneRevokedTokens(ctx context.Context, database *sql.DB) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.PruneRevokedTokens(ctx, database, now)
			if err != nil {
				slog.Error("failed to prune revoked tokens", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("pruned revoked tokens", "count", n)
			}
		}
	}
}
