package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/wardrobe/internal/store"
)

// AssetsHandler serves uploaded item photos. Retrieval is public.
type AssetsHandler struct {
	DB *sql.DB
}

// ServeHTTP handles GET /assets/{name}. ?size=thumb selects the thumbnail.
func (h *AssetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	thumb := r.URL.Query().Get("size") == "thumb"

	data, mime, err := store.GetAsset(r.Context(), h.DB, r.PathValue("name"), thumb)
	if err != nil {
		slog.Error("failed to get asset", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
