package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/metrics"
	"github.com/erazemk/wardrobe/internal/model"
	"github.com/erazemk/wardrobe/internal/outfit"
	"github.com/erazemk/wardrobe/internal/store"
)

// PlannerPage handles GET /planner. Every load opens a fresh planner view,
// so reloading the page starts from an empty outfit. The palette holds the
// whole catalog and is filtered in the browser.
func (s *Server) PlannerPage(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	items, err := s.Catalog.List(r.Context(), session.UserID, store.ItemFilter{})
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	view := s.Planners.Open(session.UserID)
	metrics.PlannersOpened.Inc()

	s.Templates.Render(w, "planner.html", &struct {
		PageData
		PlannerID  string
		Zones      []outfit.Zone
		Items      []model.ClothingItem
		Categories []string
	}{
		PageData:   pageData(r, "Outfit planner"),
		PlannerID:  view.ID,
		Zones:      outfit.Zones,
		Items:      items,
		Categories: model.Categories,
	})
}
