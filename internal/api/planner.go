package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/catalog"
	"github.com/erazemk/wardrobe/internal/metrics"
	"github.com/erazemk/wardrobe/internal/outfit"
)

// PlannerHandler handles outfit planner endpoints.
type PlannerHandler struct {
	Catalog  *catalog.Catalog
	Planners *outfit.Registry
}

type placeRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
}

type plannerResponse struct {
	ID         string            `json:"id"`
	Assignment outfit.Assignment `json:"assignment"`
}

type zoneResponse struct {
	Zone     outfit.Zone     `json:"zone"`
	Geometry outfit.Geometry `json:"geometry"`
}

// Zones handles GET /api/zones.
func (h *PlannerHandler) Zones(w http.ResponseWriter, r *http.Request) {
	zones := make([]zoneResponse, 0, len(outfit.Zones))
	for _, z := range outfit.Zones {
		zones = append(zones, zoneResponse{Zone: z, Geometry: z.Geometry()})
	}
	jsonResponse(w, http.StatusOK, zones)
}

// Open handles POST /api/planners.
func (h *PlannerHandler) Open(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	v := h.Planners.Open(s.UserID)
	metrics.PlannersOpened.Inc()

	jsonResponse(w, http.StatusCreated, plannerResponse{ID: v.ID, Assignment: v.Snapshot()})
}

// Get handles GET /api/planners/{id}.
func (h *PlannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, plannerResponse{ID: v.ID, Assignment: v.Snapshot()})
}

// Close handles DELETE /api/planners/{id}.
func (h *PlannerHandler) Close(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	if err := h.Planners.Close(r.PathValue("id"), s.UserID); err != nil {
		jsonError(w, http.StatusNotFound, "planner not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "planner closed"})
}

// Reset handles POST /api/planners/{id}/reset.
func (h *PlannerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	var a outfit.Assignment
	v.Do(func(st *outfit.Store) error {
		a = st.Reset()
		return nil
	})
	metrics.PlannerResets.Inc()

	jsonResponse(w, http.StatusOK, plannerResponse{ID: v.ID, Assignment: a})
}

// Place handles PUT /api/planners/{id}/zones/{zone}. The item replaces
// whatever the zone held before.
func (h *PlannerHandler) Place(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	zone, ok := parseZone(w, r)
	if !ok {
		return
	}
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	var req placeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		validationError(w, err)
		return
	}

	item, err := h.Catalog.Get(r.Context(), s.UserID, req.ItemID)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var a outfit.Assignment
	err = v.Do(func(st *outfit.Store) error {
		var err error
		a, err = st.Place(zone, item)
		return err
	})
	if err != nil {
		slog.Error("failed to place item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to place item")
		return
	}
	metrics.ZonePlacements.WithLabelValues(string(zone)).Inc()

	slog.Info("item placed", "user", s.Email, "planner", v.ID, "zone", zone, "item", item.ID)
	jsonResponse(w, http.StatusOK, plannerResponse{ID: v.ID, Assignment: a})
}

// Clear handles DELETE /api/planners/{id}/zones/{zone}.
func (h *PlannerHandler) Clear(w http.ResponseWriter, r *http.Request) {
	zone, ok := parseZone(w, r)
	if !ok {
		return
	}
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	var a outfit.Assignment
	err := v.Do(func(st *outfit.Store) error {
		var err error
		a, err = st.Clear(zone)
		return err
	})
	if err != nil {
		slog.Error("failed to clear zone", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to clear zone")
		return
	}
	metrics.ZoneClears.WithLabelValues(string(zone)).Inc()

	slog.Info("zone cleared", "planner", v.ID, "zone", zone)
	jsonResponse(w, http.StatusOK, plannerResponse{ID: v.ID, Assignment: a})
}

// view looks up the caller's planner from the {id} path value and writes
// a 404 when it is unknown.
func (h *PlannerHandler) view(w http.ResponseWriter, r *http.Request) (*outfit.View, bool) {
	s := auth.SessionFromContext(r.Context())

	v, err := h.Planners.Lookup(r.PathValue("id"), s.UserID)
	if errors.Is(err, outfit.ErrViewNotFound) {
		jsonError(w, http.StatusNotFound, "planner not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to look up planner", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to look up planner")
		return nil, false
	}
	return v, true
}

func parseZone(w http.ResponseWriter, r *http.Request) (outfit.Zone, bool) {
	zone, err := outfit.ParseZone(r.PathValue("zone"))
	if err != nil {
		metrics.InvalidZoneRejections.Inc()
		jsonError(w, http.StatusBadRequest, "invalid zone")
		return "", false
	}
	return zone, true
}
