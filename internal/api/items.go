package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/catalog"
	"github.com/erazemk/wardrobe/internal/model"
	"github.com/erazemk/wardrobe/internal/store"
	"github.com/erazemk/wardrobe/internal/validate"
)

// ItemsHandler handles catalog endpoints.
type ItemsHandler struct {
	Catalog        *catalog.Catalog
	MaxUploadBytes int64
}

type itemFields struct {
	Name     string   `json:"name" validate:"max=200"`
	Category string   `json:"category" validate:"omitempty,category"`
	Color    string   `json:"color" validate:"max=50"`
	Style    string   `json:"style" validate:"style"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=40"`
}

type updateItemRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,category"`
	Color    string   `json:"color" validate:"max=50"`
	Style    string   `json:"style" validate:"style"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=40"`
}

func validateStruct(s any) error {
	return validate.Struct(s)
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())
	q := r.URL.Query()

	items, err := h.Catalog.List(r.Context(), s.UserID, store.ItemFilter{
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Style:    q.Get("style"),
		Tag:      q.Get("tag"),
		Search:   q.Get("q"),
	})
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The body is a multipart form with the
// photo in "image" and optional metadata fields.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	fields := itemFields{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Color:    r.FormValue("color"),
		Style:    r.FormValue("style"),
		Tags:     catalog.ParseTags(r.FormValue("tags")),
	}
	if err := validateStruct(fields); err != nil {
		validationError(w, err)
		return
	}

	item, err := h.Catalog.Add(r.Context(), catalog.Upload{
		UserID:   s.UserID,
		Filename: header.Filename,
		Image:    file,
		Name:     fields.Name,
		Category: fields.Category,
		Color:    fields.Color,
		Style:    fields.Style,
		Tags:     fields.Tags,
	})
	if errors.Is(err, catalog.ErrInvalidImage) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to save item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	item, err := h.Catalog.Get(r.Context(), s.UserID, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Tags = model.NormalizeTags(req.Tags)
	if err := validateStruct(req); err != nil {
		validationError(w, err)
		return
	}

	item, err := h.Catalog.Update(r.Context(), s.UserID, r.PathValue("id"), store.ItemUpdate{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Style:    req.Style,
		Tags:     req.Tags,
	})
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	slog.Info("item updated", "user", s.Email, "item", item.ID)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := auth.SessionFromContext(r.Context())

	err := h.Catalog.Delete(r.Context(), s.UserID, r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
