package web

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

type itemForm struct {
	Name     string   `form:"name" validate:"max=200"`
	Category string   `form:"category" validate:"omitempty,category"`
	Color    string   `form:"color" validate:"max=50"`
	Style    string   `form:"style" validate:"style"`
	Tags     []string `form:"tags" validate:"max=20,dive,max=40"`
}

func readItemForm(r *http.Request) itemForm {
	return itemForm{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Color:    r.FormValue("color"),
		Style:    r.FormValue("style"),
		Tags:     catalog.ParseTags(r.FormValue("tags")),
	}
}

// WardrobePage handles GET /. It lists the user's items with the filter
// form applied.
func (s *Server) WardrobePage(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	q := r.URL.Query()

	filter := store.ItemFilter{
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Style:    q.Get("style"),
		Tag:      q.Get("tag"),
		Search:   q.Get("q"),
	}
	items, err := s.Catalog.List(r.Context(), session.UserID, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "wardrobe.html", &struct {
		PageData
		Items      []model.ClothingItem
		Filter     store.ItemFilter
		Categories []string
		Styles     []string
	}{
		PageData:   pageData(r, "My wardrobe"),
		Items:      items,
		Filter:     filter,
		Categories: model.Categories,
		Styles:     model.Styles,
	})
}

// ItemCreateSubmit handles POST /items (photo upload).
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		redirectFlash(w, r, "/", "error", "The photo is too large.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		redirectFlash(w, r, "/", "error", "Choose a photo to upload.")
		return
	}
	defer file.Close()

	form := readItemForm(r)
	if err := validate.Struct(form); err != nil {
		redirectFlash(w, r, "/", "error", firstFieldError(err))
		return
	}

	item, err := s.Catalog.Add(r.Context(), catalog.Upload{
		UserID:   session.UserID,
		Filename: header.Filename,
		Image:    file,
		Name:     form.Name,
		Category: form.Category,
		Color:    form.Color,
		Style:    form.Style,
		Tags:     form.Tags,
	})
	if errors.Is(err, catalog.ErrInvalidImage) {
		redirectFlash(w, r, "/", "error", "The file is not a JPEG, PNG, or WebP image.")
		return
	}
	if err != nil {
		slog.Error("failed to save item", "error", err)
		redirectFlash(w, r, "/", "error", "Upload failed.")
		return
	}

	redirectFlash(w, r, "/", "success", item.Name+" added.")
}

// ItemPage handles GET /items/{id}.
func (s *Server) ItemPage(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	item, err := s.Catalog.Get(r.Context(), session.UserID, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item.html", &struct {
		PageData
		Item       *model.ClothingItem
		Categories []string
		Styles     []string
	}{
		PageData:   pageData(r, item.Name),
		Item:       item,
		Categories: model.Categories,
		Styles:     model.Styles,
	})
}

// ItemUpdateSubmit handles POST /items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	id := r.PathValue("id")
	path := "/items/" + id

	form := readItemForm(r)
	if form.Name == "" {
		redirectFlash(w, r, path, "error", "Name is required.")
		return
	}
	if form.Category == "" {
		form.Category = model.CategoryUncategorized
	}
	if err := validate.Struct(form); err != nil {
		redirectFlash(w, r, path, "error", firstFieldError(err))
		return
	}

	_, err := s.Catalog.Update(r.Context(), session.UserID, id, store.ItemUpdate{
		Name:     form.Name,
		Category: form.Category,
		Color:    form.Color,
		Style:    form.Style,
		Tags:     form.Tags,
	})
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to update item", "error", err)
		redirectFlash(w, r, path, "error", "Could not save changes.")
		return
	}

	slog.Info("item updated", "user", session.Email, "item", id)
	redirectFlash(w, r, path, "success", "Changes saved.")
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	err := s.Catalog.Delete(r.Context(), session.UserID, r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete item", "error", err)
		redirectFlash(w, r, "/", "error", "Could not delete item.")
		return
	}

	redirectFlash(w, r, "/", "success", "Item deleted.")
}

// firstFieldError returns one readable validation message.
func firstFieldError(err error) string {
	for field, msg := range validate.Fields(err) {
		return field + ": " + msg
	}
	return "Invalid input."
}
