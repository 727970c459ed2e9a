package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/wardrobe/internal/auth"
	"github.com/erazemk/wardrobe/internal/catalog"
	"github.com/erazemk/wardrobe/internal/outfit"
	webembed "github.com/erazemk/wardrobe/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"label": func(s string) string {
			if s == "" {
				return "Any"
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"join": func(tags []string) string {
			return strings.Join(tags, ", ")
		},
		"thumb": func(url string) string {
			return url + "?size=thumb"
		},
		// zoneStyle is trusted: Geometry.CSS only formats integers and a
		// fixed anchor name.
		"zoneStyle": func(z outfit.Zone) template.CSS {
			return template.CSS(z.Geometry().CSS())
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"signup.html",
		"wardrobe.html",
		"item.html",
		"planner.html",
		"settings.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Session *auth.Session
	Token   string
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Catalog        *catalog.Catalog
	Gateway        *auth.Gateway
	Planners       *outfit.Registry
	Templates      *Templates
	MaxUploadBytes int64
	SecureCookies  bool
}

// pageData fills the base page data from the request's session and flash
// query parameters.
func pageData(r *http.Request, title string) PageData {
	s := auth.SessionFromContext(r.Context())
	pd := PageData{
		Title:   title,
		Session: s,
		Error:   r.URL.Query().Get("error"),
		Success: r.URL.Query().Get("success"),
	}
	if s != nil {
		pd.Token = s.Token
	}
	return pd
}
