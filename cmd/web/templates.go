package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/myrjola/biosecure/internal/contexthelpers"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/models"
	"github.com/myrjola/biosecure/ui"
)

type navItem struct {
	Path   string
	Label  string
	Active bool
}

var navigation = []navItem{ //nolint:gochecknoglobals // static menu
	{Path: "/", Label: "Home", Active: false},
	{Path: "/assessment", Label: "Risk Assessment", Active: false},
	{Path: "/learning", Label: "Learning", Active: false},
	{Path: "/records", Label: "Records", Active: false},
	{Path: "/analytics", Label: "Analytics", Active: false},
	{Path: "/alerts", Label: "Alerts", Active: false},
	{Path: "/mira", Label: "Ask Mira", Active: false},
}

type BaseTemplateData struct {
	Nav []navItem
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	current := contexthelpers.CurrentPath(r.Context())
	nav := make([]navItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.Path == current
		nav[i] = item
	}
	return BaseTemplateData{Nav: nav}
}

// templateCache maps a page name, a directory in ui/templates/pages, to its parsed templates.
type templateCache map[string]*template.Template

func formatMetric(m models.Metric) string {
	value := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if m.Unit == "₹" {
		return m.Unit + value
	}
	return value + m.Unit
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		// nonce and csrf are replaced per request in render.
		"nonce":  func() template.HTMLAttr { return "" },
		"csrf":   func() template.HTML { return "" },
		"metric": formatMetric,
	}
}

func newTemplateCache() (templateCache, error) {
	pages, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages")
	}
	cache := make(templateCache, len(pages))
	for _, page := range pages {
		if !page.IsDir() {
			continue
		}
		name := page.Name()
		t, parseErr := template.New(name).Funcs(baseFuncs()).ParseFS(ui.Files,
			"templates/base.gohtml", path.Join("templates/pages", name, "*.gohtml"))
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "parse page", slog.String("page", name))
		}
		cache[name] = t
	}
	return cache, nil
}

// render writes the page wrapped in the base layout.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", data)
}

// renderTemplate executes a single named template of page, e.g. a fragment swapped in by htmx.
func (app *application) renderTemplate(
	w http.ResponseWriter, r *http.Request, status int, page string, name string, data any,
) {
	cached, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, errors.New("template does not exist", slog.String("page", page)))
		return
	}
	t, err := cached.Clone()
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "clone template", slog.String("page", page)))
		return
	}

	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf(`<input type="hidden" name="csrf_token" value=%q/>`, contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // generated by the server
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // generated by the server
		},
	})

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template",
			slog.String("page", page), slog.String("template", name)))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
