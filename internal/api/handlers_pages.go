// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

type indexPage struct {
	PageTitle string
	Titles    []string
}

type recommendationsPage struct {
	PageTitle       string
	Selected        []string
	Recommendations []string
	Error           string
}

// render executes into a buffer first so a template failure still yields a
// clean 500 instead of a truncated page.
func (p *pageRenderer) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// IndexPage renders the selection form.
func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		http.Error(w, "Recommendation state is not built", http.StatusServiceUnavailable)
		return
	}
	h.pages.render(w, r, http.StatusOK, "index.html", indexPage{
		PageTitle: "Movie Recommendations",
		Titles:    h.engine.Titles(),
	})
}

// RecommendPage renders recommendations for the submitted form.
func (h *Handler) RecommendPage(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		http.Error(w, "Recommendation state is not built", http.StatusServiceUnavailable)
		return
	}

	page := recommendationsPage{PageTitle: "Recommendations"}

	req, verr, err := parseRecommendRequest(w, r)
	switch {
	case errors.Is(err, errUnsupportedMediaType):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	case errors.Is(err, errBodyTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		page.Error = err.Error()
		h.pages.render(w, r, http.StatusBadRequest, "recommendations.html", page)
		return
	case verr != nil:
		page.Error = verr.Error()
		h.pages.render(w, r, http.StatusBadRequest, "recommendations.html", page)
		return
	}

	result := h.recommend(r, req.SelectedMovies)
	page.Selected = result.Selected
	page.Recommendations = result.Recommendations
	h.pages.render(w, r, http.StatusOK, "recommendations.html", page)
}
