package http

import (
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"yabby-quiz-service/internal/shortcode"
)

var pageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// PageHandler renders content pages, expanding quiz shortcode tags. Pages
// come from the configured directory when one is set, with the embedded demo
// pages as the fallback.
type PageHandler struct {
	expander *shortcode.Expander
	views    *Views
	pagesDir string
	builtin  fs.FS
	log      *logrus.Entry
}

func NewPageHandler(expander *shortcode.Expander, views *Views, pagesDir string, builtin fs.FS, log *logrus.Entry) *PageHandler {
	return &PageHandler{
		expander: expander,
		views:    views,
		pagesDir: pagesDir,
		builtin:  builtin,
		log:      log,
	}
}

func (h *PageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "page")
	if !pageNamePattern.MatchString(name) {
		http.NotFound(w, r)
		return
	}

	content, ok := h.loadPage(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	result := h.expander.Expand(r.Context(), content)
	if err := h.views.Render(w, "page.html", pageView{
		Title:    "Yabby Quiz",
		Content:  template.HTML(result.HTML),
		Payloads: result.Payloads,
	}); err != nil {
		h.log.WithError(err).WithField("page", name).Error("render page")
	}
}

func (h *PageHandler) loadPage(name string) (string, bool) {
	if h.pagesDir != "" {
		if raw, err := os.ReadFile(filepath.Join(h.pagesDir, name+".html")); err == nil {
			return string(raw), true
		}
	}
	if raw, err := fs.ReadFile(h.builtin, name+".html"); err == nil {
		return string(raw), true
	}
	return "", false
}
