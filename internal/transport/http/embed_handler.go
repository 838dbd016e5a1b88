package http

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"yabby-quiz-service/internal/app"
	"yabby-quiz-service/internal/metrics"
)

// EmbedHandler serves a single quiz as a standalone page, the equivalent of
// a page containing one [yabby_quiz] tag.
type EmbedHandler struct {
	resolver *app.Resolver
	views    *Views
	metrics  *metrics.Metrics
	log      *logrus.Entry
}

func NewEmbedHandler(resolver *app.Resolver, views *Views, m *metrics.Metrics, log *logrus.Entry) *EmbedHandler {
	return &EmbedHandler{resolver: resolver, views: views, metrics: m, log: log}
}

// Serve resolves the quiz ID from the path (absent on /embed) and renders
// the matching presentation. Storage errors degrade to the closed fragment;
// the visitor never sees an error page, and closed output is identical for
// inactive and nonexistent IDs.
func (h *EmbedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	decision, err := h.resolver.Resolve(r.Context(), quizID)
	if err != nil {
		h.log.WithError(err).WithField("quiz_id", quizID).Error("resolve embed")
		decision = app.Decision{Kind: app.DecisionClosed}
	}
	h.metrics.EmbedRenders.WithLabelValues(decision.Kind.String()).Inc()

	fragment, err := h.views.Fragment(decision)
	if err != nil {
		h.log.WithError(err).Error("render embed fragment")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var payloads []app.Payload
	if decision.Kind == app.DecisionLive {
		payloads = []app.Payload{decision.Payload}
	}
	if err := h.views.Render(w, "page.html", pageView{
		Title:    "Yabby Quiz",
		Content:  template.HTML(fragment),
		Payloads: payloads,
	}); err != nil {
		h.log.WithError(err).Error("render embed page")
	}
}
