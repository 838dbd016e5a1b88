package http

import (
	"html/template"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	"yabby-quiz-service/internal/app"
	"yabby-quiz-service/internal/metrics"
)

// AdminHandler serves the quiz management pages.
type AdminHandler struct {
	repo      *app.Repository
	validator *app.Validator
	views     *Views
	metrics   *metrics.Metrics
	log       *logrus.Entry
	adminName string
}

func NewAdminHandler(repo *app.Repository, validator *app.Validator, views *Views, m *metrics.Metrics, log *logrus.Entry, adminName string) *AdminHandler {
	return &AdminHandler{
		repo:      repo,
		validator: validator,
		views:     views,
		metrics:   m,
		log:       log,
		adminName: adminName,
	}
}

type listRow struct {
	ID              string
	QuestionPreview string
	Active          bool
	UpdatedAt       string

	updated time.Time
}

type listView struct {
	Flash     string
	Quizzes   []listRow
	CSRFField template.HTML
}

type optionField struct {
	N       int
	Index   int
	Value   string
	Checked bool
}

type editView struct {
	IsNew     bool
	QuizID    string
	Active    bool
	CTAURL    string
	Text      string
	Reward    string
	Options   []optionField
	Errors    []string
	CSRFField template.HTML
}

// List renders the quiz table, most recently updated first.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("load quizzes for list")
		http.Error(w, "failed to load quizzes", http.StatusInternalServerError)
		return
	}

	rows := make([]listRow, 0, len(all))
	for _, record := range all {
		rows = append(rows, listRow{
			ID:              record.ID,
			QuestionPreview: trimWords(record.Question.Text, 10),
			Active:          record.Active(),
			UpdatedAt:       formatUpdatedAt(record.Meta.UpdatedAt),
			updated:         record.Meta.UpdatedAt,
		})
	}
	// Newest first; rows that were never timestamped sort to the bottom.
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].updated.Equal(rows[j].updated) {
			return rows[i].updated.After(rows[j].updated)
		}
		return rows[i].ID < rows[j].ID
	})

	h.render(w, "admin_list.html", listView{
		Flash:     flashMessage(r),
		Quizzes:   rows,
		CSRFField: csrf.TemplateField(r),
	})
}

// New renders an empty quiz form.
func (h *AdminHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_edit.html", editView{
		IsNew:     true,
		Options:   optionFields([4]string{}, ""),
		CSRFField: csrf.TemplateField(r),
	})
}

// Edit renders the form pre-filled from an existing record, or the
// not-found page when the ID is unknown.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quizID")
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		h.render(w, "admin_notfound.html", nil)
		return
	}

	var opts [4]string
	copy(opts[:], record.Question.Options)
	h.render(w, "admin_edit.html", editView{
		QuizID:    record.ID,
		Active:    record.Active(),
		CTAURL:    record.CTAURL,
		Text:      record.Question.Text,
		Reward:    record.Question.Reward,
		Options:   optionFields(opts, record.Question.Correct),
		CSRFField: csrf.TemplateField(r),
	})
}

// Save validates a form submission. On errors the form is re-rendered with
// the submitted values preserved; on success the record is persisted and the
// browser is redirected back to the list.
func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sub := app.Submission{
		QuizID: r.PostFormValue("quiz_id"),
		Active: r.PostFormValue("status") != "",
		CTAURL: r.PostFormValue("cta"),
		Text:   r.PostFormValue("q_text"),
		Options: [4]string{
			r.PostFormValue("opt1"),
			r.PostFormValue("opt2"),
			r.PostFormValue("opt3"),
			r.PostFormValue("opt4"),
		},
		Correct:   r.PostFormValue("correct"),
		Reward:    r.PostFormValue("reward"),
		UpdatedBy: h.adminName,
	}

	record, errs := h.validator.Validate(sub)
	if len(errs) > 0 {
		var opts [4]string
		copy(opts[:], sub.Options[:])
		h.render(w, "admin_edit.html", editView{
			IsNew:     sub.QuizID == "",
			QuizID:    sub.QuizID,
			Active:    sub.Active,
			CTAURL:    sub.CTAURL,
			Text:      sub.Text,
			Reward:    sub.Reward,
			Options:   optionFields(opts, sub.Correct),
			Errors:    errs,
			CSRFField: csrf.TemplateField(r),
		})
		return
	}

	if err := h.repo.Save(r.Context(), record.ID, record); err != nil {
		h.log.WithError(err).WithField("quiz_id", record.ID).Error("save quiz")
		http.Error(w, "failed to save quiz", http.StatusInternalServerError)
		return
	}
	h.metrics.AdminSaves.Inc()

	flash := "updated"
	if sub.QuizID == "" {
		flash = "created"
	}
	http.Redirect(w, r, "/admin/quizzes?saved="+flash, http.StatusSeeOther)
}

// Delete removes a record and redirects to the list. Unknown IDs fall
// through to the same redirect; deletion is idempotent.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quizID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.WithError(err).WithField("quiz_id", id).Error("delete quiz")
		http.Error(w, "failed to delete quiz", http.StatusInternalServerError)
		return
	}
	h.metrics.AdminDeletes.Inc()
	http.Redirect(w, r, "/admin/quizzes?deleted=1", http.StatusSeeOther)
}

func (h *AdminHandler) render(w http.ResponseWriter, name string, data any) {
	if err := h.views.Render(w, name, data); err != nil {
		h.log.WithError(err).WithField("template", name).Error("render admin view")
	}
}

func optionFields(values [4]string, correct string) []optionField {
	fields := make([]optionField, 4)
	for i, value := range values {
		fields[i] = optionField{
			N:       i + 1,
			Index:   i,
			Value:   value,
			Checked: value != "" && value == correct,
		}
	}
	return fields
}

func flashMessage(r *http.Request) string {
	switch {
	case r.URL.Query().Get("saved") == "created":
		return "Quiz created successfully!"
	case r.URL.Query().Get("saved") != "":
		return "Quiz updated successfully!"
	case r.URL.Query().Get("deleted") != "":
		return "Quiz deleted successfully!"
	}
	return ""
}

func trimWords(text string, limit int) string {
	if strings.TrimSpace(text) == "" {
		return "N/A"
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:limit], " ") + "…"
}

func formatUpdatedAt(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04")
}
