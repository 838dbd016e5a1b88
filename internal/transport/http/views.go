package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"yabby-quiz-service/internal/app"
	"yabby-quiz-service/web"
)

// Views wraps the embedded template set.
type Views struct {
	t *template.Template
}

func NewViews() (*Views, error) {
	t, err := template.ParseFS(web.Templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Views{t: t}, nil
}

func (v *Views) Render(w io.Writer, name string, data any) error {
	return v.t.ExecuteTemplate(w, name, data)
}

type closedCopy struct {
	Title    string
	Subtitle string
}

// Fragment renders the embed fragment for a resolver decision. NotFound and
// Closed produce byte-identical output so a visitor cannot tell a missing
// quiz from an ended one.
func (v *Views) Fragment(decision app.Decision) (string, error) {
	var buf bytes.Buffer
	var err error
	switch decision.Kind {
	case app.DecisionLive:
		err = v.t.ExecuteTemplate(&buf, "embed_live.html", decision.Payload)
	case app.DecisionNoID:
		err = v.t.ExecuteTemplate(&buf, "embed_closed.html", closedCopy{
			Title:    "No quiz available.",
			Subtitle: "Check back later for a new quiz!",
		})
	default:
		err = v.t.ExecuteTemplate(&buf, "embed_closed.html", closedCopy{
			Title:    "This quiz has ended.",
			Subtitle: "Check back next week for a new quiz!",
		})
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pageView feeds page.html: expanded content plus the widget payloads queued
// during this render, emitted once before quiz.js.
type pageView struct {
	Title    string
	Content  template.HTML
	Payloads []app.Payload
}
