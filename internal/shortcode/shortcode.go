// Package shortcode expands quiz embed tags inside page content.
//
// Two tags are recognized: [yabby_quiz id="<quiz-id>"] resolves the quiz and
// renders either the live container or the closed fragment, and the legacy
// [quiz] tag always renders the closed fragment regardless of attributes.
package shortcode

import (
	"context"
	"regexp"
	"strings"

	"yabby-quiz-service/internal/app"
)

var (
	tagPattern  = regexp.MustCompile(`\[(yabby_quiz|quiz)\b([^\]]*)\]`)
	attrPattern = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)'|(\S+))`)
)

// FragmentRenderer turns a render decision into an HTML fragment.
type FragmentRenderer interface {
	Fragment(decision app.Decision) (string, error)
}

// Expander rewrites shortcode tags into HTML fragments and gathers the live
// widget payloads produced along the way.
type Expander struct {
	resolver *app.Resolver
	render   FragmentRenderer
}

func NewExpander(resolver *app.Resolver, render FragmentRenderer) *Expander {
	return &Expander{resolver: resolver, render: render}
}

// Result is one page's expansion: the rewritten HTML plus the payload list
// accumulated during the render. The list is built per call, handed to the
// page bootstrap exactly once, and then discarded; nothing is stored between
// renders.
type Result struct {
	HTML     string
	Payloads []app.Payload
}

// Expand replaces every quiz tag in content. A tag that fails to resolve
// (storage error) degrades to the closed fragment; errors never surface in
// the page.
func (e *Expander) Expand(ctx context.Context, content string) Result {
	var payloads []app.Payload

	html := tagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		m := tagPattern.FindStringSubmatch(tag)
		name, attrs := m[1], parseAttrs(m[2])

		decision := Decision(ctx, e.resolver, name, attrs)
		if decision.Kind == app.DecisionLive {
			payloads = append(payloads, decision.Payload)
		}
		fragment, err := e.render.Fragment(decision)
		if err != nil {
			return ""
		}
		return fragment
	})

	return Result{HTML: html, Payloads: payloads}
}

// Decision resolves a single tag. Exposed so the standalone embed endpoint
// and the expander share one code path.
func Decision(ctx context.Context, resolver *app.Resolver, name string, attrs map[string]string) app.Decision {
	if name == "quiz" {
		// Legacy tag: always the closed presentation.
		return app.Decision{Kind: app.DecisionClosed}
	}
	decision, err := resolver.Resolve(ctx, attrs["id"])
	if err != nil {
		return app.Decision{Kind: app.DecisionClosed}
	}
	return decision
}

func parseAttrs(raw string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		attrs[strings.ToLower(m[1])] = value
	}
	return attrs
}
