package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"yabby-quiz-service/internal/app"
	"yabby-quiz-service/internal/metrics"
	"yabby-quiz-service/internal/shortcode"
	"yabby-quiz-service/web"
)

// Options configures the router surface.
type Options struct {
	// AdminUser/AdminPass enable basic auth on /admin when both are set.
	AdminUser string
	AdminPass string
	// CSRFKey enables CSRF protection on the admin forms when non-empty.
	CSRFKey []byte
	// CSRFSecure marks the CSRF cookie Secure; off for plain-HTTP dev.
	CSRFSecure bool
	// PagesDir overrides the embedded demo pages when set.
	PagesDir string
}

// NewRouter wires the full HTTP surface: admin CRUD, embed and page
// rendering, static assets, health and metrics.
func NewRouter(log *logrus.Entry, repo *app.Repository, validator *app.Validator, resolver *app.Resolver, m *metrics.Metrics, reg *prometheus.Registry, opts Options) (http.Handler, error) {
	views, err := NewViews()
	if err != nil {
		return nil, err
	}

	adminName := opts.AdminUser
	if adminName == "" {
		adminName = "admin"
	}

	expander := shortcode.NewExpander(resolver, views)
	adminH := NewAdminHandler(repo, validator, views, m, log, adminName)
	embedH := NewEmbedHandler(resolver, views, m, log)
	pageH := NewPageHandler(expander, views, opts.PagesDir, web.Pages(), log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(m.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(web.Static()))))

	r.Get("/embed", embedH.Serve)
	r.Get("/embed/{quizID}", embedH.Serve)
	r.Get("/p/{page}", pageH.Serve)

	r.Route("/admin", func(ar chi.Router) {
		if opts.AdminUser != "" && opts.AdminPass != "" {
			ar.Use(chimw.BasicAuth("yabby-quiz", map[string]string{opts.AdminUser: opts.AdminPass}))
		}
		if len(opts.CSRFKey) > 0 {
			ar.Use(csrf.Protect(opts.CSRFKey, csrf.Secure(opts.CSRFSecure), csrf.Path("/admin")))
		}
		ar.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/quizzes", http.StatusFound)
		})
		ar.Get("/quizzes", adminH.List)
		ar.Get("/quizzes/new", adminH.New)
		ar.Get("/quizzes/{quizID}/edit", adminH.Edit)
		ar.Post("/quizzes", adminH.Save)
		ar.Post("/quizzes/{quizID}/delete", adminH.Delete)
	})

	return r, nil
}
