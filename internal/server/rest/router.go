package rest

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/edora/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds everything the HTTP layer talks to.
type Deps struct {
	Logger         logging.Logger
	Subjects       SubjectStore
	Themes         ThemeStore
	Auth           Authenticator
	Info           InfoReader
	Tokens         TokenVerifier
	AllowedOrigins []string

	// Registry receives the request metrics and is served on /metrics.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry
}

func NewHandler(d Deps) *Handler {
	reg := d.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Handler{
		logger:   d.Logger.With("module", "rest"),
		subjects: d.Subjects,
		themes:   d.Themes,
		auth:     d.Auth,
		info:     d.Info,
		tokens:   d.Tokens,
		validate: v,
		metrics:  NewMetrics(reg),
		origins:  d.AllowedOrigins,
		registry: reg,
	}
}

// Router builds the chi router. CORS runs ahead of the auth gate so that
// preflight requests and rejected responses still carry CORS headers.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(h.requestID)
	r.Use(h.accessLog)
	r.Use(h.metrics.middleware)
	r.Use(h.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(bodySizeLimit)
	r.Use(h.authGate)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.handleRoot)
	r.Post("/login", h.handleLogin)
	r.Handle("/metrics", metricsHandler(h.registry))

	r.Get("/subjects", h.handleListSubjects)
	r.Post("/subject", h.handleCreateSubject)
	r.Put("/subject/{id}", h.handleUpdateSubject)
	r.Delete("/subject/{id}", h.handleDeleteSubject)

	r.Get("/themes", h.handleListThemes)
	r.Post("/theme", h.handleCreateTheme)
	r.Put("/theme/{id}", h.handleUpdateTheme)
	r.Delete("/theme/{id}", h.handleDeleteTheme)

	return r
}

func bodySizeLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}
