package api

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"

	"invoicely/m/internal/logger"
	"invoicely/m/internal/repo"
	"invoicely/m/web"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	users    *repo.Users
	invoices *repo.Invoices
	secret   string
	validate *validator.Validate
	log      zerolog.Logger
	origins  []string
}

// New constructs a Handler.
func New(db *sqlx.DB, secret, allowedOrigins string) *Handler {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return &Handler{
		users:    repo.NewUsers(db),
		invoices: repo.NewInvoices(db),
		secret:   secret,
		validate: validator.New(),
		log:      logger.WithComponent("api"),
		origins:  origins,
	}
}

// Router wires up the HTTP API and the embedded client.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/auth", func(r chi.Router) {
			r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Group(func(protected chi.Router) {
				protected.Use(h.authMiddleware)
				protected.Get("/verify", h.verify)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)
			pr.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.listInvoices)
				r.Post("/", h.createInvoice)
				r.Post("/pdf", h.exportPDF)
				r.Get("/{id}", h.getInvoice)
				r.Put("/{id}", h.updateInvoice)
				r.Delete("/{id}", h.deleteInvoice)
			})
		})
	})

	r.Handle("/*", h.client())

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "Server is running"})
}

// client serves the embedded single-page app: known files as-is,
// anything else falls back to the app shell.
func (h *Handler) client() http.Handler {
	assets := web.App()
	fileServer := http.FileServer(http.FS(assets))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if _, err := fs.Stat(assets, path); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
