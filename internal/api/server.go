package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbracher/winescan/internal/config"
	"github.com/mbracher/winescan/internal/enrich"
	"github.com/mbracher/winescan/internal/menu"
	"github.com/mbracher/winescan/internal/ocr"
)

// Server is the HTTP API for the wine menu scanner.
type Server struct {
	router    chi.Router
	engine    ocr.Engine
	clusterer *menu.RowClusterer
	enricher  *enrich.Client
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(engine ocr.Engine, enricher *enrich.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		engine:    engine,
		clusterer: menu.NewRowClusterer(),
		enricher:  enricher,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/v1/analyze", s.handleAnalyze)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
