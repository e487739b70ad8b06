package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/resolver"
	"github.com/daybook-app/daybook/internal/store"
)

// EntryStore is the persistence surface the API needs. *store.Store
// satisfies it; tests use an in-memory fake.
type EntryStore interface {
	UpsertEntry(ctx context.Context, e store.DayEntry) (uuid.UUID, error)
	GetEntry(ctx context.Context, date time.Time) (*store.DayEntry, error)
	CompletionFlags(ctx context.Context, from, to time.Time) (map[string]bool, error)
}

// EventPublisher emits resolved-entry events. May be nil when the
// service runs without NATS.
type EventPublisher interface {
	PublishEntryResolved(entry resolver.ParsedEntry, complete bool) error
}

type Server struct {
	router *chi.Mux
	port   int
	store  EntryStore
	events EventPublisher
}

func NewServer(port int, apiToken string, db EntryStore, events EventPublisher) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		store:  db,
		events: events,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/daybook/status", s.status)

	router.Route("/api/v1/entries", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Get("/incomplete", s.incompleteDays)
		r.Put("/{date}", s.putEntry)
		r.Get("/{date}", s.getEntry)
		r.Get("/{date}/at", s.getEntryAt)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"service": "daybook",
		"status":  "ok",
	})
}

// BearerAuthMiddleware rejects requests without the configured bearer
// token. An empty token disables auth entirely.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
