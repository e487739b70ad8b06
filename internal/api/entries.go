package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybook-app/daybook/internal/clock"
	"github.com/daybook-app/daybook/internal/gaps"
	"github.com/daybook-app/daybook/internal/resolver"
	"github.com/daybook-app/daybook/internal/store"
)

const dateLayout = "2006-01-02"

// EntryRequest is the payload for PUT /api/v1/entries/{date}.
type EntryRequest struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Night     string `json:"night"`
	Complete  bool   `json:"complete"`
}

// EntryResponse pairs the stored entry with its resolved timeline.
type EntryResponse struct {
	Entry    store.DayEntry       `json:"entry"`
	Timeline resolver.ParsedEntry `json:"timeline"`
}

// LookupResponse is the payload for the at-time lookup.
type LookupResponse struct {
	Records []resolver.Record `json:"records"`
	Count   int               `json:"count"`
}

// IncompleteResponse lists days in a range with no completed entry.
type IncompleteResponse struct {
	Dates []string `json:"dates"`
	Count int      `json:"count"`
}

// putEntry handles PUT /api/v1/entries/{date}.
func (s *Server) putEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid JSON: %v"}`, err), http.StatusBadRequest)
		return
	}

	entry := store.DayEntry{
		Date:      date,
		Morning:   req.Morning,
		Afternoon: req.Afternoon,
		Night:     req.Night,
		Complete:  req.Complete,
	}
	id, err := s.store.UpsertEntry(r.Context(), entry)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"save failed: %v"}`, err), http.StatusInternalServerError)
		return
	}
	entry.ID = id

	timeline := resolver.Resolve(date, req.Morning, req.Afternoon, req.Night)

	if s.events != nil {
		if err := s.events.PublishEntryResolved(timeline, req.Complete); err != nil {
			slog.Warn("failed to publish entry resolved event", "date", date.Format(dateLayout), "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(EntryResponse{Entry: entry, Timeline: timeline})
}

// getEntry handles GET /api/v1/entries/{date}.
func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	entry, err := s.store.GetEntry(r.Context(), date)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"load failed: %v"}`, err), http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, `{"error":"no entry for date"}`, http.StatusNotFound)
		return
	}

	timeline := resolver.Resolve(date, entry.Morning, entry.Afternoon, entry.Night)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(EntryResponse{Entry: *entry, Timeline: timeline})
}

// getEntryAt handles GET /api/v1/entries/{date}/at?time=HH:MM.
// The time parameter accepts either clock form ("09:30" or "9:30am").
func (s *Server) getEntryAt(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	at, ok := clock.Parse(r.URL.Query().Get("time"))
	if !ok {
		http.Error(w, `{"error":"time must be HH:MM or H:MMam/pm"}`, http.StatusBadRequest)
		return
	}

	entry, err := s.store.GetEntry(r.Context(), date)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"load failed: %v"}`, err), http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, `{"error":"no entry for date"}`, http.StatusNotFound)
		return
	}

	timeline := resolver.Resolve(date, entry.Morning, entry.Afternoon, entry.Night)
	active := resolver.ActiveAt(timeline.All, at.At(date))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LookupResponse{Records: active, Count: len(active)})
}

// incompleteDays handles GET /api/v1/entries/incomplete?from=...&to=...
func (s *Server) incompleteDays(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, `{"error":"from must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, `{"error":"to must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, `{"error":"to must not be before from"}`, http.StatusBadRequest)
		return
	}

	dates, err := gaps.NewScanner(s.store).IncompleteDays(r.Context(), from, to)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"scan failed: %v"}`, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(IncompleteResponse{Dates: dates, Count: len(dates)})
}

// parseDateParam reads the {date} URL parameter, writing a 400 on
// malformed input.
func parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := chi.URLParam(r, "date")
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"invalid date %q, want YYYY-MM-DD"}`, raw), http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}
