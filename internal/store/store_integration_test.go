//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_UpsertAndGetEntry(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	date := time.Date(1999, 1, 2, 0, 0, 0, 0, time.UTC) // unlikely to collide with real data

	id, err := s.UpsertEntry(ctx, DayEntry{
		Date:      date,
		Morning:   "9am - integration coffee",
		Afternoon: "- errands",
		Night:     "- dinner at 7:30",
		Complete:  false,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetEntry(ctx, date)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found after upsert")
	}
	if got.ID != id {
		t.Errorf("id = %v, want %v", got.ID, id)
	}
	if got.Morning != "9am - integration coffee" {
		t.Errorf("morning = %q", got.Morning)
	}
	if got.Complete {
		t.Error("complete flag should be false")
	}

	// Upsert again for the same date: same row, updated buckets.
	id2, err := s.UpsertEntry(ctx, DayEntry{
		Date:     date,
		Morning:  "10am - updated",
		Complete: true,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id2 != id {
		t.Errorf("upsert created a new row: %v vs %v", id2, id)
	}

	got, err = s.GetEntry(ctx, date)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Morning != "10am - updated" {
		t.Errorf("morning after update = %q", got.Morning)
	}
	if !got.Complete {
		t.Error("complete flag should be true after update")
	}
}

func TestIntegration_GetEntry_Missing(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetEntry(context.Background(), time.Date(1998, 6, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestIntegration_CompletionFlags(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(1999, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.UpsertEntry(ctx, DayEntry{Date: base, Complete: true}); err != nil {
		t.Fatalf("upsert day 1: %v", err)
	}
	if _, err := s.UpsertEntry(ctx, DayEntry{Date: base.AddDate(0, 0, 1), Complete: false}); err != nil {
		t.Fatalf("upsert day 2: %v", err)
	}

	flags, err := s.CompletionFlags(ctx, base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("completion flags: %v", err)
	}
	if !flags["1999-03-01"] {
		t.Error("expected 1999-03-01 complete")
	}
	if done, ok := flags["1999-03-02"]; !ok || done {
		t.Errorf("expected 1999-03-02 present and incomplete, got ok=%v done=%v", ok, done)
	}
	if _, ok := flags["1999-03-03"]; ok {
		t.Error("expected 1999-03-03 absent")
	}
}
