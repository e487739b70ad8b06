package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DayEntry is one stored day: the three raw bucket texts plus the
// completion flag. Resolution into records happens on read; only the
// raw text is persisted.
type DayEntry struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Morning   string    `json:"morning"`
	Afternoon string    `json:"afternoon"`
	Night     string    `json:"night"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertEntry inserts or replaces the entry for the given date.
// Table: day_entries (id, entry_date unique, morning, afternoon, night,
// complete, created_at, updated_at).
func (s *Store) UpsertEntry(ctx context.Context, e DayEntry) (uuid.UUID, error) {
	id := uuid.New()
	err := s.pool.QueryRow(ctx, `
		INSERT INTO day_entries (id, entry_date, morning, afternoon, night, complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (entry_date) DO UPDATE SET
			morning    = EXCLUDED.morning,
			afternoon  = EXCLUDED.afternoon,
			night      = EXCLUDED.night,
			complete   = EXCLUDED.complete,
			updated_at = now()
		RETURNING id`,
		id, e.Date, e.Morning, e.Afternoon, e.Night, e.Complete,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert entry: %w", err)
	}
	return id, nil
}

// GetEntry fetches the entry for a date. A missing day is not an
// error: it returns (nil, nil).
func (s *Store) GetEntry(ctx context.Context, date time.Time) (*DayEntry, error) {
	var e DayEntry
	err := s.pool.QueryRow(ctx, `
		SELECT id, entry_date, morning, afternoon, night, complete, created_at, updated_at
		FROM day_entries
		WHERE entry_date = $1`,
		date,
	).Scan(&e.ID, &e.Date, &e.Morning, &e.Afternoon, &e.Night, &e.Complete, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

// CompletionFlags returns the completion flag for every stored entry in
// the inclusive date range, keyed by "2006-01-02". Dates with no entry
// are simply absent from the map.
func (s *Store) CompletionFlags(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT entry_date, complete
		FROM day_entries
		WHERE entry_date >= $1 AND entry_date <= $2`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query completion flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]bool)
	for rows.Next() {
		var date time.Time
		var complete bool
		if err := rows.Scan(&date, &complete); err != nil {
			return nil, fmt.Errorf("scan completion flag: %w", err)
		}
		flags[date.Format("2006-01-02")] = complete
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return flags, nil
}
