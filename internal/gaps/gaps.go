// Package gaps finds days in a range that were never marked complete.
// It is a flat scan over stored completion flags and does no text or
// time parsing.
package gaps

import (
	"context"
	"fmt"
	"time"
)

// FlagSource provides completion flags for stored entries, keyed by
// "2006-01-02". Days without an entry are absent from the map.
type FlagSource interface {
	CompletionFlags(ctx context.Context, from, to time.Time) (map[string]bool, error)
}

// Scanner reports incomplete days over a date range.
type Scanner struct {
	flags FlagSource
}

// NewScanner creates a new scanner instance.
func NewScanner(flags FlagSource) *Scanner {
	return &Scanner{flags: flags}
}

// IncompleteDays returns every date in [from, to], in order, that has
// no entry or an entry not marked complete. Dates are formatted as
// "2006-01-02"; from and to are truncated to day granularity.
func (s *Scanner) IncompleteDays(ctx context.Context, from, to time.Time) ([]string, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	flags, err := s.flags.CompletionFlags(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load completion flags: %w", err)
	}

	var incomplete []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if !flags[key] {
			incomplete = append(incomplete, key)
		}
	}
	return incomplete, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
