package resolver

import (
	"time"

	"github.com/daybook-app/daybook/internal/clock"
)

// Bucket identifies one of the three fixed daily segments.
type Bucket string

const (
	BucketMorning   Bucket = "morning"
	BucketAfternoon Bucket = "afternoon"
	BucketNight     Bucket = "night"
)

// bucketRange is a bucket's representative clock range in fractional
// hours, used for placeholder midpoints and interpolation bounds.
type bucketRange struct {
	start float64
	end   float64
}

var bucketRanges = map[Bucket]bucketRange{
	BucketMorning:   {start: 6, end: 12},
	BucketAfternoon: {start: 12, end: 18},
	BucketNight:     {start: 18, end: 23},
}

func (r bucketRange) midpoint() clock.TimeOfDay {
	return clock.FromFractional((r.start + r.end) / 2)
}

// Window is the one-hour interval assigned to a record, anchored to the
// entry's calendar date. Containment checks treat both ends as inclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the window covers the given instant.
func (w Window) Contains(at time.Time) bool {
	return !at.Before(w.Start) && !at.After(w.End)
}

// Record is one resolved bullet line.
type Record struct {
	// Text is the display text, with any recognized prefix time
	// expression stripped. Embedded times are left in place.
	Text string `json:"text"`
	// RawText is the normalized line before time stripping.
	RawText string `json:"raw_text"`
	// TimeStart is the explicit, embedded, or interpolated start time.
	TimeStart *clock.TimeOfDay `json:"time_start,omitempty"`
	// TimeEnd is only set when a time range was parsed.
	TimeEnd *clock.TimeOfDay `json:"time_end,omitempty"`
	// Explicit marks records whose time came from the text itself
	// (prefix or embedded) rather than from interpolation. Explicit
	// records are the anchors interpolation works between.
	Explicit bool `json:"explicit"`
	// Window is always populated, even when no time could be determined.
	Window Window `json:"window"`
	Bucket Bucket `json:"bucket"`
	// Index is globally unique across the entry, strictly increasing in
	// bucket order (morning, afternoon, night).
	Index int `json:"index"`
}

// ParsedEntry is the result of resolving one day's three buckets.
type ParsedEntry struct {
	Date      time.Time `json:"date"`
	Morning   []Record  `json:"morning"`
	Afternoon []Record  `json:"afternoon"`
	Night     []Record  `json:"night"`
	// All is the three bucket lists flattened in global index order.
	All []Record `json:"all"`
}
