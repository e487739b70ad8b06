// Package resolver turns free-form bullet text from the three daily
// buckets into a normalized, time-ordered list of activity records.
//
// Resolution is a pure function: given the same three strings and a
// date it always returns the same result, and nothing is shared across
// calls. Unrecognized time syntax is never an error — a line without a
// detectable time simply falls through to interpolation.
package resolver

import (
	"time"

	"github.com/daybook-app/daybook/internal/clock"
)

// Resolve parses the three bucket texts for one calendar day and
// returns the resolved entry. Any bucket may be empty.
func Resolve(date time.Time, morning, afternoon, night string) ParsedEntry {
	entry := ParsedEntry{Date: date}
	entry.Morning = resolveBucket(date, morning, BucketMorning, 0)
	entry.Afternoon = resolveBucket(date, afternoon, BucketAfternoon, len(entry.Morning))
	entry.Night = resolveBucket(date, night, BucketNight, len(entry.Morning)+len(entry.Afternoon))

	entry.All = make([]Record, 0, len(entry.Morning)+len(entry.Afternoon)+len(entry.Night))
	entry.All = append(entry.All, entry.Morning...)
	entry.All = append(entry.All, entry.Afternoon...)
	entry.All = append(entry.All, entry.Night...)
	return entry
}

// resolveBucket assembles one bucket's records and interpolates times
// for the lines that carried none.
func resolveBucket(date time.Time, text string, bucket Bucket, startIndex int) []Record {
	lines := normalizeLines(text)
	if len(lines) == 0 {
		return nil
	}

	r := bucketRanges[bucket]
	midpoint := r.midpoint()

	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		rec := Record{
			Text:    line,
			RawText: line,
			Bucket:  bucket,
			Index:   startIndex + i,
		}

		if m, ok := matchPrefix(line); ok {
			start := m.start
			rec.TimeStart = &start
			rec.TimeEnd = m.end
			rec.Text = m.rest
			rec.Explicit = true
		} else if t, ok := embeddedTime(line, bucket); ok {
			// Embedded times resolve the record but are left in the
			// display text.
			rec.TimeStart = &t
			rec.Explicit = true
		}

		at := midpoint
		if rec.TimeStart != nil {
			at = *rec.TimeStart
		}
		rec.Window = windowAt(date, at)
		records = append(records, rec)
	}

	interpolateBucket(records, r, date)
	return records
}

// windowAt builds the one-hour window starting at t on the given date.
func windowAt(date time.Time, t clock.TimeOfDay) Window {
	start := t.At(date)
	return Window{Start: start, End: start.Add(time.Hour)}
}
