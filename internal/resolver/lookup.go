package resolver

import "time"

// ActiveAt returns every record whose estimated window contains the
// given instant, inclusive on both ends. Overlapping windows all match;
// no record is dropped by tie-breaking. No match returns an empty
// result, never an error.
func ActiveAt(records []Record, at time.Time) []Record {
	var active []Record
	for _, rec := range records {
		if rec.Window.Contains(at) {
			active = append(active, rec)
		}
	}
	return active
}
