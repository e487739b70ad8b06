package resolver

import (
	"time"

	"github.com/daybook-app/daybook/internal/clock"
)

// interpolateBucket fills times for records that resolved none, using
// records with explicit or embedded times as fixed anchors. Gaps are
// filled by piecewise-linear interpolation over fractional hours: with
// k records in a gap of width w, each lands at step w/(k+1) from its
// predecessor. A bucket with no anchors distributes its records evenly
// across the bucket range, strictly inside both boundaries.
//
// Anchor times and windows are never modified.
func interpolateBucket(records []Record, r bucketRange, date time.Time) {
	var anchors []int
	for i := range records {
		if records[i].Explicit {
			anchors = append(anchors, i)
		}
	}

	if len(anchors) == 0 {
		fillGap(records, 0, len(records), r.start, r.end, date)
		return
	}

	first := anchors[0]
	fillGap(records, 0, first, r.start, records[first].TimeStart.FractionalHours(), date)

	for i := 0; i < len(anchors)-1; i++ {
		lo, hi := anchors[i], anchors[i+1]
		fillGap(records, lo+1, hi,
			records[lo].TimeStart.FractionalHours(),
			records[hi].TimeStart.FractionalHours(),
			date)
	}

	last := anchors[len(anchors)-1]
	fillGap(records, last+1, len(records), records[last].TimeStart.FractionalHours(), r.end, date)
}

// fillGap assigns times to records[from:to], spacing them evenly over
// the open interval (startHours, endHours).
func fillGap(records []Record, from, to int, startHours, endHours float64, date time.Time) {
	count := to - from
	if count <= 0 {
		return
	}
	step := (endHours - startHours) / float64(count+1)
	for j := 0; j < count; j++ {
		t := clock.FromFractional(startHours + step*float64(j+1))
		records[from+j].TimeStart = &t
		records[from+j].Window = windowAt(date, t)
	}
}
