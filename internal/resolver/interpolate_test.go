package resolver

import (
	"testing"
)

// interpTimes resolves a morning bucket and returns the fractional
// hours of its records.
func interpTimes(t *testing.T, text string, bucket Bucket) []float64 {
	t.Helper()
	var records []Record
	switch bucket {
	case BucketMorning:
		records = Resolve(testDate, text, "", "").Morning
	case BucketAfternoon:
		records = Resolve(testDate, "", text, "").Afternoon
	default:
		records = Resolve(testDate, "", "", text).Night
	}
	hours := make([]float64, len(records))
	for i, rec := range records {
		if rec.TimeStart == nil {
			t.Fatalf("record %d has no time after interpolation", i)
		}
		hours[i] = rec.TimeStart.FractionalHours()
	}
	return hours
}

func TestInterpolate_NoAnchorsEvenDistribution(t *testing.T) {
	hours := interpTimes(t, "- one\n- two\n- three", BucketMorning)
	want := []float64{7.5, 9.0, 10.5} // [6,12) split into 4 steps
	if len(hours) != len(want) {
		t.Fatalf("got %d records, want %d", len(hours), len(want))
	}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("record %d at %.2f, want %.2f", i, hours[i], want[i])
		}
	}
}

func TestInterpolate_NoAnchorsStrictlyInterior(t *testing.T) {
	for _, bucket := range []Bucket{BucketMorning, BucketAfternoon, BucketNight} {
		hours := interpTimes(t, "- a\n- b\n- c\n- d", bucket)
		r := bucketRanges[bucket]
		prev := r.start
		for i, h := range hours {
			if h <= r.start || h >= r.end {
				t.Errorf("%s record %d at %.2f, outside (%v,%v)", bucket, i, h, r.start, r.end)
			}
			if h <= prev {
				t.Errorf("%s record %d at %.2f, not strictly increasing", bucket, i, h)
			}
			prev = h
		}
	}
}

func TestInterpolate_BeforeFirstAnchor(t *testing.T) {
	hours := interpTimes(t, "- a\n- b\n9am - anchored", BucketMorning)
	// Gap from the range start (6) to the anchor (9), two records: step 1.
	want := []float64{7, 8, 9}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("record %d at %.2f, want %.2f", i, hours[i], want[i])
		}
	}
}

func TestInterpolate_BetweenAnchors(t *testing.T) {
	hours := interpTimes(t, "8am - start\n- gap one\n- gap two\n11am - end", BucketMorning)
	// Two records in the (8,11) gap: step 1.
	want := []float64{8, 9, 10, 11}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("record %d at %.2f, want %.2f", i, hours[i], want[i])
		}
	}
	for i := 1; i < len(hours); i++ {
		if hours[i] <= hours[i-1] {
			t.Errorf("records not monotonically increasing at %d", i)
		}
	}
}

func TestInterpolate_AfterLastAnchor(t *testing.T) {
	hours := interpTimes(t, "9am - anchored\n- after", BucketMorning)
	// Gap from the anchor (9) to the range end (12), one record: 10.5.
	want := []float64{9, 10.5}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("record %d at %.2f, want %.2f", i, hours[i], want[i])
		}
	}
}

func TestInterpolate_AnchorsUntouched(t *testing.T) {
	entry := Resolve(testDate, "8am - a\n- b\n10:30am - c", "", "")
	recs := entry.Morning
	if recs[0].TimeStart.FractionalHours() != 8 {
		t.Errorf("first anchor moved to %.2f", recs[0].TimeStart.FractionalHours())
	}
	if recs[2].TimeStart.FractionalHours() != 10.5 {
		t.Errorf("last anchor moved to %.2f", recs[2].TimeStart.FractionalHours())
	}
	mid := recs[1].TimeStart.FractionalHours()
	if mid <= 8 || mid >= 10.5 {
		t.Errorf("interpolated record at %.2f, want strictly between anchors", mid)
	}
}

func TestInterpolate_MinuteRounding(t *testing.T) {
	// Three records between 8:00 and 9:00: step 0.25h = 15min.
	hours := interpTimes(t, "8am - a\n- b\n- c\n- d\n9am - e", BucketMorning)
	want := []float64{8, 8.25, 8.5, 8.75, 9}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("record %d at %.4f, want %.4f", i, hours[i], want[i])
		}
	}
}
