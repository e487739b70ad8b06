package clock

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within a single calendar day.
// Hours is always 0-23 and Minutes 0-59; a TimeOfDay is never
// partially populated.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

var (
	re12Hour = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	re24Hour = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// Parse parses a standalone clock string in either 12-hour form
// ("9am", "2:45pm") or 24-hour form ("14:00"). It returns false for
// anything else; unrecognized input is not an error at this level.
func Parse(s string) (TimeOfDay, bool) {
	s = strings.TrimSpace(s)
	if m := re12Hour.FindStringSubmatch(s); m != nil {
		return From12Hour(atoi(m[1]), atoiDefault(m[2], 0), m[3])
	}
	if m := re24Hour.FindStringSubmatch(s); m != nil {
		return From24Hour(atoi(m[1]), atoi(m[2]))
	}
	return TimeOfDay{}, false
}

// From12Hour converts a 12-hour clock reading to a TimeOfDay.
// Hour must be 1-12; "12am" is midnight and "12pm" is noon.
func From12Hour(hour, minute int, meridiem string) (TimeOfDay, bool) {
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	switch strings.ToLower(meridiem) {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	default:
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hours: hour, Minutes: minute}, true
}

// From24Hour converts a 24-hour clock reading to a TimeOfDay.
func From24Hour(hour, minute int) (TimeOfDay, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hours: hour, Minutes: minute}, true
}

// FromFractional converts fractional hours (e.g. 9.5) to a TimeOfDay,
// rounding to the nearest minute. Rounding that lands on minute 60
// carries into the next hour.
func FromFractional(hours float64) TimeOfDay {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return TimeOfDay{Hours: h, Minutes: m}
}

// FractionalHours returns the time as fractional hours, e.g. 9:30 → 9.5.
func (t TimeOfDay) FractionalHours() float64 {
	return float64(t.Hours) + float64(t.Minutes)/60
}

// At anchors the time to the given calendar date, in that date's
// location. No timezone conversion is performed.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hours, t.Minutes, 0, 0, date.Location())
}

// Label formats the time as a 12-hour display label: "9 AM", "2:45 PM",
// "12 PM" for noon, "12 AM" for midnight. The minutes segment is
// omitted when zero and zero-padded otherwise.
func (t TimeOfDay) Label() string {
	meridiem := "AM"
	hour := t.Hours
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	if t.Minutes == 0 {
		return fmt.Sprintf("%d %s", hour, meridiem)
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minutes, meridiem)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	return atoi(s)
}
