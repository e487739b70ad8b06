package resolver

import (
	"regexp"
	"strings"

	"github.com/daybook-app/daybook/internal/clock"
)

// prefixMatch is the tagged result of a prefix grammar rule.
type prefixMatch struct {
	start clock.TimeOfDay
	end   *clock.TimeOfDay
	rest  string
}

// prefixRule attempts to recognize a time expression at the start of a
// normalized line. The boolean reports whether the rule matched.
type prefixRule func(line string) (prefixMatch, bool)

// prefixRules is the ordered rule chain; the first match wins. Order is
// a contract: ranges before single times, 12-hour before 24-hour.
var prefixRules = []prefixRule{
	matchSharedMeridiemRange,
	matchFullRange,
	matchSingle12Hour,
	matchSingle24Hour,
}

// matchPrefix runs the rule chain over a normalized line.
func matchPrefix(line string) (prefixMatch, bool) {
	for _, rule := range prefixRules {
		if m, ok := rule(line); ok {
			return m, true
		}
	}
	return prefixMatch{}, false
}

// sep is the optional separator between a prefix time and the text:
// a dash, an en-dash, or a colon.
const sep = `(?:\s*[-–:]\s*|\s+|$)`

var (
	// "9-11am - Long meeting": both bounds share the trailing meridiem.
	reSharedRange = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*[-–]\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)` + sep + `(.*)$`)
	// "9am - 2pm - Work block": each bound carries its own meridiem.
	reFullRange = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*[-–]\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)` + sep + `(.*)$`)
	// "9am - Had coffee", "2:45pm: review"
	reSingle12 = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)` + sep + `(.*)$`)
	// "14:00 - standup"
	reSingle24 = regexp.MustCompile(`^(\d{1,2}):(\d{2})` + sep + `(.*)$`)
)

func matchSharedMeridiemRange(line string) (prefixMatch, bool) {
	m := reSharedRange.FindStringSubmatch(line)
	if m == nil {
		return prefixMatch{}, false
	}
	meridiem := m[5]
	start, ok := clock.From12Hour(atoi(m[1]), atoiDefault(m[2]), meridiem)
	if !ok {
		return prefixMatch{}, false
	}
	end, ok := clock.From12Hour(atoi(m[3]), atoiDefault(m[4]), meridiem)
	if !ok {
		return prefixMatch{}, false
	}
	return prefixMatch{start: start, end: &end, rest: strings.TrimSpace(m[6])}, true
}

func matchFullRange(line string) (prefixMatch, bool) {
	m := reFullRange.FindStringSubmatch(line)
	if m == nil {
		return prefixMatch{}, false
	}
	start, ok := clock.From12Hour(atoi(m[1]), atoiDefault(m[2]), m[3])
	if !ok {
		return prefixMatch{}, false
	}
	end, ok := clock.From12Hour(atoi(m[4]), atoiDefault(m[5]), m[6])
	if !ok {
		return prefixMatch{}, false
	}
	return prefixMatch{start: start, end: &end, rest: strings.TrimSpace(m[7])}, true
}

func matchSingle12Hour(line string) (prefixMatch, bool) {
	m := reSingle12.FindStringSubmatch(line)
	if m == nil {
		return prefixMatch{}, false
	}
	start, ok := clock.From12Hour(atoi(m[1]), atoiDefault(m[2]), m[3])
	if !ok {
		return prefixMatch{}, false
	}
	return prefixMatch{start: start, rest: strings.TrimSpace(m[4])}, true
}

func matchSingle24Hour(line string) (prefixMatch, bool) {
	m := reSingle24.FindStringSubmatch(line)
	if m == nil {
		return prefixMatch{}, false
	}
	start, ok := clock.From24Hour(atoi(m[1]), atoi(m[2]))
	if !ok {
		return prefixMatch{}, false
	}
	return prefixMatch{start: start, rest: strings.TrimSpace(m[3])}, true
}

var (
	reEmbedded12   = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	reEmbeddedBare = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\b`)
)

// embeddedTime searches a line that had no prefix match for a time
// expression anywhere in the text. An explicit meridiem token wins;
// otherwise a bare H[:MM] token is accepted with the meridiem inferred
// from the bucket (morning AM, afternoon and night PM). Tokens that are
// part of fraction-like text such as "4/10" are skipped. The matched
// token is never stripped from the display text.
func embeddedTime(line string, bucket Bucket) (clock.TimeOfDay, bool) {
	for _, m := range reEmbedded12.FindAllStringSubmatch(line, -1) {
		if t, ok := clock.From12Hour(atoi(m[1]), atoiDefault(m[2]), m[3]); ok {
			return t, true
		}
	}

	meridiem := "pm"
	if bucket == BucketMorning {
		meridiem = "am"
	}
	for _, idx := range reEmbeddedBare.FindAllStringSubmatchIndex(line, -1) {
		if fractionLike(line, idx[0], idx[1]) {
			continue
		}
		hour := atoi(line[idx[2]:idx[3]])
		minute := 0
		if idx[4] >= 0 {
			minute = atoi(line[idx[4]:idx[5]])
		}
		if t, ok := clock.From12Hour(hour, minute, meridiem); ok {
			return t, true
		}
	}
	return clock.TimeOfDay{}, false
}

// fractionLike reports whether the token at [start,end) is part of a
// rating or fraction expression like "4/10", on either side of the
// slash. Such tokens must never be read as times.
func fractionLike(line string, start, end int) bool {
	if end+1 < len(line) && line[end] == '/' && isDigit(line[end+1]) {
		return true
	}
	if start >= 2 && line[start-1] == '/' && isDigit(line[start-2]) {
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	return atoi(s)
}
