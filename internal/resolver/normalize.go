package resolver

import (
	"regexp"
	"strings"
)

var (
	reIndented    = regexp.MustCompile(`^[ \t]`)
	reBulletGlyph = regexp.MustCompile(`^[-•*]\s*`)
)

// normalizeLines splits bucket text into normalized bullet lines.
// Blank lines are dropped. Indented lines are sub-items and are dropped
// entirely before any bullet stripping: only lines starting at column
// zero are retained. Remaining lines have a leading bullet glyph and
// surrounding whitespace stripped.
func normalizeLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if reIndented.MatchString(line) {
			continue
		}
		line = reBulletGlyph.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
