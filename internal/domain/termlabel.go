package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var termLabelPattern = regexp.MustCompile(`(?i)^\s*(summer|fall|winter|spring)\s*,?\s+year\s+(\d+)\s*$`)

// TermLabel returns the display label for a season and year, e.g. "Fall Year 1".
func TermLabel(season Season, year int) string {
	s := string(season)
	if s == "" {
		return fmt.Sprintf("Year %d", year)
	}
	return fmt.Sprintf("%s%s Year %d", strings.ToUpper(s[:1]), s[1:], year)
}

// ParseTermLabel maps a pre-assigned label such as "Fall, Year 2" or
// "winter year 3" to its season and year. Unparsable labels return ok=false.
func ParseTermLabel(label string) (Season, int, bool) {
	m := termLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return "", 0, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || year <= 0 {
		return "", 0, false
	}
	return Season(strings.ToLower(m[1])), year, true
}

// TermIDFromLabel is ParseTermLabel followed by TermID.
func TermIDFromLabel(label string) (string, bool) {
	season, year, ok := ParseTermLabel(label)
	if !ok {
		return "", false
	}
	return TermID(season, year), true
}
