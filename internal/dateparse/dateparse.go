// Package dateparse parses natural-language date fragments into calendar dates.
package dateparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ParseError indicates the input matched none of the supported date formats.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unsupported date format: %q", e.Input)
}

var ordinalSuffixPattern = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// layouts is the fixed, ordered list of accepted formats. The first layout
// that parses the whole normalized input wins.
var layouts = []struct {
	layout  string
	hasYear bool
}{
	{"January 2 2006", true},
	{"January 2", false},
	{"Jan 2 2006", true},
	{"Jan 2", false},
	{"2006-01-02", true},
	{"1/2/2006", true},
	{"1-2-2006", true},
}

// Parse converts fragments like "December 25", "dec 25th 2025", or
// "2025-12-25" into a local calendar date. When the matched format carries no
// year, the current year is used. Out-of-range days fail rather than clamp.
func Parse(text string) (time.Time, error) {
	normalized := normalize(text)
	if normalized == "" {
		return time.Time{}, &ParseError{Input: text}
	}

	for _, candidate := range layouts {
		parsed, err := time.ParseInLocation(candidate.layout, normalized, time.Local)
		if err != nil {
			continue
		}

		year := parsed.Year()
		if !candidate.hasYear {
			year = time.Now().Year()
		}
		date := time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
		// Yearless layouts parse under year 0, which is a leap year. A day
		// valid there can overflow in the substituted year and time.Date
		// normalizes instead of failing, so reject any shifted result.
		if date.Month() != parsed.Month() || date.Day() != parsed.Day() {
			return time.Time{}, &ParseError{Input: text}
		}
		return date, nil
	}

	return time.Time{}, &ParseError{Input: text}
}

// normalize lowercases, strips ordinal suffixes, collapses whitespace, and
// re-capitalizes word tokens so Go layout month names match.
func normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	lowered = ordinalSuffixPattern.ReplaceAllString(lowered, "$1")

	fields := strings.Fields(lowered)
	for i, field := range fields {
		fields[i] = capitalizeToken(field)
	}
	return strings.Join(fields, " ")
}

func capitalizeToken(token string) string {
	runes := []rune(token)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return token
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
