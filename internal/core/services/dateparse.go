package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedDate is the result of a successful heuristic date parse.
type ParsedDate struct {
	// Year is the 4-digit year as a display string.
	Year string

	// Timestamp is the ordering instant, local time.
	Timestamp time.Time
}

// Year bounds accepted by the heuristic parser.
const (
	minHeuristicYear = 1900
	maxHeuristicYear = 2100
)

var (
	monthYearPattern = regexp.MustCompile(
		`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|` +
			`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+((19|20)\d{2})\b`)
	bareYearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,4})[-/](\d{1,2})[-/](\d{2,4})\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseDate extracts a year and ordering timestamp from arbitrary text.
// It tries, in order: a month-name + year phrase, a numeric date in
// MM/DD/YYYY, DD/MM/YYYY or YYYY-MM-DD form, then a bare 4-digit year.
// A year attached to a month or a full date is not "bare", so the more
// specific patterns run first and the first successful one wins.
// Returns nil when no pattern matches.
func ParseDate(text string) *ParsedDate {
	if d := parseMonthYear(text); d != nil {
		return d
	}
	if d := parseNumericDate(text); d != nil {
		return d
	}
	return parseBareYear(text)
}

// parseMonthYear matches phrases like "March 2021" or "Jan 1999".
func parseMonthYear(text string) *ParsedDate {
	m := monthYearPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	month, ok := monthsByName[strings.ToLower(m[1])]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	ts := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return &ParsedDate{Year: m[2], Timestamp: ts}
}

// parseNumericDate matches full dates like "01/15/2024" or "2024-01-15".
// MM/DD/YYYY is tried before DD/MM/YYYY, matching the original heuristic.
func parseNumericDate(text string) *ParsedDate {
	m := numericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	c, errC := strconv.Atoi(m[3])
	if errA != nil || errB != nil || errC != nil {
		return nil
	}

	var candidates [][3]int // year, month, day
	if len(m[1]) == 4 {
		candidates = [][3]int{{a, b, c}} // YYYY-MM-DD
	} else {
		candidates = [][3]int{
			{c, a, b}, // MM/DD/YYYY
			{c, b, a}, // DD/MM/YYYY
		}
	}

	for _, cand := range candidates {
		year, month, day := cand[0], cand[1], cand[2]
		if year < minHeuristicYear || year > maxHeuristicYear {
			continue
		}
		if !validCalendarDate(year, month, day) {
			continue
		}
		ts := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		return &ParsedDate{Year: strconv.Itoa(year), Timestamp: ts}
	}
	return nil
}

// parseBareYear matches a standalone 4-digit year in 1900-2099.
func parseBareYear(text string) *ParsedDate {
	m := bareYearPattern.FindString(text)
	if m == "" {
		return nil
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	ts := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return &ParsedDate{Year: m, Timestamp: ts}
}

// validCalendarDate reports whether the components form a real date.
// time.Date normalises overflow (e.g. month 13), so a round-trip check
// rejects anything that normalised.
func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return t.Year() == year && t.Month() == time.Month(month) && t.Day() == day
}
