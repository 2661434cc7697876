package model

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRegex     = regexp.MustCompile(`[0-9]{4}`)
	bareYearRegex = regexp.MustCompile(`^[0-9]{4}$`)
)

// StartYear returns the first run of four digits found in a date range.
// "1898-1902" yields 1898, "ca. 1900" yields 1900; text without four
// consecutive digits yields false.
func StartYear(dateRange string) (int, bool) {
	m := yearRegex.FindString(dateRange)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// ExpandYear turns a bare year "YYYY" into the range "YYYY-(YYYY+1)".
// Any other input is returned trimmed but otherwise unchanged.
func ExpandYear(text string) string {
	text = strings.TrimSpace(text)
	if !bareYearRegex.MatchString(text) {
		return text
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return text
	}
	return strconv.Itoa(year) + "-" + strconv.Itoa(year+1)
}
