package dataprocessing

import (
	"strconv"
	"strings"
	"time"
)

// numberReplacer strips the decorations found in currency-formatted exports:
// dollar signs, thousands separators and stray whitespace.
var numberReplacer = strings.NewReplacer("$", "", ",", "", " ", "", " ", "")

// ParseNumber converts a heterogeneous cell value to a float64, defaulting to
// zero on any failure. This is the single policy point for the
// permissive-parsing-over-failure trade-off: garbage input silently becomes
// zero so a partially dirty upload still produces a result.
func ParseNumber(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(numberReplacer.Replace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}

// dateLayouts lists the date formats accepted from uploads, most common
// first. Excel serials are not expected: excelize renders date cells using
// the workbook's display format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// ParseDate parses a date cell tolerantly. The second return value reports
// success; callers decide how an unparseable date degrades (skipped from the
// trend, folded into the Unknown cohort bucket).
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
