package dataprocessing

import (
	"fmt"
	"time"
)

// WeekInfo identifies the ISO-8601 calendar week a date falls into, with a
// human-readable label spanning that week's Monday-Sunday range.
type WeekInfo struct {
	Week  int
	Label string
}

// unknownWeek is the synthetic bucket all unparseable dates collapse into.
var unknownWeek = WeekInfo{Week: 0, Label: "Unknown"}

// Key returns the map key used for cohort bucketing. Keys sort
// lexicographically in the cohort output.
func (w WeekInfo) Key() string {
	return fmt.Sprintf("week%d", w.Week)
}

// ResolveWeek maps a date cell to its ISO week. On any parse failure it
// returns week 0 with label "Unknown" rather than an error, so one bad date
// never fails the request.
func ResolveWeek(cell string) WeekInfo {
	t, ok := ParseDate(cell)
	if !ok {
		return unknownWeek
	}
	return resolveWeek(t)
}

func resolveWeek(t time.Time) WeekInfo {
	_, week := t.ISOWeek()

	// ISO weeks start on Monday; time.Weekday counts Sunday as 0.
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, 1-weekday)
	sunday := monday.AddDate(0, 0, 6)

	return WeekInfo{
		Week:  week,
		Label: fmt.Sprintf("Week %d (%s - %s)", week, monday.Format("Jan 02"), sunday.Format("Jan 02")),
	}
}
