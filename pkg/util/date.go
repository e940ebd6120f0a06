package util

import (
	"fmt"
	"time"
)

// DayTagLayout is the node log day prefix: year, month, day without separators.
const DayTagLayout = "20060102"

// DayTag formats t's calendar day in t's own location.
func DayTag(t time.Time) string {
	return t.Format(DayTagLayout)
}

// ParseDayTag parses a YYYYMMDD tag as midnight in loc.
func ParseDayTag(tag string, loc *time.Location) (time.Time, error) {
	if len(tag) != len(DayTagLayout) {
		return time.Time{}, fmt.Errorf("want %d digits, got %d characters", len(DayTagLayout), len(tag))
	}
	for _, r := range tag {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("non-digit %q", r)
		}
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DayTagLayout, tag, loc)
}

// TrailingDayTags returns the tags of now's calendar day and the day before it.
func TrailingDayTags(now time.Time) (today, yesterday string) {
	return DayTag(now), DayTag(now.AddDate(0, 0, -1))
}
