package dates

import "time"

// Weekday indices used by the week math, 0 = Monday .. 6 = Sunday,
// matching the ISO-8601 convention.
const (
	MondayIndex   = 0
	SaturdayIndex = 5
	SundayIndex   = 6
)

// WeekToDate converts an ISO-8601 (year, week number, weekday index)
// triple to a calendar date at midnight UTC. Week 1 is the week
// containing January 4th; the weekday index runs 0 = Monday .. 6 = Sunday.
//
// Out-of-range week numbers are not validated and simply land outside
// the year.
func WeekToDate(year, weekNumber, weekdayIndex int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	// time.Weekday counts Sunday as 0; ISO weekdays count Monday as 1.
	isoWeekday := int(jan4.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}

	// Monday of the week containing January 4th is the start of week 1.
	monday := jan4.AddDate(0, 0, -(isoWeekday - 1))

	return monday.AddDate(0, 0, (weekNumber-1)*7+weekdayIndex)
}
