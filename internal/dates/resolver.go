package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrDateOutOfRange is returned when a date slot matches none of the
// supported shapes: a full date, an ISO week ("2017-W20") or an ISO
// weekend ("2017-W20-WE").
var ErrDateOutOfRange = errors.New("date expression out of range")

// DateRange is an inclusive calendar range. Start is floored to
// 00:00:00 and End is set to 23:59:59, both in the target time zone.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Layouts a voice platform may deliver for a fully specified date slot.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Resolver turns raw date slot strings into concrete date ranges.
// Now is overridable so tests can pin the current date.
type Resolver struct {
	Now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve parses a raw date slot into an inclusive date range in loc.
// An empty slot means today. A parseable date yields a single-day
// range. "YYYY-Www" yields Monday through Sunday of that ISO week and
// "YYYY-Www-WE" yields just its Saturday and Sunday. Anything else is
// ErrDateOutOfRange.
func (r *Resolver) Resolve(rawDate string, loc *time.Location) (DateRange, error) {
	if rawDate == "" {
		today := r.Now().In(loc)
		return newDateRange(today, today, loc), nil
	}

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, rawDate, loc)
		if err == nil {
			return newDateRange(parsed, parsed, loc), nil
		}
	}

	// Not a full date, so it must be a week or weekend designator.
	// Both forms carry the W marker in the middle segment; anything
	// else is unparseable rather than a mis-read weekend.
	parts := strings.Split(rawDate, "-")
	switch {
	case len(parts) == 2 && strings.HasPrefix(parts[1], "W"):
		year, week, err := parseYearWeek(parts[0], parts[1])
		if err != nil {
			return DateRange{}, err
		}
		return newDateRange(WeekToDate(year, week, MondayIndex), WeekToDate(year, week, SundayIndex), loc), nil

	case len(parts) == 3 && strings.HasPrefix(parts[1], "W"):
		year, week, err := parseYearWeek(parts[0], parts[1])
		if err != nil {
			return DateRange{}, err
		}
		return newDateRange(WeekToDate(year, week, SaturdayIndex), WeekToDate(year, week, SundayIndex), loc), nil

	default:
		return DateRange{}, ErrDateOutOfRange
	}
}

func parseYearWeek(yearPart, weekPart string) (int, int, error) {
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, ErrDateOutOfRange
	}
	week, err := strconv.Atoi(strings.TrimPrefix(weekPart, "W"))
	if err != nil {
		return 0, 0, ErrDateOutOfRange
	}
	return year, week, nil
}

// newDateRange re-anchors the endpoints in loc, flooring the start to
// midnight and pushing the end to the last second of its day.
func newDateRange(start, end time.Time, loc *time.Location) DateRange {
	return DateRange{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc),
	}
}
