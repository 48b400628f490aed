package showtimes

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ms-showtimes/internal/dates"
	"ms-showtimes/internal/models"
)

// AllTheaters is the slot value the voice platform sends when the user
// asks about every location; it disables the theater filter.
const AllTheaters = "all theaters"

const (
	feedDateLayout    = "2006-01-02"
	sessionTimeLayout = "2006-01-02T15:04:05"
	spokenTimeLayout  = "3:04 PM"
)

// Criteria are the filter inputs for one voice query. Empty strings
// mean "no filter"; MinSeats zero means no seat-count filter.
type Criteria struct {
	MovieName string
	Date      string
	Theater   string
	Showtime  string
	MinSeats  int
}

// Filter prunes a showtime feed down to the entries matching a query.
// It never mutates the input feed; every filter pass builds a fresh
// result tree, so filtering is safely re-runnable.
type Filter struct {
	resolver *dates.Resolver
	override *time.Location
}

// New creates a Filter. timeZone may name an explicit IANA zone to use
// for all date math; when empty the zone is derived from the first
// cinema of the first date in each feed.
func New(resolver *dates.Resolver, timeZone string) (*Filter, error) {
	f := &Filter{resolver: resolver}
	if timeZone != "" {
		loc, err := time.LoadLocation(timeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid feed time zone %q: %v", timeZone, err)
		}
		f.override = loc
	}
	return f, nil
}

// Apply runs the cascading prune: date range, then theater, then movie,
// then per-session showtime and seat-count checks. A container entry
// survives only if it retains at least one child. The returned
// ShowtimeCount totals the surviving sessions and is zero if and only
// if Data is empty.
func (f *Filter) Apply(feed *models.ShowtimeFeed, criteria Criteria) (models.FilterResult, error) {
	loc, err := f.location(feed)
	if err != nil {
		return models.FilterResult{}, err
	}

	dateRange, err := f.resolver.Resolve(criteria.Date, loc)
	if err != nil {
		return models.FilterResult{}, err
	}

	theater := criteria.Theater
	if theater == AllTheaters {
		theater = ""
	}
	theaterPattern := namePattern(theater)
	moviePattern := namePattern(criteria.MovieName)

	result := models.FilterResult{}
	for _, day := range feed.Market.Dates {
		date, err := time.ParseInLocation(feedDateLayout, day.DateId, loc)
		if err != nil {
			return models.FilterResult{}, fmt.Errorf("feed date %q is not a valid date id: %v", day.DateId, err)
		}
		if date.Before(dateRange.Start) || date.After(dateRange.End) {
			continue
		}

		filteredDay := models.DateEntry{
			DateId:        day.DateId,
			FormattedDate: formatSpokenDate(date),
		}
		for _, cinema := range day.Cinemas {
			if theaterPattern != nil && !theaterPattern.MatchString(cinema.CinemaName) {
				continue
			}

			filteredCinema := models.CinemaEntry{
				CinemaName:        cinema.CinemaName,
				CinemaTimeZoneATE: cinema.CinemaTimeZoneATE,
			}
			for _, film := range cinema.Films {
				if moviePattern != nil && !moviePattern.MatchString(film.FilmName) {
					continue
				}

				filteredFilm, count, err := filterFilm(film, criteria, loc)
				if err != nil {
					return models.FilterResult{}, err
				}
				if count == 0 {
					continue
				}
				filteredCinema.Films = append(filteredCinema.Films, filteredFilm)
				result.ShowtimeCount += count
			}
			if len(filteredCinema.Films) > 0 {
				filteredDay.Cinemas = append(filteredDay.Cinemas, filteredCinema)
			}
		}
		if len(filteredDay.Cinemas) > 0 {
			result.Data = append(result.Data, filteredDay)
		}
	}

	return result, nil
}

// filterFilm applies the showtime and seat-count checks to a film's
// sessions and rebuilds the film with only the survivors.
func filterFilm(film models.FilmEntry, criteria Criteria, loc *time.Location) (models.FilmEntry, int, error) {
	if len(film.Series) == 0 || len(film.Series[0].Formats) == 0 {
		return models.FilmEntry{}, 0, fmt.Errorf("feed entry for film %q is missing session data", film.FilmName)
	}

	filtered := models.FilmEntry{FilmName: film.FilmName}
	var sessions []models.Session
	for _, session := range film.Series[0].Formats[0].Sessions {
		if criteria.Showtime != "" && criteria.Showtime != session.SessionDateTime {
			continue
		}
		if criteria.MinSeats > 0 && session.SeatsLeft < criteria.MinSeats {
			continue
		}

		spokenTime, err := formatSpokenTime(session.SessionDateTime, loc)
		if err != nil {
			return models.FilmEntry{}, 0, err
		}
		sessions = append(sessions, session)
		filtered.ShowTimes = append(filtered.ShowTimes, models.ShowtimeSlot{
			Time:  spokenTime,
			Seats: session.SeatsLeft,
		})
	}
	if len(sessions) == 0 {
		return models.FilmEntry{}, 0, nil
	}

	filtered.Series = []models.SeriesEntry{{Formats: []models.FormatEntry{{Sessions: sessions}}}}
	return filtered, len(sessions), nil
}

// location picks the reference time zone: the configured override, or
// the zone of the first cinema of the first date, assumed uniform
// across the whole feed.
func (f *Filter) location(feed *models.ShowtimeFeed) (*time.Location, error) {
	if f.override != nil {
		return f.override, nil
	}
	if len(feed.Market.Dates) == 0 || len(feed.Market.Dates[0].Cinemas) == 0 {
		return nil, fmt.Errorf("feed has no cinemas to read a time zone from")
	}
	tz := feed.Market.Dates[0].Cinemas[0].CinemaTimeZoneATE
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("feed time zone %q is not a valid location: %v", tz, err)
	}
	return loc, nil
}

// namePattern builds a case-insensitive matcher where whitespace in the
// filter term matches zero or more whitespace characters in the target,
// so "Lake line" and "Lakeline" both match "Lakeline". An empty term
// returns nil, meaning no filter.
func namePattern(term string) *regexp.Regexp {
	if term == "" {
		return nil
	}
	words := strings.Fields(term)
	for i := range words {
		words[i] = regexp.QuoteMeta(words[i])
	}
	return regexp.MustCompile(`(?i)` + strings.Join(words, `\s*`))
}

// formatSpokenDate renders a date as e.g. "Sunday May 14th".
func formatSpokenDate(date time.Time) string {
	return fmt.Sprintf("%s %s %d%s", date.Weekday(), date.Month(), date.Day(), ordinalSuffix(date.Day()))
}

// formatSpokenTime renders a session timestamp as a local clock time,
// e.g. "7:30 PM".
func formatSpokenTime(sessionDateTime string, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation(sessionTimeLayout, sessionDateTime, loc)
	if err != nil {
		return "", fmt.Errorf("feed session time %q is not a valid timestamp: %v", sessionDateTime, err)
	}
	return t.Format(spokenTimeLayout), nil
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
