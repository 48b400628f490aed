package showtimes

import (
	"fmt"
	"strings"

	"ms-showtimes/internal/models"
)

// Fixed responses for queries with no surviving showtimes.
const (
	NoSeatsMessage     = "There are no seats available that meet that criteria."
	NoShowtimesMessage = "There are no available showtimes meeting that criteria."
)

// RenderAvailability produces the availability-oriented summary: one
// sentence per surviving date listing, per cinema and film, the times
// that still have seats. Multi-time lists get an "and" before the final
// item and a plural "showtimes" suffix.
func RenderAvailability(result models.FilterResult) string {
	if result.ShowtimeCount == 0 {
		return NoSeatsMessage
	}

	var dateParts []string
	for _, day := range result.Data {
		var cinemaParts []string
		for _, cinema := range day.Cinemas {
			var filmParts []string
			for _, film := range cinema.Films {
				times := make([]string, len(film.ShowTimes))
				for i, slot := range film.ShowTimes {
					if len(film.ShowTimes) > 1 && i == len(film.ShowTimes)-1 {
						times[i] = "and " + slot.Time
					} else {
						times[i] = slot.Time
					}
				}
				suffix := " showtime"
				if len(film.ShowTimes) > 1 {
					suffix = " showtimes"
				}
				filmParts = append(filmParts, fmt.Sprintf("showing of %s has seats available for the %s%s",
					film.FilmName, strings.Join(times, ", "), suffix))
			}
			cinemaParts = append(cinemaParts, fmt.Sprintf("the %s cinema %s", cinema.CinemaName, strings.Join(filmParts, ". ")))
		}
		dateParts = append(dateParts, fmt.Sprintf("For %s, %s", day.FormattedDate, strings.Join(cinemaParts, ". ")))
	}
	return strings.Join(dateParts, ". ")
}

// RenderSeatCounts produces the seat-count-oriented summary: the same
// nesting as RenderAvailability, but each film lists "<n> seat(s) at
// <time>" clauses joined by plain commas.
func RenderSeatCounts(result models.FilterResult) string {
	if result.ShowtimeCount == 0 {
		return NoShowtimesMessage
	}

	var dateParts []string
	for _, day := range result.Data {
		var cinemaParts []string
		for _, cinema := range day.Cinemas {
			var filmParts []string
			for _, film := range cinema.Films {
				counts := make([]string, len(film.ShowTimes))
				for i, slot := range film.ShowTimes {
					noun := "seats"
					if slot.Seats == 1 {
						noun = "seat"
					}
					counts[i] = fmt.Sprintf("%d %s at %s", slot.Seats, noun, slot.Time)
				}
				filmParts = append(filmParts, fmt.Sprintf("showing of %s has %s", film.FilmName, strings.Join(counts, ", ")))
			}
			cinemaParts = append(cinemaParts, fmt.Sprintf("the %s cinema %s", cinema.CinemaName, strings.Join(filmParts, ". ")))
		}
		dateParts = append(dateParts, fmt.Sprintf("For %s, %s", day.FormattedDate, strings.Join(cinemaParts, ". ")))
	}
	return strings.Join(dateParts, ". ")
}
