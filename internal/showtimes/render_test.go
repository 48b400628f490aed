package showtimes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ms-showtimes/internal/models"
)

func renderResult(entries []models.DateEntry) models.FilterResult {
	count := 0
	for _, day := range entries {
		for _, cinema := range day.Cinemas {
			for _, film := range cinema.Films {
				count += len(film.ShowTimes)
			}
		}
	}
	return models.FilterResult{Data: entries, ShowtimeCount: count}
}

func TestRenderAvailabilitySingleShowtime(t *testing.T) {
	result := renderResult([]models.DateEntry{
		{
			FormattedDate: "Sunday May 14th",
			Cinemas: []models.CinemaEntry{
				{
					CinemaName: "Lakeline",
					Films: []models.FilmEntry{
						{
							FilmName:  "Guardians of the Galaxy",
							ShowTimes: []models.ShowtimeSlot{{Time: "4:10 PM", Seats: 12}},
						},
					},
				},
			},
		},
	})

	speech := RenderAvailability(result)
	assert.Equal(t, "For Sunday May 14th, the Lakeline cinema showing of Guardians of the Galaxy has seats available for the 4:10 PM showtime", speech)
}

func TestRenderAvailabilityMultipleShowtimes(t *testing.T) {
	result := renderResult([]models.DateEntry{
		{
			FormattedDate: "Sunday May 14th",
			Cinemas: []models.CinemaEntry{
				{
					CinemaName: "Lakeline",
					Films: []models.FilmEntry{
						{
							FilmName: "Guardians of the Galaxy",
							ShowTimes: []models.ShowtimeSlot{
								{Time: "1:00 PM", Seats: 20},
								{Time: "4:10 PM", Seats: 12},
								{Time: "7:30 PM", Seats: 3},
							},
						},
					},
				},
			},
		},
	})

	speech := RenderAvailability(result)
	assert.Equal(t, "For Sunday May 14th, the Lakeline cinema showing of Guardians of the Galaxy has seats available for the 1:00 PM, 4:10 PM, and 7:30 PM showtimes", speech)
}

func TestRenderAvailabilityJoinsNestingLevels(t *testing.T) {
	result := renderResult([]models.DateEntry{
		{
			FormattedDate: "Saturday May 13th",
			Cinemas: []models.CinemaEntry{
				{
					CinemaName: "Lakeline",
					Films: []models.FilmEntry{
						{FilmName: "Alien", ShowTimes: []models.ShowtimeSlot{{Time: "9:00 PM", Seats: 5}}},
					},
				},
				{
					CinemaName: "South Lamar",
					Films: []models.FilmEntry{
						{FilmName: "Alien", ShowTimes: []models.ShowtimeSlot{{Time: "10:00 PM", Seats: 8}}},
					},
				},
			},
		},
		{
			FormattedDate: "Sunday May 14th",
			Cinemas: []models.CinemaEntry{
				{
					CinemaName: "Lakeline",
					Films: []models.FilmEntry{
						{FilmName: "Alien", ShowTimes: []models.ShowtimeSlot{{Time: "6:00 PM", Seats: 2}}},
					},
				},
			},
		},
	})

	speech := RenderAvailability(result)
	assert.Equal(t, "For Saturday May 13th, the Lakeline cinema showing of Alien has seats available for the 9:00 PM showtime. "+
		"the South Lamar cinema showing of Alien has seats available for the 10:00 PM showtime. "+
		"For Sunday May 14th, the Lakeline cinema showing of Alien has seats available for the 6:00 PM showtime", speech)
}

func TestRenderAvailabilityEmpty(t *testing.T) {
	assert.Equal(t, NoSeatsMessage, RenderAvailability(models.FilterResult{}))
}

func TestRenderSeatCounts(t *testing.T) {
	result := renderResult([]models.DateEntry{
		{
			FormattedDate: "Sunday May 14th",
			Cinemas: []models.CinemaEntry{
				{
					CinemaName: "Lakeline",
					Films: []models.FilmEntry{
						{
							FilmName: "Guardians of the Galaxy",
							ShowTimes: []models.ShowtimeSlot{
								{Time: "4:10 PM", Seats: 12},
								{Time: "7:30 PM", Seats: 1},
							},
						},
					},
				},
			},
		},
	})

	speech := RenderSeatCounts(result)
	assert.Equal(t, "For Sunday May 14th, the Lakeline cinema showing of Guardians of the Galaxy has 12 seats at 4:10 PM, 1 seat at 7:30 PM", speech)
}

func TestRenderSeatCountsEmpty(t *testing.T) {
	assert.Equal(t, NoShowtimesMessage, RenderSeatCounts(models.FilterResult{}))
}
