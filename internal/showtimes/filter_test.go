package showtimes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-showtimes/internal/dates"
	"ms-showtimes/internal/models"
)

// sampleFeed mirrors the upstream document shape: one Sunday at the
// Lakeline cinema showing Guardians of the Galaxy twice.
func sampleFeed() *models.ShowtimeFeed {
	return &models.ShowtimeFeed{
		Market: models.Market{
			Dates: []models.DateEntry{
				{
					DateId: "2017-05-14",
					Cinemas: []models.CinemaEntry{
						{
							CinemaName:        "Lakeline",
							CinemaTimeZoneATE: "America/Chicago",
							Films: []models.FilmEntry{
								{
									FilmName: "Guardians of the Galaxy",
									Series: []models.SeriesEntry{
										{
											Formats: []models.FormatEntry{
												{
													Sessions: []models.Session{
														{SessionDateTime: "2017-05-14T16:10:00", SeatsLeft: 12},
														{SessionDateTime: "2017-05-14T19:30:00", SeatsLeft: 3},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func newFilter(t *testing.T) *Filter {
	t.Helper()
	filter, err := New(dates.NewResolver(), "")
	require.NoError(t, err)
	return filter
}

func TestApplyMatchesAllCriteria(t *testing.T) {
	filter := newFilter(t)

	result, err := filter.Apply(sampleFeed(), Criteria{
		MovieName: "guardians of the galaxy",
		Date:      "2017-05-14",
		Theater:   "Lakeline",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.ShowtimeCount)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Sunday May 14th", result.Data[0].FormattedDate)

	film := result.Data[0].Cinemas[0].Films[0]
	require.Len(t, film.ShowTimes, 2)
	assert.Equal(t, models.ShowtimeSlot{Time: "4:10 PM", Seats: 12}, film.ShowTimes[0])
	assert.Equal(t, models.ShowtimeSlot{Time: "7:30 PM", Seats: 3}, film.ShowTimes[1])
}

func TestApplyMinSeatsFilter(t *testing.T) {
	filter := newFilter(t)

	result, err := filter.Apply(sampleFeed(), Criteria{
		MovieName: "guardians of the galaxy",
		Date:      "2017-05-14",
		Theater:   "Lakeline",
		MinSeats:  10,
	})
	require.NoError(t, err)

	// Only the 12-seat session survives
	assert.Equal(t, 1, result.ShowtimeCount)
	film := result.Data[0].Cinemas[0].Films[0]
	require.Len(t, film.ShowTimes, 1)
	assert.Equal(t, 12, film.ShowTimes[0].Seats)
}

func TestApplyExactShowtimeFilter(t *testing.T) {
	filter := newFilter(t)

	result, err := filter.Apply(sampleFeed(), Criteria{
		Date:     "2017-05-14",
		Showtime: "2017-05-14T19:30:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ShowtimeCount)
	assert.Equal(t, "7:30 PM", result.Data[0].Cinemas[0].Films[0].ShowTimes[0].Time)
}

func TestApplyNameMatchingIsFlexible(t *testing.T) {
	filter := newFilter(t)
	feed := sampleFeed()
	feed.Market.Dates[0].Cinemas[0].Films[0].FilmName = "Guardians  of the Galaxy"

	tests := []struct {
		name     string
		criteria Criteria
	}{
		{"theater with extra space", Criteria{Theater: "Lake line", Date: "2017-05-14"}},
		{"theater lowercase", Criteria{Theater: "lakeline", Date: "2017-05-14"}},
		{"movie against doubled internal space", Criteria{MovieName: "Guardians of the Galaxy", Date: "2017-05-14"}},
		{"movie lowercase", Criteria{MovieName: "guardians of the galaxy", Date: "2017-05-14"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := filter.Apply(feed, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, 2, result.ShowtimeCount)
		})
	}
}

func TestApplyAllTheatersDisablesTheaterFilter(t *testing.T) {
	filter := newFilter(t)
	feed := sampleFeed()
	feed.Market.Dates[0].Cinemas = append(feed.Market.Dates[0].Cinemas, models.CinemaEntry{
		CinemaName:        "South Lamar",
		CinemaTimeZoneATE: "America/Chicago",
		Films: []models.FilmEntry{
			{
				FilmName: "Alien",
				Series: []models.SeriesEntry{
					{
						Formats: []models.FormatEntry{
							{
								Sessions: []models.Session{
									{SessionDateTime: "2017-05-14T21:00:00", SeatsLeft: 40},
								},
							},
						},
					},
				},
			},
		},
	})

	result, err := filter.Apply(feed, Criteria{Theater: AllTheaters, Date: "2017-05-14"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.ShowtimeCount)
	require.Len(t, result.Data, 1)
	assert.Len(t, result.Data[0].Cinemas, 2)
}

func TestApplyPrunesEmptyContainers(t *testing.T) {
	filter := newFilter(t)

	result, err := filter.Apply(sampleFeed(), Criteria{
		MovieName: "some other movie",
		Date:      "2017-05-14",
	})
	require.NoError(t, err)

	// No partially-pruned containers are ever emitted
	assert.Equal(t, 0, result.ShowtimeCount)
	assert.Empty(t, result.Data)
}

func TestApplyDateOutsideRangeIsPruned(t *testing.T) {
	filter := newFilter(t)

	result, err := filter.Apply(sampleFeed(), Criteria{Date: "2017-05-15"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ShowtimeCount)
	assert.Empty(t, result.Data)
}

func TestApplyEmptyDateSlotMeansToday(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	resolver := dates.NewResolver()
	resolver.Now = func() time.Time {
		return time.Date(2017, time.May, 14, 9, 0, 0, 0, loc)
	}
	filter, err := New(resolver, "")
	require.NoError(t, err)

	feed := sampleFeed()
	feed.Market.Dates = append(feed.Market.Dates, models.DateEntry{
		DateId:  "2017-05-15",
		Cinemas: feed.Market.Dates[0].Cinemas,
	})

	result, err := filter.Apply(feed, Criteria{})
	require.NoError(t, err)

	// Only today's entry survives
	require.Len(t, result.Data, 1)
	assert.Equal(t, "2017-05-14", result.Data[0].DateId)
}

func TestApplyWeekRangeKeepsWholeWeek(t *testing.T) {
	filter := newFilter(t)
	feed := sampleFeed()
	feed.Market.Dates = append(feed.Market.Dates, models.DateEntry{
		DateId:  "2017-05-15",
		Cinemas: feed.Market.Dates[0].Cinemas,
	})

	// 2017-W19 runs May 8th through May 14th
	result, err := filter.Apply(feed, Criteria{Date: "2017-W19"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "2017-05-14", result.Data[0].DateId)

	// 2017-W20 starts on May 15th
	result, err = filter.Apply(feed, Criteria{Date: "2017-W20"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "2017-05-15", result.Data[0].DateId)
}

func TestApplyBadDateSlot(t *testing.T) {
	filter := newFilter(t)

	_, err := filter.Apply(sampleFeed(), Criteria{Date: "gibberish"})
	assert.ErrorIs(t, err, dates.ErrDateOutOfRange)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	filter := newFilter(t)
	feed := sampleFeed()

	_, err := filter.Apply(feed, Criteria{MinSeats: 10, Date: "2017-05-14"})
	require.NoError(t, err)

	// The fetched feed stays untouched; the result is a fresh tree
	original := feed.Market.Dates[0]
	assert.Empty(t, original.FormattedDate)
	assert.Nil(t, original.Cinemas[0].Films[0].ShowTimes)
	assert.Len(t, original.Cinemas[0].Films[0].Series[0].Formats[0].Sessions, 2)
}

func TestApplyIsIdempotent(t *testing.T) {
	filter := newFilter(t)
	criteria := Criteria{
		MovieName: "guardians",
		Date:      "2017-05-14",
		Theater:   "Lakeline",
		MinSeats:  3,
	}

	first, err := filter.Apply(sampleFeed(), criteria)
	require.NoError(t, err)

	refiltered := &models.ShowtimeFeed{Market: models.Market{Dates: first.Data}}
	second, err := filter.Apply(refiltered, criteria)
	require.NoError(t, err)

	assert.Equal(t, first.ShowtimeCount, second.ShowtimeCount)
	assert.Equal(t, first.Data, second.Data)
}

func TestApplyExplicitTimeZoneOverride(t *testing.T) {
	filter, err := New(dates.NewResolver(), "America/Chicago")
	require.NoError(t, err)

	result, err := filter.Apply(sampleFeed(), Criteria{Date: "2017-05-14"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ShowtimeCount)
}

func TestNewRejectsBadTimeZone(t *testing.T) {
	_, err := New(dates.NewResolver(), "Not/AZone")
	assert.Error(t, err)
}

func TestApplyMissingSessionDataFailsFast(t *testing.T) {
	filter := newFilter(t)
	feed := sampleFeed()
	feed.Market.Dates[0].Cinemas[0].Films[0].Series = nil

	_, err := filter.Apply(feed, Criteria{Date: "2017-05-14"})
	assert.Error(t, err)
}

func TestFormatSpokenDateOrdinals(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		day  int
		want string
	}{
		{1, "Monday May 1st"},
		{2, "Tuesday May 2nd"},
		{3, "Wednesday May 3rd"},
		{11, "Thursday May 11th"},
		{12, "Friday May 12th"},
		{13, "Saturday May 13th"},
		{21, "Sunday May 21st"},
		{22, "Monday May 22nd"},
		{30, "Tuesday May 30th"},
	}
	for _, tt := range tests {
		date := time.Date(2017, time.May, tt.day, 0, 0, 0, 0, loc)
		assert.Equal(t, tt.want, formatSpokenDate(date))
	}
}
