package models

// ShowtimeFeed is the root of the upstream showtime document for one market.
type ShowtimeFeed struct {
	Market Market `json:"Market"`
}

// Market holds every scheduled day for the configured market.
type Market struct {
	Dates []DateEntry `json:"Dates"`
}

// DateEntry is one calendar day of showtimes across all cinemas.
// FormattedDate is derived during filtering and is not part of the feed.
type DateEntry struct {
	DateId        string        `json:"DateId"`
	FormattedDate string        `json:"FormattedDate,omitempty"`
	Cinemas       []CinemaEntry `json:"Cinemas"`
}

// CinemaEntry is one theater location within a day.
type CinemaEntry struct {
	CinemaName        string      `json:"CinemaName"`
	CinemaTimeZoneATE string      `json:"CinemaTimeZoneATE"`
	Films             []FilmEntry `json:"Films"`
}

// FilmEntry is one movie within a cinema. ShowTimes is derived during
// filtering; the feed itself nests sessions under Series and Formats.
type FilmEntry struct {
	FilmName  string         `json:"FilmName"`
	Series    []SeriesEntry  `json:"Series"`
	ShowTimes []ShowtimeSlot `json:"ShowTimes,omitempty"`
}

// SeriesEntry groups a film's formats.
type SeriesEntry struct {
	Formats []FormatEntry `json:"Formats"`
}

// FormatEntry groups a film's sessions for one presentation format.
type FormatEntry struct {
	Sessions []Session `json:"Sessions"`
}

// Session is one scheduled screening.
type Session struct {
	SessionId       string `json:"SessionId,omitempty"`
	SessionDateTime string `json:"SessionDateTime"`
	SeatsLeft       int    `json:"SeatsLeft"`
}

// ShowtimeSlot is one surviving screening after filtering, with the
// local start time already formatted for speech.
type ShowtimeSlot struct {
	Time  string `json:"time"`
	Seats int    `json:"seats"`
}

// FilterResult is the pruned result tree plus the total number of
// surviving showtime instances. ShowtimeCount is the single source of
// truth for no-results detection: it is zero if and only if Data is empty.
type FilterResult struct {
	Data          []DateEntry `json:"data"`
	ShowtimeCount int         `json:"showtimeCount"`
}
