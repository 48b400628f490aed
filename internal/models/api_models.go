package models

// QuerySlots carries the raw slot values extracted by the voice
// platform's intent router. All values are plain strings; an empty
// string means the slot was not filled.
type QuerySlots struct {
	MovieName      string `json:"movieName"`
	Date           string `json:"date"`
	Theater        string `json:"theater"`
	Showtime       string `json:"showtime"`
	SeatsAvailable string `json:"seatsAvailable"`
}

// QueryRequest is the body of an intent webhook call.
type QueryRequest struct {
	Slots QuerySlots `json:"slots"`
}

// QueryResponse is the finished spoken-language answer. The speech
// string terminates the request regardless of success or failure.
type QueryResponse struct {
	Speech string `json:"speech"`
}
