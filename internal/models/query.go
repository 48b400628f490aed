package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// IntentType represents the supported voice intents
type IntentType string

const (
	IntentFindSeats  IntentType = "find_seats"
	IntentQuerySeats IntentType = "query_seats"
)

// Scan implements the sql.Scanner interface for IntentType
func (it *IntentType) Scan(value interface{}) error {
	if value == nil {
		*it = ""
		return nil
	}
	if str, ok := value.(string); ok {
		*it = IntentType(str)
		return nil
	}
	return fmt.Errorf("cannot scan %T into IntentType", value)
}

// Value implements the driver.Valuer interface for IntentType
func (it IntentType) Value() (driver.Value, error) {
	return string(it), nil
}

// QueryRecord is one answered voice query, persisted for skill analytics
type QueryRecord struct {
	QueryID       string     `json:"query_id" db:"query_id"`
	Intent        IntentType `json:"intent" db:"intent"`
	MovieName     string     `json:"movie_name" db:"movie_name"`
	RawDate       string     `json:"raw_date" db:"raw_date"`
	Theater       string     `json:"theater" db:"theater"`
	Showtime      string     `json:"showtime" db:"showtime"`
	MinSeats      int        `json:"min_seats" db:"min_seats"`
	ShowtimeCount int        `json:"showtime_count" db:"showtime_count"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// QueryEvent is the analytics event published to Kafka for each query
type QueryEvent struct {
	QueryID       string     `json:"queryId"`
	Intent        IntentType `json:"intent"`
	MovieName     string     `json:"movieName,omitempty"`
	RawDate       string     `json:"rawDate,omitempty"`
	Theater       string     `json:"theater,omitempty"`
	ShowtimeCount int        `json:"showtimeCount"`
	QueriedAt     time.Time  `json:"queriedAt"`
}
