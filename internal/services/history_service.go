package services

import (
	"database/sql"
	"fmt"
	"time"

	"ms-showtimes/internal/models"
)

// QueryHistoryService records answered voice queries for skill
// analytics. It is write-only on the request path; nothing in the
// query pipeline ever reads it back.
type QueryHistoryService struct {
	DB *sql.DB
}

func NewQueryHistoryService(db *sql.DB) *QueryHistoryService {
	return &QueryHistoryService{DB: db}
}

// RecordQuery inserts one query record.
func (s *QueryHistoryService) RecordQuery(record models.QueryRecord) error {
	query := `
        INSERT INTO query_history (query_id, intent, movie_name, raw_date, theater, showtime, min_seats, showtime_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err := s.DB.Exec(query,
		record.QueryID,
		record.Intent,
		record.MovieName,
		record.RawDate,
		record.Theater,
		record.Showtime,
		record.MinSeats,
		record.ShowtimeCount,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert query record: %w", err)
	}
	return nil
}

// CountQueriesSince returns how many queries were answered since the
// given time, for the admin stats endpoint.
func (s *QueryHistoryService) CountQueriesSince(since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM query_history WHERE created_at >= $1`

	var count int
	if err := s.DB.QueryRow(query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count query records: %w", err)
	}
	return count, nil
}

// RecentQueries returns the most recent query records, newest first.
func (s *QueryHistoryService) RecentQueries(limit int) ([]models.QueryRecord, error) {
	query := `
        SELECT query_id, intent, movie_name, raw_date, theater, showtime, min_seats, showtime_count, created_at
        FROM query_history
        ORDER BY created_at DESC
        LIMIT $1
    `

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	var records []models.QueryRecord
	for rows.Next() {
		var record models.QueryRecord
		err := rows.Scan(
			&record.QueryID,
			&record.Intent,
			&record.MovieName,
			&record.RawDate,
			&record.Theater,
			&record.Showtime,
			&record.MinSeats,
			&record.ShowtimeCount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
