package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"ms-showtimes/internal/analytics"
	"ms-showtimes/internal/config"
	"ms-showtimes/internal/feed"
	"ms-showtimes/internal/models"
	"ms-showtimes/internal/showtimes"
)

// ShowtimeService runs the query pipeline: fetch the feed, filter it,
// render the spoken answer, then record the query for analytics.
// History and analytics are optional collaborators; either may be nil
// when not configured.
type ShowtimeService struct {
	FeedClient *feed.Client
	Filter     *showtimes.Filter
	History    *QueryHistoryService
	Analytics  *analytics.Producer
	cfg        config.Config
}

func NewShowtimeService(feedClient *feed.Client, filter *showtimes.Filter, history *QueryHistoryService, producer *analytics.Producer, cfg config.Config) *ShowtimeService {
	return &ShowtimeService{
		FeedClient: feedClient,
		Filter:     filter,
		History:    history,
		Analytics:  producer,
		cfg:        cfg,
	}
}

// FindSeats answers the "find seats" intent: seat availability for the
// given criteria, rendered as the availability-oriented summary.
func (s *ShowtimeService) FindSeats(criteria showtimes.Criteria) (string, error) {
	result, err := s.filterFeed(criteria)
	if err != nil {
		return "", err
	}

	s.recordQuery(models.IntentFindSeats, criteria, result.ShowtimeCount)
	return showtimes.RenderAvailability(result), nil
}

// QuerySeats answers the "query seats" intent: remaining seat counts
// per showtime, rendered as the seat-count-oriented summary.
func (s *ShowtimeService) QuerySeats(criteria showtimes.Criteria) (string, error) {
	result, err := s.filterFeed(criteria)
	if err != nil {
		return "", err
	}

	s.recordQuery(models.IntentQuerySeats, criteria, result.ShowtimeCount)
	return showtimes.RenderSeatCounts(result), nil
}

func (s *ShowtimeService) filterFeed(criteria showtimes.Criteria) (models.FilterResult, error) {
	showtimeFeed, err := s.FeedClient.Fetch()
	if err != nil {
		return models.FilterResult{}, err
	}
	return s.Filter.Apply(showtimeFeed, criteria)
}

// recordQuery persists the query and publishes an analytics event.
// Both are best-effort: a failure is logged and never affects the
// spoken answer.
func (s *ShowtimeService) recordQuery(intent models.IntentType, criteria showtimes.Criteria, showtimeCount int) {
	queryID := uuid.NewString()
	now := time.Now()

	if s.History != nil {
		record := models.QueryRecord{
			QueryID:       queryID,
			Intent:        intent,
			MovieName:     criteria.MovieName,
			RawDate:       criteria.Date,
			Theater:       criteria.Theater,
			Showtime:      criteria.Showtime,
			MinSeats:      criteria.MinSeats,
			ShowtimeCount: showtimeCount,
			CreatedAt:     now,
		}
		if err := s.History.RecordQuery(record); err != nil {
			log.Printf("Error recording query %s: %v", queryID, err)
		}
	}

	if s.Analytics != nil {
		event := models.QueryEvent{
			QueryID:       queryID,
			Intent:        intent,
			MovieName:     criteria.MovieName,
			RawDate:       criteria.Date,
			Theater:       criteria.Theater,
			ShowtimeCount: showtimeCount,
			QueriedAt:     now,
		}
		if err := s.Analytics.PublishQueryEvent(event); err != nil {
			log.Printf("Error publishing query event %s: %v", queryID, err)
		}
	}
}
