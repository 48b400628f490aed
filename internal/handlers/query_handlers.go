package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"ms-showtimes/internal/auth"
	"ms-showtimes/internal/config"
	"ms-showtimes/internal/dates"
	"ms-showtimes/internal/models"
	"ms-showtimes/internal/services"
	"ms-showtimes/internal/showtimes"
)

// Spoken responses for the failure paths. The webhook always answers
// with speech; only a malformed request body is an HTTP-level error.
const (
	badDateSpeech = "Sorry, I didn't understand that date. You can ask about a specific day, a week, or a weekend."
)

type QueryHandler struct {
	showtimeService *services.ShowtimeService
	cfg             config.Config
}

func NewQueryHandler(showtimeService *services.ShowtimeService, cfg config.Config) *QueryHandler {
	return &QueryHandler{
		showtimeService: showtimeService,
		cfg:             cfg,
	}
}

// FindSeats handles POST /api/showtimes/v1/find-seats
func (h *QueryHandler) FindSeats(w http.ResponseWriter, r *http.Request) {
	slots, ok := h.decodeSlots(w, r)
	if !ok {
		return
	}

	criteria, err := h.criteriaFromSlots(slots)
	if err != nil {
		log.Printf("Error reading slots: %v", err)
		http.Error(w, "Invalid slot values", http.StatusBadRequest)
		return
	}

	// The find intent defaults the seat count when the slot is empty
	if slots.SeatsAvailable == "" {
		criteria.MinSeats = h.cfg.DefaultMinSeats
	}

	logIntent(r, "find-seats", slots)

	speech, err := h.showtimeService.FindSeats(criteria)
	if err != nil {
		speech = h.speechForError(err)
	}
	writeSpeech(w, speech)
}

// QuerySeats handles POST /api/showtimes/v1/query-seats
func (h *QueryHandler) QuerySeats(w http.ResponseWriter, r *http.Request) {
	slots, ok := h.decodeSlots(w, r)
	if !ok {
		return
	}

	// The query intent never reads the seat-count slot
	slots.SeatsAvailable = ""

	criteria, err := h.criteriaFromSlots(slots)
	if err != nil {
		log.Printf("Error reading slots: %v", err)
		http.Error(w, "Invalid slot values", http.StatusBadRequest)
		return
	}

	logIntent(r, "query-seats", slots)

	speech, err := h.showtimeService.QuerySeats(criteria)
	if err != nil {
		speech = h.speechForError(err)
	}
	writeSpeech(w, speech)
}

func (h *QueryHandler) decodeSlots(w http.ResponseWriter, r *http.Request) (models.QuerySlots, bool) {
	var request models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return models.QuerySlots{}, false
	}
	return request.Slots, true
}

// criteriaFromSlots maps raw slot strings onto filter criteria,
// applying the configured default theater.
func (h *QueryHandler) criteriaFromSlots(slots models.QuerySlots) (showtimes.Criteria, error) {
	criteria := showtimes.Criteria{
		MovieName: slots.MovieName,
		Date:      slots.Date,
		Theater:   slots.Theater,
		Showtime:  slots.Showtime,
	}

	if criteria.Theater == "" {
		criteria.Theater = h.cfg.DefaultTheater
	}

	if slots.SeatsAvailable != "" {
		minSeats, err := strconv.Atoi(slots.SeatsAvailable)
		if err != nil {
			return showtimes.Criteria{}, fmt.Errorf("seatsAvailable slot %q is not a number", slots.SeatsAvailable)
		}
		criteria.MinSeats = minSeats
	}

	return criteria, nil
}

// speechForError maps pipeline failures onto spoken responses. A date
// the resolver could not place gets its own message; everything else is
// the generic failure sentence.
func (h *QueryHandler) speechForError(err error) string {
	if errors.Is(err, dates.ErrDateOutOfRange) {
		log.Printf("Date slot out of range: %v", err)
		return badDateSpeech
	}
	log.Printf("Error answering query: %v", err)
	return fmt.Sprintf("Something went wrong: %v", err)
}

// logIntent records who asked what. The caller ID is only present when
// the auth middleware is active.
func logIntent(r *http.Request, intent string, slots models.QuerySlots) {
	if callerID, err := auth.GetCallerIDFromContext(r.Context()); err == nil {
		log.Printf("Caller %s sent %s intent (movie=%q date=%q theater=%q)",
			callerID, intent, slots.MovieName, slots.Date, slots.Theater)
		return
	}
	log.Printf("Received %s intent (movie=%q date=%q theater=%q)",
		intent, slots.MovieName, slots.Date, slots.Theater)
}

func writeSpeech(w http.ResponseWriter, speech string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.QueryResponse{Speech: speech}); err != nil {
		log.Printf("Error encoding speech response: %v", err)
	}
}

// StatsHandler serves the admin query-history endpoints. It is only
// routed when the query-history database is configured.
type StatsHandler struct {
	history *services.QueryHistoryService
}

func NewStatsHandler(history *services.QueryHistoryService) *StatsHandler {
	return &StatsHandler{history: history}
}

// GetQueryStats handles GET /api/showtimes/v1/admin/query-stats
func (h *StatsHandler) GetQueryStats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-24 * time.Hour)
	if sinceParam := r.URL.Query().Get("since"); sinceParam != "" {
		parsed, err := time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			http.Error(w, "since must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	count, err := h.history.CountQueriesSince(since)
	if err != nil {
		log.Printf("Error counting query records: %v", err)
		http.Error(w, "Failed to get query stats", http.StatusInternalServerError)
		return
	}

	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limitInt, err := strconv.Atoi(limitParam)
		if err == nil && limitInt > 0 && limitInt <= 100 {
			limit = limitInt
		}
	}

	recent, err := h.history.RecentQueries(limit)
	if err != nil {
		log.Printf("Error loading recent queries: %v", err)
		http.Error(w, "Failed to get query stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"since":  since.Format(time.RFC3339),
		"count":  count,
		"recent": recent,
	}); err != nil {
		log.Printf("Error encoding stats response: %v", err)
	}
}
