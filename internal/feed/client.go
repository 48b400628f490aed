package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ms-showtimes/internal/models"
)

// Client fetches the upstream showtime feed for one market. The feed is
// fetched fresh for every query and never cached.
type Client struct {
	BaseURL    string
	Market     string
	HTTPClient *http.Client
}

func NewClient(baseURL, market string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Market:     market,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves and decodes the full showtime document for the
// configured market. A network failure, a non-200 status, a decode
// failure or a document missing the expected nesting all surface as a
// single terminal error.
func (c *Client) Fetch() (*models.ShowtimeFeed, error) {
	url := fmt.Sprintf("%s/market/%s/", c.BaseURL, c.Market)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("showtime feed request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("showtime feed returned %d: %s", resp.StatusCode, string(body))
	}

	var feed models.ShowtimeFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode showtime feed: %v", err)
	}

	if err := Validate(&feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// CheckReachable probes the feed endpoint without reading the body,
// for readiness checks.
func (c *Client) CheckReachable() error {
	url := fmt.Sprintf("%s/market/%s/", c.BaseURL, c.Market)

	resp, err := c.HTTPClient.Head(url)
	if err != nil {
		return fmt.Errorf("showtime feed unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("showtime feed returned %d", resp.StatusCode)
	}
	return nil
}

// Validate rejects documents missing the expected
// Market→Dates→Cinemas→Films→Series→Formats→Sessions nesting, so a
// malformed feed fails fast instead of propagating empty values through
// the filter.
func Validate(feed *models.ShowtimeFeed) error {
	if len(feed.Market.Dates) == 0 {
		return fmt.Errorf("showtime feed has no dates")
	}
	for _, day := range feed.Market.Dates {
		if day.DateId == "" {
			return fmt.Errorf("showtime feed has a date entry without a DateId")
		}
		if len(day.Cinemas) == 0 {
			return fmt.Errorf("showtime feed date %s has no cinemas", day.DateId)
		}
		for _, cinema := range day.Cinemas {
			if cinema.CinemaTimeZoneATE == "" {
				return fmt.Errorf("showtime feed cinema %q has no time zone", cinema.CinemaName)
			}
			for _, film := range cinema.Films {
				if len(film.Series) == 0 || len(film.Series[0].Formats) == 0 {
					return fmt.Errorf("showtime feed film %q at %q has no session data", film.FilmName, cinema.CinemaName)
				}
			}
		}
	}
	return nil
}
