package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Series is a single TMDB TV search match.
type Series struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteCount    int64   `json:"vote_count"`
}

// FirstAirYear returns the four-digit premiere year, or empty when unknown.
func (s Series) FirstAirYear() string {
	if len(s.FirstAirDate) >= 4 {
		return s.FirstAirDate[:4]
	}
	return ""
}

// searchResponse models the TMDB paginated TV search payload.
type searchResponse struct {
	Page         int      `json:"page"`
	Results      []Series `json:"results"`
	TotalResults int      `json:"total_results"`
}

// Season is one entry in a series' season list.
type Season struct {
	SeasonNumber int `json:"season_number"`
	EpisodeCount int `json:"episode_count"`
}

// seriesDetails carries the slice of the TV details payload we use.
type seriesDetails struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Seasons []Season `json:"seasons"`
}

// Episode is a single episode entry from a season payload.
type Episode struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date"`
}

// seasonDetails models the TMDB season payload, episodes included.
type seasonDetails struct {
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

// Searcher defines the catalog operations resolution depends on.
type Searcher interface {
	SearchSeries(ctx context.Context, query string) ([]Series, error)
	SeriesSeasons(ctx context.Context, seriesID int64) ([]Season, error)
	SeasonEpisodes(ctx context.Context, seriesID int64, seasonNumber int) ([]Episode, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchSeries searches TMDB TV for the supplied query. A catalog 404 is
// treated as zero results, not an error.
func (c *Client) SearchSeries(ctx context.Context, query string) ([]Series, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload searchResponse
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return payload.Results, nil
}

// SeriesSeasons fetches the season list for a series, dropping specials
// (season 0).
func (c *Client) SeriesSeasons(ctx context.Context, seriesID int64) ([]Season, error) {
	if seriesID <= 0 {
		return nil, errors.New("series id must be positive")
	}
	var payload seriesDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", seriesID), nil, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	seasons := make([]Season, 0, len(payload.Seasons))
	for _, season := range payload.Seasons {
		if season.SeasonNumber > 0 {
			seasons = append(seasons, season)
		}
	}
	return seasons, nil
}

// SeasonEpisodes fetches the episode list for one season of a series.
func (c *Client) SeasonEpisodes(ctx context.Context, seriesID int64, seasonNumber int) ([]Episode, error) {
	if seriesID <= 0 {
		return nil, errors.New("series id must be positive")
	}
	if seasonNumber <= 0 {
		return nil, errors.New("season number must be positive")
	}
	var payload seasonDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber), nil, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return payload.Episodes, nil
}

var errNotFound = errors.New("tmdb: not found")

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
