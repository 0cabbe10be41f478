package ingest

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

// JellyfinClient pulls played episodes from a Jellyfin server.
type JellyfinClient struct {
	baseURL    string
	apiKey     string
	userID     string
	httpClient *http.Client
}

// NewJellyfinClient creates a client for one server and user.
func NewJellyfinClient(baseURL, apiKey, userID string) (*JellyfinClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("jellyfin url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("jellyfin api key required")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("jellyfin user id required")
	}
	return &JellyfinClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userID:     userID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func (c *JellyfinClient) WithHTTPClient(client *http.Client) *JellyfinClient {
	if client != nil {
		c.httpClient = client
	}
	return c
}

type jellyfinItemsResponse struct {
	Items []jellyfinItem `json:"Items"`
}

type jellyfinItem struct {
	Name              string            `json:"Name"`
	SeriesName        string            `json:"SeriesName"`
	ParentIndexNumber int               `json:"ParentIndexNumber"`
	IndexNumber       int               `json:"IndexNumber"`
	UserData          *jellyfinUserData `json:"UserData"`
}

type jellyfinUserData struct {
	Played         bool   `json:"Played"`
	LastPlayedDate string `json:"LastPlayedDate"`
}

// PlayedEpisodes fetches every episode the user has marked played. Episodes
// without a last-played date are dated today; Jellyfin only tracks the flag
// for items played before its watch tracking was enabled.
func (c *JellyfinClient) PlayedEpisodes(ctx context.Context) ([]Item, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/Users/%s/Items", c.baseURL, url.PathEscape(c.userID)))
	if err != nil {
		return nil, fmt.Errorf("parse jellyfin url: %w", err)
	}
	params := url.Values{}
	params.Set("IncludeItemTypes", "Episode")
	params.Set("Filters", "IsPlayed")
	params.Set("Recursive", "true")
	params.Set("Fields", "SeriesName,ParentIndexNumber,IndexNumber")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query jellyfin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jellyfin items returned %d", resp.StatusCode)
	}

	var payload jellyfinItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode jellyfin response: %w", err)
	}

	items := make([]Item, 0, len(payload.Items))
	for _, entry := range payload.Items {
		if entry.SeriesName == "" || entry.Name == "" {
			continue
		}
		watchedOn := time.Now().Format("2006-01-02")
		if entry.UserData != nil && entry.UserData.LastPlayedDate != "" {
			if parsed, err := time.Parse(time.RFC3339, entry.UserData.LastPlayedDate); err == nil {
				watchedOn = parsed.Format("2006-01-02")
			}
		}
		items = append(items, Item{
			SeriesName:   DisplayName(entry.SeriesName),
			SeasonHint:   entry.ParentIndexNumber,
			EpisodeHint:  entry.IndexNumber,
			EpisodeTitle: entry.Name,
			WatchedOn:    watchedOn,
			Source:       "jellyfin",
			MediaType:    MediaTypeSeries,
		})
	}
	return items, nil
}
