package gamedata

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.rawg.io/api/games"

	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultTimeout     = 10 * time.Second

	// Wide-open bounds used to complete a half-specified range filter.
	earliestReleaseDate = "1800-01-01"
	latestReleaseDate   = "3000-01-01"
)

// Config contains credential and runtime options for the RAWG client.
type Config struct {
	APIKey      string
	BaseURL     string
	HTTPClient  *http.Client
	MaxAttempts int           // total attempts per logical request
	BaseDelay   time.Duration // first backoff delay; doubles per attempt
}

// Client performs lookups against the RAWG games API. Each exported method
// maps to one logical GET; transient failures are retried with exponential
// backoff and jitter before the error is surfaced.
type Client struct {
	apiKey      string
	baseURL     string
	http        *http.Client
	maxAttempts int
	baseDelay   time.Duration
}

// NewClient builds a RAWG client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("rawg api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = defaultBaseDelay
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        httpClient,
		maxAttempts: attempts,
		baseDelay:   delay,
	}, nil
}

// SearchByName searches the catalog for games matching the provided title.
// An empty result is not an error; the caller decides how to report it.
func (c *Client) SearchByName(ctx context.Context, name string) ([]GameRecord, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("exclude_additions", "true")

	body, err := c.get(ctx, c.baseURL, params)
	if err != nil {
		return nil, err
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ExternalServiceError{Err: errors.Wrap(err, "malformed search response")}
	}
	return newGameRecords(payload.Results), nil
}

// Description fetches the long-form description of a game by its RAWG id.
// Unknown ids fail with NotFoundError.
func (c *Client) Description(ctx context.Context, gameID int) (*GameDescription, error) {
	params := url.Values{}
	params.Set("exclude_additions", "true")

	body, err := c.get(ctx, c.baseURL+"/"+strconv.Itoa(gameID), params)
	if err != nil {
		var svcErr *ExternalServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{GameID: gameID}
		}
		return nil, err
	}

	var payload gamePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ExternalServiceError{Err: errors.Wrap(err, "malformed detail response")}
	}
	if payload.ID == 0 || payload.Name == "" {
		// A success status with an unusable body must not yield a
		// partially populated record.
		return nil, &ExternalServiceError{Err: errors.New("detail response missing id or name")}
	}

	return &GameDescription{
		Name:        payload.Name,
		ID:          payload.ID,
		Description: payload.Description,
	}, nil
}

// Filters constrains a multi-game lookup. Zero-valued fields are omitted
// from the outbound request rather than sent as wildcards; a half-specified
// range is completed with a wide-open bound.
type Filters struct {
	PageSize        int
	Title           string
	ParentPlatforms []string // slugs, translated to ids
	Platforms       []string // slugs, translated to ids
	Stores          []string // slugs, translated to ids
	Developers      []string
	Publishers      []string
	Genres          []string
	Tags            []string
	ReleasedAfter   string // YYYY-MM-DD
	ReleasedBefore  string // YYYY-MM-DD
	MetacriticMin   *int
	MetacriticMax   *int
	Ordering        string
}

func (f Filters) encode() url.Values {
	params := url.Values{}
	params.Set("exclude_additions", "true")

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	params.Set("page_size", strconv.Itoa(pageSize))

	if f.Title != "" {
		params.Set("search", f.Title)
	}
	setIDs(params, "parent_platforms", ParentPlatformIDs(f.ParentPlatforms))
	setIDs(params, "platforms", PlatformIDs(f.Platforms))
	setIDs(params, "stores", StoreIDs(f.Stores))
	setSlugs(params, "developers", f.Developers)
	setSlugs(params, "publishers", f.Publishers)
	setSlugs(params, "genres", f.Genres)
	setSlugs(params, "tags", f.Tags)

	if f.ReleasedAfter != "" || f.ReleasedBefore != "" {
		lower := f.ReleasedAfter
		if lower == "" {
			lower = earliestReleaseDate
		}
		upper := f.ReleasedBefore
		if upper == "" {
			upper = latestReleaseDate
		}
		params.Set("dates", lower+","+upper)
	}

	if f.MetacriticMin != nil || f.MetacriticMax != nil {
		lower, upper := 0, 100
		if f.MetacriticMin != nil {
			lower = *f.MetacriticMin
		}
		if f.MetacriticMax != nil {
			upper = *f.MetacriticMax
		}
		params.Set("metacritic", strconv.Itoa(lower)+","+strconv.Itoa(upper))
	}

	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	return params
}

// FindByFilters lists games constrained by the supplied filters.
func (c *Client) FindByFilters(ctx context.Context, f Filters) ([]GameRecord, error) {
	body, err := c.get(ctx, c.baseURL, f.encode())
	if err != nil {
		return nil, err
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ExternalServiceError{Err: errors.Wrap(err, "malformed filter response")}
	}
	return newGameRecords(payload.Results), nil
}

// get executes one GET with the API key attached, retrying transient
// failures (network errors, 429, 5xx) with exponential backoff plus jitter.
// Non-transient HTTP errors surface immediately.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	fullURL := rawURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay<<(attempt-1) + time.Duration(rand.Int63n(int64(100*time.Millisecond)))
			slog.Debug("retrying game data request", "attempt", attempt+1, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &ExternalServiceError{Err: ctx.Err()}
			}
		}

		body, retryable, err := c.doOnce(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		slog.Warn("game data request failed", "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, &ExternalServiceError{Err: errors.Wrap(err, "building request")}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, &ExternalServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		svcErr := &ExternalServiceError{
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, transient, svcErr
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &ExternalServiceError{Err: errors.Wrap(err, "reading response body")}
	}
	if len(body) == 0 {
		return nil, false, &ExternalServiceError{StatusCode: resp.StatusCode, Err: errors.New("empty response body")}
	}
	return body, false, nil
}

func setIDs(params url.Values, key string, ids []int) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	params.Set(key, strings.Join(parts, ","))
}

func setSlugs(params url.Values, key string, slugs []string) {
	if len(slugs) == 0 {
		return
	}
	params.Set(key, strings.Join(slugs, ","))
}
