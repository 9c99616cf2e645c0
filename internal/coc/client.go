package coc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Client struct {
	apiToken     string
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
	retry        config.RetryConfig
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(apiToken, baseURL string) *Client {
	return NewClientWithConfig(apiToken, baseURL, config.DefaultResilienceConfig)
}

// NewClientWithConfig creates a client with explicit retry and throttling settings
func NewClientWithConfig(apiToken, baseURL string, resilience config.ResilienceConfig) *Client {
	if baseURL == "" {
		baseURL = app.DefaultAPIBaseURL
	}
	limit := rate.Inf
	if resilience.APIRate.Interval > 0 {
		limit = rate.Every(resilience.APIRate.Interval)
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: resilience.APIRequest.Timeout,
		},
		limiter: rate.NewLimiter(limit, max(resilience.APIRate.Burst, 1)),
		retry:   resilience.APIRequest,
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// GetClanWar fetches the clan's current regular war
func (c *Client) GetClanWar(ctx context.Context, clanTag string) (app.Data, error) {
	data, err := c.get(ctx, "/clans/"+escapeTag(clanTag)+"/currentwar")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current war for %s: %w", clanTag, err)
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Str("state", data.String("state")).
		Msg("Successfully fetched current war")

	return data, nil
}

// GetLeagueGroup fetches the clan's current war league group
func (c *Client) GetLeagueGroup(ctx context.Context, clanTag string) (app.Data, error) {
	data, err := c.get(ctx, "/clans/"+escapeTag(clanTag)+"/currentwar/leaguegroup")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league group for %s: %w", clanTag, err)
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Str("season", data.String("season")).
		Int("rounds", len(data.Objects("rounds"))).
		Msg("Successfully fetched league group")

	return data, nil
}

// GetLeagueWar fetches one war league war by its war tag
func (c *Client) GetLeagueWar(ctx context.Context, warTag string) (app.Data, error) {
	data, err := c.get(ctx, "/clanwarleagues/wars/"+escapeTag(warTag))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league war %s: %w", warTag, err)
	}
	return data, nil
}

// GetWarLog fetches the clan's public war log
func (c *Client) GetWarLog(ctx context.Context, clanTag string) (app.Data, error) {
	data, err := c.get(ctx, "/clans/"+escapeTag(clanTag)+"/warlog")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch war log for %s: %w", clanTag, err)
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Int("entries", len(data.Objects("items"))).
		Msg("Successfully fetched war log")

	return data, nil
}

// get performs a GET with throttling and retries temporary failures with backoff
func (c *Client) get(ctx context.Context, path string) (app.Data, error) {
	var data app.Data
	err := config.Retry(ctx, c.retry, path, isRetryable, func(ctx context.Context) error {
		var err error
		data, err = c.getOnce(ctx, path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) getOnce(ctx context.Context, path string) (app.Data, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("path", path).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return handleAPIResponse(resp)
}

// handleAPIResponse decodes a success body or converts the failure into an *APIError
func handleAPIResponse(resp *http.Response) (app.Data, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Reason = payload.Reason
			apiErr.Message = payload.Message
		}
		return nil, apiErr
	}

	return app.DecodeData(body)
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	// transport failures are retried, context cancellation is not
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// escapeTag normalizes a clan or war tag and escapes its leading '#' for use in a path
func escapeTag(tag string) string {
	return url.PathEscape(app.NormalizeTag(tag))
}
