// Package flightlog fetches the raw flight log records the board is built from.
package flightlog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/config"

	"github.com/rs/zerolog/log"
)

// Client reads flight logs from a single JSON endpoint
type Client struct {
	url          string
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: config.FlightLogRequestTimeout,
		},
	}
}

// GetAPICallCount returns the number of completed requests
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the request counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// FetchFlightLogs downloads and decodes the current flight logs. The endpoint
// may answer with an array or a single record object.
func (c *Client) FetchFlightLogs(ctx context.Context) ([]app.FlightLog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight logs: %w", err)
	}
	defer resp.Body.Close()

	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("flight log request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read flight log body: %w", err)
	}

	logs, err := app.DecodeFlightLogs(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flight logs: %w", err)
	}

	log.Debug().
		Str("url", c.url).
		Int("records", len(logs)).
		Msg("Successfully fetched flight logs")

	return logs, nil
}
