package torn

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

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/config"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Torn API host
const DefaultBaseURL = "https://api.torn.com"

// APIError is the error envelope Torn returns with a 200 status,
// e.g. {"error":{"code":2,"error":"Incorrect key"}}
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("torn api error %d: %s", e.Code, e.Message)
}

// Torn error codes that mean the operator key itself is unusable
const (
	ErrCodeIncorrectKey    = 2
	ErrCodeAccessLevel     = 16
	ErrCodeKeyPaused       = 18
	ErrCodeKeyReadOnly     = 13
	ErrCodeTooManyRequests = 5
)

// IsKeyError reports whether err means every further call with this key will fail
func IsKeyError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case ErrCodeIncorrectKey, ErrCodeAccessLevel, ErrCodeKeyPaused, ErrCodeKeyReadOnly:
		return true
	}
	return false
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

type Client struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL points the client at another host (tests, proxies)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: config.TornRequestTimeout,
		},
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

// makeAPIRequest creates and executes an HTTP GET request to the Torn API
func (c *Client) makeAPIRequest(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	query.Set("key", c.apiKey)
	requestURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// the URL carries the key, so only the path is logged
		log.Debug().
			Err(err).
			Str("path", path).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request to %s: %w", path, redactKey(err, c.apiKey))
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleAPIResponse processes the HTTP response and returns the body bytes.
// Torn reports most failures as a 200 with an error envelope.
func (c *Client) handleAPIResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return nil, envelope.Error
	}

	return body, nil
}

// GetUserBasic fetches the basic profile (name, level, status) of a player
func (c *Client) GetUserBasic(ctx context.Context, userID int) (*app.UserBasicResponse, error) {
	path := fmt.Sprintf("/user/%d", userID)

	log.Debug().Int("user_id", userID).Msg("Fetching user basic profile")

	resp, err := c.makeAPIRequest(ctx, path, url.Values{"selections": {"basic"}})
	if err != nil {
		return nil, err
	}

	body, err := c.handleAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	var user app.UserBasicResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}

	log.Debug().
		Int("user_id", userID).
		Str("name", user.Name).
		Msg("Successfully fetched user basic profile")

	return &user, nil
}

// GetFactionMembers fetches the roster of the key owner's faction
func (c *Client) GetFactionMembers(ctx context.Context) (*app.FactionMembersResponse, error) {
	log.Debug().Msg("Fetching faction members")

	resp, err := c.makeAPIRequest(ctx, "/v2/faction/members", url.Values{})
	if err != nil {
		return nil, err
	}

	body, err := c.handleAPIResponse(resp)
	if err != nil {
		return nil, err
	}

	var members app.FactionMembersResponse
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("failed to decode faction members response: %w", err)
	}

	log.Debug().
		Int("members_count", len(members.Members)).
		Msg("Successfully fetched faction members")

	return &members, nil
}

// redactKey strips the API key out of transport errors, which embed the URL
func redactKey(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}
