// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// Configuration constants for the search function.
const (
	// DefaultFunction is the name of the hosted function.
	DefaultFunction = "aicarsearch"

	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// DefaultRequestsPerSecond paces outbound calls.
	DefaultRequestsPerSecond = 2.0

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024

	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second

	userAgent = "carchat/1.0"
)

// Error variables for the search function.
var (
	// ErrNotConfigured indicates the base URL or anon key is missing.
	ErrNotConfigured = errors.New("search backend not configured")

	// ErrSearchFailed indicates the function answered with success=false.
	ErrSearchFailed = errors.New("search failed")

	// ErrRateLimited indicates the gateway answered 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthFailed indicates the anon key was rejected.
	ErrAuthFailed = errors.New("authentication failed")
)

// Default failure texts used when the function reports success=false
// without an error message.
const (
	searchFailedText  = "Search failed"
	detailsFailedText = "Failed to get vehicle details"
)

// FunctionError is a non-2xx reply from the function gateway.
type FunctionError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *FunctionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("function error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("function error (HTTP %d): %s", e.Status, e.Message)
}

// SearchRequest is the body of a free-text search.
type SearchRequest struct {
	Message             string           `json:"message"`
	Language            locale.Language  `json:"language"`
	ConversationContext *vehicle.Context `json:"conversation_context,omitempty"`
}

// detailsRequest is the body of a details lookup.
type detailsRequest struct {
	Action    vehicle.Action `json:"action"`
	VehicleID int64          `json:"vehicle_id"`
}

// gatewayError covers both shapes the gateway uses for error bodies.
type gatewayError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client calls the search function.
type Client struct {
	baseURL    string
	anonKey    string
	function   string
	httpClient *http.Client
	maxRetries int
	maxBody    int64
	retryBase  time.Duration
	retryMax   time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// New creates a client for the project at baseURL.
//
// An empty baseURL or anonKey still yields a client; its calls fail with
// ErrNotConfigured.
func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		anonKey:    strings.TrimSpace(anonKey),
		function:   DefaultFunction,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		maxBody:    MaxResponseSize,
		retryBase:  retryBaseDelay,
		retryMax:   retryMaxDelay,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		logger:     zap.NewNop(),
	}
}

// WithFunction sets the function name.
func (c *Client) WithFunction(name string) *Client {
	if name = strings.Trim(strings.TrimSpace(name), "/"); name != "" {
		c.function = name
	}
	return c
}

// WithTimeout sets the per-attempt timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithMaxRetries sets the maximum number of attempts. Values below 1 mean a
// single attempt.
func (c *Client) WithMaxRetries(n int) *Client {
	if n < 1 {
		n = 1
	}
	c.maxRetries = n
	return c
}

// WithRateLimit paces requests to rps per second. Zero or negative disables
// pacing.
func (c *Client) WithRateLimit(rps float64) *Client {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return c
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	return c
}

// WithBackoff sets the base and maximum retry delays.
func (c *Client) WithBackoff(base, maxDelay time.Duration) *Client {
	c.retryBase = base
	c.retryMax = maxDelay
	return c
}

// WithMaxResponseSize sets the response size limit in bytes.
func (c *Client) WithMaxResponseSize(n int64) *Client {
	c.maxBody = n
	return c
}

// WithLogger sets the logger. A nil logger disables logging.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.Named("search")
	return c
}

// IsConfigured reports whether both the base URL and anon key are set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

// Endpoint returns the function URL.
func (c *Client) Endpoint() string {
	return c.baseURL + "/functions/v1/" + c.function
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Search sends a free-text message with the optional conversation context.
func (c *Client) Search(ctx context.Context, message string, lang locale.Language, convCtx *vehicle.Context) (*vehicle.SearchResult, error) {
	if !lang.Valid() {
		lang = locale.Default
	}
	res, err := c.invoke(ctx, SearchRequest{
		Message:             message,
		Language:            lang,
		ConversationContext: convCtx,
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, failure(res.Error, searchFailedText)
	}
	return res, nil
}

// Details fetches the full record of a single vehicle.
func (c *Client) Details(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	res, err := c.invoke(ctx, detailsRequest{
		Action:    vehicle.ActionDetails,
		VehicleID: id,
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, failure(res.Error, detailsFailedText)
	}
	if res.Vehicle == nil {
		return nil, fmt.Errorf("%w: no vehicle in response for id %d", ErrSearchFailed, id)
	}
	return res.Vehicle, nil
}

func failure(msg, fallback string) error {
	if strings.TrimSpace(msg) == "" {
		msg = fallback
	}
	return fmt.Errorf("%w: %s", ErrSearchFailed, msg)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// invoke posts body to the function, retrying transient failures.
func (c *Client) invoke(ctx context.Context, body any) (*vehicle.SearchResult, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			c.logger.Debug("retrying", zap.Int("attempt", attempt+1), zap.Duration("delay", delay), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		res, err := c.doRequest(ctx, payload)
		if err == nil {
			return res, nil
		}
		if !c.isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single POST.
func (c *Client) doRequest(ctx context.Context, payload []byte) (*vehicle.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	body, err := c.readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}

	var res vehicle.SearchResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &res, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// readResponse reads at most maxBody bytes of the body.
func (c *Client) readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", c.maxBody)
	}
	return body, nil
}

// handleErrorResponse converts a non-2xx reply into an error.
func handleErrorResponse(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var ge gatewayError
	if err := json.Unmarshal(body, &ge); err == nil {
		switch {
		case ge.Error != "":
			msg = ge.Error
		case ge.Message != "":
			msg = ge.Message
		}
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthFailed, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	default:
		return &FunctionError{Status: status, Message: msg}
	}
}

// isRetryable reports whether err is a rate limit or a 5xx reply.
func (c *Client) isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var fe *FunctionError
	if errors.As(err, &fe) {
		return fe.Status >= 500 && fe.Status < 600
	}
	return false
}

// calculateBackoff returns the delay before the given attempt.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := c.retryBase * time.Duration(1<<uint(attempt-1))
	if delay > c.retryMax {
		delay = c.retryMax
	}
	return delay
}
