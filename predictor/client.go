package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ScriptInfo is a model script stored on the script server
type ScriptInfo struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   *int64  `json:"updatedAt,omitempty"`
}

// queryRequest is the body of a query call
type queryRequest struct {
	Path   string         `json:"path"`
	Args   map[string]any `json:"args"`
	Format string         `json:"format"`
}

// queryResponse is the envelope every query answers with
type queryResponse struct {
	Status string          `json:"status"`
	Value  json.RawMessage `json:"value"`
	Error  *string         `json:"errorMessage,omitempty"`
}

// Client fetches model scripts from a script server over its HTTP query API.
// Calls go through a circuit breaker so an unreachable server fails fast.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger

	retries int
	backoff time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets how many times a failed query is attempted and the base delay between attempts
func WithRetry(attempts int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = max(1, attempts)
		c.backoff = backoff
	}
}

// WithBreaker sets the number of consecutive failures that opens the breaker
// and how long it stays open
func WithBreaker(failures uint32, open time.Duration) ClientOption {
	return func(c *Client) {
		c.breaker = newBreaker(c.logger, failures, open)
	}
}

// NewClient creates a script server client for deploymentURL
func NewClient(deploymentURL string, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: deploymentURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger.With("component", "script-client"),
		retries: 3,
		backoff: 500 * time.Millisecond,
	}
	c.breaker = newBreaker(c.logger, 5, 30*time.Second)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBreaker(logger *slog.Logger, failures uint32, open time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "script-server",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     open,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// State returns the circuit breaker state
func (c *Client) State() gobreaker.State { return c.breaker.State() }

// Counts returns the circuit breaker counters of the current interval
func (c *Client) Counts() gobreaker.Counts { return c.breaker.Counts() }

// Query executes a server query function, retrying failed attempts with a
// linear backoff. It stops retrying once the breaker opens.
func (c *Client) Query(ctx context.Context, functionPath string, args map[string]any) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		value, err := c.breaker.Execute(func() (interface{}, error) {
			return c.query(ctx, functionPath, args)
		})
		if err == nil {
			return value.(json.RawMessage), nil
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit breaker: %w", err)
		}
		if attempt == c.retries-1 {
			break
		}

		delay := time.Duration(attempt+1) * c.backoff
		c.logger.Warn("query failed, retrying",
			"path", functionPath,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("query %s after %d attempts: %w", functionPath, c.retries, lastErr)
}

func (c *Client) query(ctx context.Context, functionPath string, args map[string]any) (json.RawMessage, error) {
	reqBody := queryRequest{
		Path:   functionPath,
		Args:   args,
		Format: "json",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/query", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("script server error (status %d): %s", resp.StatusCode, string(body))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if qr.Status != "success" {
		errMsg := "unknown error"
		if qr.Error != nil {
			errMsg = *qr.Error
		}
		return nil, fmt.Errorf("query failed: %s", errMsg)
	}

	return qr.Value, nil
}

// ListScripts fetches every script on the server
func (c *Client) ListScripts(ctx context.Context) ([]ScriptInfo, error) {
	result, err := c.Query(ctx, "scripts:list", map[string]any{})
	if err != nil {
		return nil, err
	}

	var scripts []ScriptInfo
	if err := json.Unmarshal(result, &scripts); err != nil {
		return nil, fmt.Errorf("failed to parse scripts: %w", err)
	}
	return scripts, nil
}

// FetchScript returns the code of the named script
func (c *Client) FetchScript(ctx context.Context, name string) (string, error) {
	result, err := c.Query(ctx, "scripts:getByName", map[string]any{
		"name": name,
	})
	if err != nil {
		return "", err
	}

	if string(result) == "null" {
		return "", fmt.Errorf("%s: %w", name, ErrScriptNotFound)
	}

	var script ScriptInfo
	if err := json.Unmarshal(result, &script); err != nil {
		return "", fmt.Errorf("failed to parse script: %w", err)
	}
	return script.Code, nil
}
