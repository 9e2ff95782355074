package advisorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
)

const (
	defaultBaseURL = "http://localhost:5000"

	recommendPath    = "/api/recommend"
	autoForecastPath = "/api/auto-forecast"

	// RequestIDHeader is forwarded on every call for log correlation.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

// Client talks to the outfit advisor service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "advisorapi.client"),
	}
}

// Recommend posts a normalized form to the recommendation endpoint.
func (c *Client) Recommend(ctx context.Context, req outfit.RecommendationRequest) (outfit.Reply[outfit.RecommendationResult], error) {
	var env outfit.Envelope[outfit.RecommendationResult]
	status, err := c.PostJSON(ctx, recommendPath, req, &env)
	if err != nil {
		return outfit.Reply[outfit.RecommendationResult]{Status: status}, err
	}
	return outfit.Reply[outfit.RecommendationResult]{Status: status, OK: isOK(status), Envelope: env}, nil
}

// AutoForecast posts coordinates to the seven day forecast endpoint.
func (c *Client) AutoForecast(ctx context.Context, coords outfit.Coordinates) (outfit.Reply[outfit.ForecastResult], error) {
	var env outfit.Envelope[outfit.ForecastResult]
	status, err := c.PostJSON(ctx, autoForecastPath, coords, &env)
	if err != nil {
		return outfit.Reply[outfit.ForecastResult]{Status: status}, err
	}
	return outfit.Reply[outfit.ForecastResult]{Status: status, OK: isOK(status), Envelope: env}, nil
}

// PostJSON sends body as JSON and decodes the response into out whatever the
// status. Only transport and decode failures are returned as errors.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build advisor request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read advisor response: %w", err)
	}
	c.logger.Debug("advisor call finished",
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if err := json.Unmarshal(raw, out); err != nil {
		snippet := raw
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return resp.StatusCode, fmt.Errorf("decode advisor response: status=%d body=%s: %w", resp.StatusCode, string(snippet), err)
	}
	return resp.StatusCode, nil
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}
