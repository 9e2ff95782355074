package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
)

const defaultIPAPIURL = "http://ip-api.com/json"

// Static always reports the configured coordinates.
type Static struct {
	coords outfit.Coordinates
}

// NewStatic builds a fixed provider.
func NewStatic(latitude, longitude float64) *Static {
	return &Static{coords: outfit.Coordinates{Latitude: latitude, Longitude: longitude}}
}

func (s *Static) Name() string { return "static" }

// Locate implements Provider.
func (s *Static) Locate(ctx context.Context, _ outfit.PositionOptions) (outfit.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonTimeout, err)
	}
	return s.coords, nil
}

// IPAPI approximates the device position from its public address.
type IPAPI struct {
	endpoint   string
	httpClient *http.Client
}

// NewIPAPI builds an ip-api.com compatible provider.
func NewIPAPI(endpoint string) *IPAPI {
	url := strings.TrimSpace(endpoint)
	if url == "" {
		url = defaultIPAPIURL
	}
	return &IPAPI{endpoint: url, httpClient: &http.Client{}}
}

func (p *IPAPI) Name() string { return "ipapi" }

type ipapiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate implements Provider. The lookup is coarse regardless of
// EnableHighAccuracy.
func (p *IPAPI) Locate(ctx context.Context, _ outfit.PositionOptions) (outfit.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, fmt.Errorf("build ipapi request: %w", err))
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonTimeout, err)
		}
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, fmt.Errorf("ipapi request failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPermissionDenied, fmt.Errorf("ipapi status=%d", resp.StatusCode))
	case resp.StatusCode >= 300:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, fmt.Errorf("ipapi status=%d body=%s", resp.StatusCode, string(payload)))
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, fmt.Errorf("decode ipapi response: %w", err))
	}
	if body.Status != "" && body.Status != "success" {
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, fmt.Errorf("ipapi lookup failed: %s", body.Message))
	}
	return outfit.Coordinates{Latitude: body.Lat, Longitude: body.Lon}, nil
}

var (
	_ Provider = (*Static)(nil)
	_ Provider = (*IPAPI)(nil)
)
