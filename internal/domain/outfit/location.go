package outfit

import (
	"errors"
	"time"
)

// LocationReason is the canonical cause of a failed position lookup.
type LocationReason string

const (
	ReasonPermissionDenied    LocationReason = "permission_denied"
	ReasonTimeout             LocationReason = "timeout"
	ReasonPositionUnavailable LocationReason = "position_unavailable"
)

// LocationError reports why no position could be produced.
type LocationError struct {
	Reason LocationReason
	Err    error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return "locate: " + string(e.Reason) + ": " + e.Err.Error()
	}
	return "locate: " + string(e.Reason)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// NewLocationError wraps err with a reason.
func NewLocationError(reason LocationReason, err error) error {
	return &LocationError{Reason: reason, Err: err}
}

// ReasonOf extracts the reason from err; unknown errors count as unavailable.
func ReasonOf(err error) LocationReason {
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return locErr.Reason
	}
	return ReasonPositionUnavailable
}

// PositionOptions bounds a position lookup.
type PositionOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaximumAge         time.Duration
}

// DefaultPositionOptions is the low-accuracy profile used by the forecast flow.
func DefaultPositionOptions() PositionOptions {
	return PositionOptions{
		EnableHighAccuracy: false,
		Timeout:            10 * time.Second,
		MaximumAge:         30 * time.Minute,
	}
}
