package geo

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"golang.org/x/sync/singleflight"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/pkg/util"
)

// fixRetention bounds how long a fix is kept for drift reporting; freshness
// is judged separately against PositionOptions.MaximumAge.
const fixRetention = 24 * time.Hour

var worldBounds = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Provider produces a fresh position fix.
type Provider interface {
	Name() string
	Locate(ctx context.Context, opts outfit.PositionOptions) (outfit.Coordinates, error)
}

// Cached serves recent fixes from a store and coalesces concurrent lookups.
type Cached struct {
	provider Provider
	store    PositionStore
	group    singleflight.Group
	logger   *slog.Logger
	now      util.Clock
}

// NewCached decorates provider with a position store.
func NewCached(provider Provider, store PositionStore, logger *slog.Logger) *Cached {
	return &Cached{
		provider: provider,
		store:    store,
		logger:   logger.With("component", "geo.cached", "provider", provider.Name()),
		now:      util.NowUTC,
	}
}

// Locate returns a stored fix younger than opts.MaximumAge or asks the
// provider for a new one within opts.Timeout.
func (c *Cached) Locate(ctx context.Context, opts outfit.PositionOptions) (outfit.Coordinates, error) {
	last, found := c.last(ctx)
	if found && opts.MaximumAge > 0 && last.Age(c.now()) <= opts.MaximumAge {
		c.logger.Debug("serving cached position", "age", last.Age(c.now()))
		return last.Coordinates, nil
	}

	v, err, shared := c.group.Do("locate", func() (any, error) {
		return c.lookup(ctx, opts, last, found)
	})
	if err != nil {
		return outfit.Coordinates{}, err
	}
	if shared {
		c.logger.Debug("position lookup shared")
	}
	return v.(outfit.Coordinates), nil
}

func (c *Cached) lookup(ctx context.Context, opts outfit.PositionOptions, last Fix, found bool) (outfit.Coordinates, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	coords, err := c.provider.Locate(ctx, opts)
	if err != nil {
		var locErr *outfit.LocationError
		if !errors.As(err, &locErr) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = outfit.NewLocationError(outfit.ReasonTimeout, err)
		}
		return outfit.Coordinates{}, err
	}
	if !Valid(coords) {
		return outfit.Coordinates{}, outfit.NewLocationError(outfit.ReasonPositionUnavailable, errors.New("coordinates out of range"))
	}

	if found {
		c.logger.Info("position refreshed", "drift_m", math.Round(Distance(last.Coordinates, coords)))
	}
	fix := Fix{Coordinates: coords, Source: c.provider.Name(), At: c.now()}
	if err := c.store.Save(ctx, fix, fixRetention); err != nil {
		c.logger.Warn("save position failed", "error", err)
	}
	return coords, nil
}

func (c *Cached) last(ctx context.Context) (Fix, bool) {
	fix, ok, err := c.store.Last(ctx)
	if err != nil {
		c.logger.Warn("read cached position failed", "error", err)
		return Fix{}, false
	}
	return fix, ok
}

// Valid reports whether coords is a finite point on the globe.
func Valid(coords outfit.Coordinates) bool {
	if math.IsNaN(coords.Latitude) || math.IsNaN(coords.Longitude) {
		return false
	}
	return worldBounds.Contains(point(coords))
}

// Distance is the great-circle distance in meters.
func Distance(a, b outfit.Coordinates) float64 {
	return orbgeo.Distance(point(a), point(b))
}

func point(c outfit.Coordinates) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}
