package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
	apperrors "github.com/yanqian/outfit-assistant/pkg/errors"
)

// Locator resolves the device position.
type Locator interface {
	Locate(ctx context.Context, opts outfit.PositionOptions) (outfit.Coordinates, error)
}

// Client posts coordinates to the auto-forecast endpoint.
type Client interface {
	AutoForecast(ctx context.Context, coords outfit.Coordinates) (outfit.Reply[outfit.ForecastResult], error)
}

// Runner moves blocking work off the view goroutine and re-enters it with
// resume.
type Runner interface {
	Go(task func(), resume func())
}

// Controller drives the auto-forecast region. All methods must be called from
// the goroutine that owns the view.
type Controller struct {
	view    *view.ForecastView
	locator Locator
	client  Client
	runner  Runner
	opts    outfit.PositionOptions
	logger  *slog.Logger

	state State
	seq   uint64
}

// NewController wires the forecast flow. A nil locator marks the environment
// as unsupported.
func NewController(v *view.ForecastView, locator Locator, client Client, runner Runner, opts outfit.PositionOptions, logger *slog.Logger) *Controller {
	return &Controller{
		view:    v,
		locator: locator,
		client:  client,
		runner:  runner,
		opts:    opts,
		logger:  logger.With("component", "forecast.controller"),
	}
}

// State reports the current flow state.
func (c *Controller) State() State {
	return c.state
}

// Supported reports whether a geolocation provider is available.
func (c *Controller) Supported() bool {
	return c.locator != nil
}

// Init activates the flow on page load: either the first attempt starts
// immediately or the region is permanently disabled.
func (c *Controller) Init() {
	if c.locator == nil {
		c.state = c.state.next(eventNoLocator)
		c.view.SetStatus(outfit.ForecastUnsupported, true)
		c.view.Refresh.Disabled = true
		c.logger.Warn("no geolocation provider configured", "code", apperrors.CodeUnsupported)
		return
	}
	c.start(false)
}

// Refresh starts a new attempt from the refresh trigger.
func (c *Controller) Refresh() error {
	if c.state == StateUnsupported {
		return apperrors.Wrap(apperrors.CodeUnsupported, "geolocation is not available", nil)
	}
	if c.view.Refresh.Disabled {
		return apperrors.Wrap(apperrors.CodeTriggerDisabled, "a forecast request is already in flight", nil)
	}
	c.start(c.state != StateIdle)
	return nil
}

func (c *Controller) start(retry bool) {
	c.state = c.state.next(eventStart)
	c.view.List.Hidden = true
	if retry {
		c.view.SetStatus(outfit.ForecastRelocating, false)
	} else {
		c.view.SetStatus(outfit.ForecastLocating, false)
	}
	c.view.Refresh.Disabled = true
	c.seq++
	seq := c.seq

	var (
		coords outfit.Coordinates
		err    error
	)
	c.runner.Go(func() {
		coords, err = c.locator.Locate(context.Background(), c.opts)
	}, func() {
		c.located(seq, coords, err)
	})
}

func (c *Controller) located(seq uint64, coords outfit.Coordinates, err error) {
	if c.stale(seq) {
		return
	}
	if err != nil {
		c.state = c.state.next(eventLocateFailed)
		reason := outfit.ReasonOf(err)
		message := outfit.ForecastLocateFailed
		code := apperrors.CodeNetwork
		if reason == outfit.ReasonPermissionDenied {
			message = outfit.ForecastDenied
			code = apperrors.CodePermission
		}
		c.logger.Warn("geolocation failed", "reason", reason, "code", code, "error", err)
		c.view.SetStatus(message, true)
		c.view.Refresh.Disabled = false
		return
	}

	c.state = c.state.next(eventLocated)
	c.view.SetStatus(outfit.ForecastFetching, false)

	var (
		reply    outfit.Reply[outfit.ForecastResult]
		fetchErr error
	)
	c.runner.Go(func() {
		reply, fetchErr = c.client.AutoForecast(context.Background(), coords)
	}, func() {
		c.fetched(seq, reply, fetchErr)
	})
}

func (c *Controller) fetched(seq uint64, reply outfit.Reply[outfit.ForecastResult], err error) {
	if c.stale(seq) {
		return
	}
	defer func() {
		c.view.Refresh.Disabled = false
	}()

	result, failure := classify(reply, err)
	if failure != nil {
		c.state = c.state.next(eventFetchFailed)
		c.view.List.Hidden = true
		c.view.List.Items = nil
		c.view.SetStatus(failureMessage(reply, failure), true)
		c.logger.Warn("auto forecast failed", "status", reply.Status, "code", apperrors.CodeOf(failure), "error", failure)
		return
	}

	items := make([]view.ForecastItem, 0, len(result.Days))
	for _, day := range result.Days {
		items = append(items, BuildItem(day))
	}
	c.view.List.Items = items
	c.view.List.Hidden = false
	c.state = c.state.next(eventRendered)
	if tz := result.Timezone(); tz != "" {
		c.view.SetStatus(fmt.Sprintf(outfit.ForecastReadyTimezone, tz), false)
	} else {
		c.view.SetStatus(outfit.ForecastReady, false)
	}
	c.logger.Info("auto forecast rendered", "days", len(items), "timezone", result.Timezone())
}

func (c *Controller) stale(seq uint64) bool {
	if seq == c.seq {
		return false
	}
	c.logger.Debug("dropping stale forecast completion", "seq", seq, "latest", c.seq)
	return true
}

// classify maps a reply to the failure taxonomy and returns the usable payload.
func classify(reply outfit.Reply[outfit.ForecastResult], err error) (outfit.ForecastResult, error) {
	if err != nil {
		return outfit.ForecastResult{}, apperrors.Wrap(apperrors.CodeNetwork, "forecast transport failed", err)
	}
	if !reply.Succeeded() {
		return outfit.ForecastResult{}, apperrors.Wrap(apperrors.CodeGeneralRequest, "forecast request rejected", nil)
	}
	data := reply.Envelope.Data
	if data == nil || len(data.Days) == 0 {
		return outfit.ForecastResult{}, apperrors.Wrap(apperrors.CodeEmptyResult, "forecast has no days", nil)
	}
	return *data, nil
}

func failureMessage(reply outfit.Reply[outfit.ForecastResult], failure error) string {
	switch apperrors.CodeOf(failure) {
	case apperrors.CodeNetwork:
		return outfit.ForecastFetchFailed
	case apperrors.CodeEmptyResult:
		return outfit.ForecastEmpty
	default:
		if msg := reply.Envelope.ErrorMessage(outfit.GeneralErrorKey); msg != "" {
			return msg
		}
		return outfit.ForecastUnavailable
	}
}
