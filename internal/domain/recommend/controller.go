package recommend

import (
	"context"
	"log/slog"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
	apperrors "github.com/yanqian/outfit-assistant/pkg/errors"
)

// Client posts a normalized request to the recommendation endpoint.
type Client interface {
	Recommend(ctx context.Context, req outfit.RecommendationRequest) (outfit.Reply[outfit.RecommendationResult], error)
}

// Runner moves blocking work off the view goroutine and re-enters it with
// resume.
type Runner interface {
	Go(task func(), resume func())
}

// Controller drives the recommendation form. All methods must be called from
// the goroutine that owns the view.
type Controller struct {
	view   *view.RecommendView
	client Client
	runner Runner
	logger *slog.Logger

	state   State
	outcome State
	seq     uint64
}

// NewController wires the recommendation flow to its view region.
func NewController(v *view.RecommendView, client Client, runner Runner, logger *slog.Logger) *Controller {
	return &Controller{
		view:   v,
		client: client,
		runner: runner,
		logger: logger.With("component", "recommend.controller"),
	}
}

// State reports the current flow state.
func (c *Controller) State() State {
	return c.state
}

// Outcome reports how the last completed submission ended.
func (c *Controller) Outcome() State {
	return c.outcome
}

// QuickSelect fills the weather field from a preset tag.
func (c *Controller) QuickSelect(weather string) {
	c.view.QuickSelect(weather)
}

// SetInput replaces the form values without submitting.
func (c *Controller) SetInput(in outfit.RawInput) {
	c.view.SetInput(in)
}

// Submit starts a request from the current form values. It is rejected while
// a previous submission is outstanding.
func (c *Controller) Submit() error {
	if c.view.Submit.Disabled {
		return apperrors.Wrap(apperrors.CodeTriggerDisabled, "a recommendation request is already in flight", nil)
	}

	input := c.view.RawInput().Trimmed()
	req := outfit.Normalize(input)

	c.view.Errors.Clear()
	c.view.SetLoading(true)
	c.state = c.state.next(eventSubmit)
	c.seq++
	seq := c.seq

	var (
		reply outfit.Reply[outfit.RecommendationResult]
		err   error
	)
	c.runner.Go(func() {
		reply, err = c.client.Recommend(context.Background(), req)
	}, func() {
		c.complete(seq, input, reply, err)
	})
	return nil
}

func (c *Controller) complete(seq uint64, input outfit.RawInput, reply outfit.Reply[outfit.RecommendationResult], err error) {
	if seq != c.seq {
		c.logger.Debug("dropping stale recommendation reply", "seq", seq, "latest", c.seq)
		return
	}
	defer func() {
		c.view.SetLoading(false)
		c.outcome = c.state
		c.state = c.state.next(eventSettled)
	}()

	if failure := classify(reply, err); failure != nil {
		c.fail(reply, failure)
		return
	}

	c.state = c.state.next(eventSucceeded)
	c.render(input, reply.Envelope.Data)
}

func (c *Controller) fail(reply outfit.Reply[outfit.RecommendationResult], failure error) {
	c.state = c.state.next(eventFailed)

	if apperrors.IsCode(failure, apperrors.CodeNetwork) {
		c.logger.Error("recommendation request failed", "error", failure)
		c.view.Errors.Distribute(map[string]string{outfit.GeneralErrorKey: outfit.NetworkFailure}, c.view.Placeholder)
		c.view.ShowPlaceholder(outfit.NetworkFailure)
		return
	}

	c.logger.Info("recommendation rejected", "status", reply.Status, "code", apperrors.CodeOf(failure))
	errs := reply.Envelope.Errors
	if len(errs) == 0 {
		errs = map[string]string{outfit.GeneralErrorKey: outfit.RequestFailed}
	}
	c.view.Errors.Distribute(errs, c.view.Placeholder)
	c.view.ShowPlaceholder(firstNonEmpty(
		reply.Envelope.ErrorMessage(outfit.GeneralErrorKey),
		reply.Envelope.ErrorMessage(view.FieldWeather),
		outfit.CheckInput,
	))
}

func (c *Controller) render(input outfit.RawInput, data *outfit.RecommendationResult) {
	v := c.view
	if data == nil {
		v.ShowPlaceholder(outfit.NoRecommendation)
		return
	}

	v.Placeholder.Hidden = true
	v.Panel.Hidden = false

	v.SummaryWeather.Text = firstNonEmpty(input.Weather, outfit.EmptySummary)
	v.Outfit.Text = firstNonEmpty(data.Outfit, outfit.NoOutfit)
	setChip(v.SummaryTemperature, input.Temperature, outfit.TemperatureUnit)
	setChip(v.SummaryWind, input.WindSpeed, outfit.WindUnit)

	view.RenderList(v.Accessories, v.AccessoriesBlock, data.Accessories)
	view.RenderList(v.Tips, v.TipsBlock, data.Tips)
}

// classify maps a reply to the failure taxonomy; nil means success.
func classify(reply outfit.Reply[outfit.RecommendationResult], err error) error {
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, "recommendation transport failed", err)
	}
	if reply.Succeeded() {
		return nil
	}
	if reply.Envelope.ErrorMessage(outfit.GeneralErrorKey) != "" || len(reply.Envelope.Errors) == 0 {
		return apperrors.Wrap(apperrors.CodeGeneralRequest, "recommendation request rejected", nil)
	}
	return apperrors.Wrap(apperrors.CodeValidation, "recommendation input rejected", nil)
}

func setChip(chip *view.Element, value, unit string) {
	if value == "" {
		chip.Hidden = true
		return
	}
	chip.Text = value + unit
	chip.Hidden = false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
