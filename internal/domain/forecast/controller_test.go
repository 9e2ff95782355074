package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
	apperrors "github.com/yanqian/outfit-assistant/pkg/errors"
)

type stubLocator struct {
	coords outfit.Coordinates
	err    error
	opts   []outfit.PositionOptions
}

func (s *stubLocator) Locate(_ context.Context, opts outfit.PositionOptions) (outfit.Coordinates, error) {
	s.opts = append(s.opts, opts)
	return s.coords, s.err
}

type stubClient struct {
	reply  outfit.Reply[outfit.ForecastResult]
	err    error
	coords []outfit.Coordinates
}

func (s *stubClient) AutoForecast(_ context.Context, coords outfit.Coordinates) (outfit.Reply[outfit.ForecastResult], error) {
	s.coords = append(s.coords, coords)
	return s.reply, s.err
}

type inlineRunner struct{}

func (inlineRunner) Go(task func(), resume func()) {
	task()
	resume()
}

type heldRunner struct {
	pending []func()
}

func (r *heldRunner) Go(task func(), resume func()) {
	r.pending = append(r.pending, func() {
		task()
		resume()
	})
}

// step runs the oldest parked task.
func (r *heldRunner) step() {
	next := r.pending[0]
	r.pending = r.pending[1:]
	next()
}

func newController(locator Locator, client Client, runner Runner) (*Controller, *view.ForecastView) {
	v := view.New().Forecast
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewController(v, locator, client, runner, outfit.DefaultPositionOptions(), logger), v
}

func forecastReply(result *outfit.ForecastResult) outfit.Reply[outfit.ForecastResult] {
	return outfit.Reply[outfit.ForecastResult]{
		Status:   http.StatusOK,
		OK:       true,
		Envelope: outfit.Envelope[outfit.ForecastResult]{Success: true, Data: result},
	}
}

func sampleDays() []outfit.ForecastDay {
	return []outfit.ForecastDay{
		{
			Date:           "2026-10-19",
			WeatherText:    "多云",
			TemperatureMin: outfit.Float(12.4),
			TemperatureMax: outfit.Float(19.6),
			WindSpeed:      outfit.Float(4.5),
			Recommendation: &outfit.RecommendationResult{Outfit: "长袖衬衫", Tips: []string{"早晚温差大", "带外套"}},
		},
		{Date: "2026-10-20"},
	}
}

func TestInitUnsupported(t *testing.T) {
	client := &stubClient{}
	c, v := newController(nil, client, inlineRunner{})

	c.Init()

	require.Equal(t, StateUnsupported, c.State())
	require.Equal(t, outfit.ForecastUnsupported, v.Status.Text)
	require.True(t, v.Status.Error)
	require.True(t, v.Refresh.Disabled)
	require.Empty(t, client.coords)

	err := c.Refresh()
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnsupported))
	require.True(t, v.Refresh.Disabled)
}

func TestInitRendersDays(t *testing.T) {
	locator := &stubLocator{coords: outfit.Coordinates{Latitude: 31.23, Longitude: 121.47}}
	client := &stubClient{reply: forecastReply(&outfit.ForecastResult{
		Location: &outfit.ForecastLocation{Timezone: "Asia/Shanghai"},
		Days:     sampleDays(),
	})}
	c, v := newController(locator, client, inlineRunner{})

	c.Init()

	require.Equal(t, StateRendered, c.State())
	require.Equal(t, []outfit.Coordinates{{Latitude: 31.23, Longitude: 121.47}}, client.coords)
	require.Equal(t, outfit.DefaultPositionOptions(), locator.opts[0])
	require.False(t, v.List.Hidden)
	require.Len(t, v.List.Items, 2)
	require.Equal(t, "10月19日周一", v.List.Items[0].Date)
	require.Equal(t, "10月20日周二", v.List.Items[1].Date)
	require.Equal(t, "已基于你的位置（Asia/Shanghai）生成未来 7 天的穿搭建议。", v.Status.Text)
	require.False(t, v.Status.Error)
	require.False(t, v.Refresh.Disabled)
}

func TestRenderedWithoutTimezone(t *testing.T) {
	locator := &stubLocator{}
	client := &stubClient{reply: forecastReply(&outfit.ForecastResult{Days: sampleDays()})}
	c, v := newController(locator, client, inlineRunner{})

	c.Init()

	require.Equal(t, outfit.ForecastReady, v.Status.Text)
}

func TestLocatePermissionDenied(t *testing.T) {
	locator := &stubLocator{err: outfit.NewLocationError(outfit.ReasonPermissionDenied, nil)}
	client := &stubClient{}
	c, v := newController(locator, client, inlineRunner{})

	c.Init()

	require.Equal(t, StateError, c.State())
	require.Equal(t, outfit.ForecastDenied, v.Status.Text)
	require.True(t, v.Status.Error)
	require.False(t, v.Refresh.Disabled)
	require.True(t, v.List.Hidden)
	require.Empty(t, client.coords)
}

func TestLocateOtherFailures(t *testing.T) {
	for _, err := range []error{
		outfit.NewLocationError(outfit.ReasonTimeout, context.DeadlineExceeded),
		outfit.NewLocationError(outfit.ReasonPositionUnavailable, nil),
		errors.New("gps exploded"),
	} {
		c, v := newController(&stubLocator{err: err}, &stubClient{}, inlineRunner{})
		c.Init()
		require.Equal(t, outfit.ForecastLocateFailed, v.Status.Text)
		require.False(t, v.Refresh.Disabled)
	}
}

func TestEmptyDays(t *testing.T) {
	client := &stubClient{reply: forecastReply(&outfit.ForecastResult{Days: []outfit.ForecastDay{}})}
	c, v := newController(&stubLocator{}, client, inlineRunner{})

	c.Init()

	require.Equal(t, StateError, c.State())
	require.True(t, v.List.Hidden)
	require.Empty(t, v.List.Items)
	require.Equal(t, outfit.ForecastEmpty, v.Status.Text)
	require.True(t, v.Status.Error)
	require.False(t, v.Refresh.Disabled)
}

func TestFetchRejected(t *testing.T) {
	client := &stubClient{reply: outfit.Reply[outfit.ForecastResult]{
		Status: http.StatusBadGateway,
		Envelope: outfit.Envelope[outfit.ForecastResult]{
			Errors: map[string]string{"general": "上游天气服务超时"},
		},
	}}
	c, v := newController(&stubLocator{}, client, inlineRunner{})

	c.Init()

	require.Equal(t, "上游天气服务超时", v.Status.Text)
	require.True(t, v.Status.Error)

	client.reply = outfit.Reply[outfit.ForecastResult]{Status: http.StatusOK, OK: true}
	require.NoError(t, c.Refresh())
	require.Equal(t, outfit.ForecastUnavailable, v.Status.Text)
}

func TestFetchNetworkError(t *testing.T) {
	client := &stubClient{err: errors.New("connection reset")}
	c, v := newController(&stubLocator{}, client, inlineRunner{})

	c.Init()

	require.Equal(t, outfit.ForecastFetchFailed, v.Status.Text)
	require.False(t, v.Refresh.Disabled)
	require.True(t, v.List.Hidden)
}

func TestRefreshLifecycle(t *testing.T) {
	runner := &heldRunner{}
	client := &stubClient{reply: forecastReply(&outfit.ForecastResult{Days: sampleDays()})}
	c, v := newController(&stubLocator{}, client, runner)

	c.Init()
	require.Equal(t, StateLocating, c.State())
	require.Equal(t, outfit.ForecastLocating, v.Status.Text)
	require.True(t, v.Refresh.Disabled)
	require.True(t, apperrors.IsCode(c.Refresh(), apperrors.CodeTriggerDisabled))

	runner.step()
	require.Equal(t, StateFetching, c.State())
	require.Equal(t, outfit.ForecastFetching, v.Status.Text)
	require.True(t, v.Refresh.Disabled)

	runner.step()
	require.Equal(t, StateRendered, c.State())
	require.False(t, v.List.Hidden)

	require.NoError(t, c.Refresh())
	require.Equal(t, StateLocating, c.State())
	require.Equal(t, outfit.ForecastRelocating, v.Status.Text)
	require.True(t, v.List.Hidden)
}

func TestRefreshFromIdleLocates(t *testing.T) {
	runner := &heldRunner{}
	c, v := newController(&stubLocator{}, &stubClient{}, runner)

	require.NoError(t, c.Refresh())
	require.Equal(t, StateLocating, c.State())
	require.Equal(t, outfit.ForecastLocating, v.Status.Text)
	require.True(t, v.Refresh.Disabled)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	runner := &heldRunner{}
	client := &stubClient{reply: forecastReply(&outfit.ForecastResult{Days: sampleDays()})}
	c, v := newController(&stubLocator{}, client, runner)

	c.Init()
	// Simulate an external replay while the first lookup is outstanding.
	c.start(true)
	require.Len(t, runner.pending, 2)

	runner.step()
	require.Len(t, runner.pending, 1)
	require.Empty(t, client.coords)
	require.True(t, v.Refresh.Disabled)

	runner.step()
	runner.step()
	require.Len(t, client.coords, 1)
	require.Equal(t, StateRendered, c.State())
	require.False(t, v.Refresh.Disabled)
}

func TestStateTransitions(t *testing.T) {
	require.Equal(t, StateUnsupported, StateIdle.next(eventNoLocator))
	require.Equal(t, StateUnsupported, StateUnsupported.next(eventStart))
	require.Equal(t, StateLocating, StateError.next(eventStart))
	require.Equal(t, StateLocating, StateRendered.next(eventStart))
	require.Equal(t, StateFetching, StateLocating.next(eventLocated))
	require.Equal(t, StateError, StateFetching.next(eventFetchFailed))
	require.Equal(t, StateFetching, StateFetching.next(eventStart))
	require.Equal(t, "rendered", StateRendered.String())
}
