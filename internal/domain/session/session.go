package session

import (
	"context"
	"log/slog"

	"github.com/yanqian/outfit-assistant/internal/domain/forecast"
	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/recommend"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
)

// Loop is the single goroutine that owns the view.
type Loop interface {
	Dispatch(fn func())
	Call(ctx context.Context, fn func()) error
}

// Service exposes the UI triggers to transports. Every method is safe to
// call from any goroutine.
type Service interface {
	Activate(autoStart bool)
	Snapshot(ctx context.Context) (view.Snapshot, error)
	SetInput(ctx context.Context, in outfit.RawInput) error
	QuickSelect(ctx context.Context, weather string) error
	Submit(ctx context.Context, in *outfit.RawInput) error
	RefreshForecast(ctx context.Context) error
}

type service struct {
	loop      Loop
	view      *view.Handles
	recommend *recommend.Controller
	forecast  *forecast.Controller
	logger    *slog.Logger
}

// NewService binds both flow controllers to the loop that owns their view.
func NewService(loop Loop, handles *view.Handles, rc *recommend.Controller, fc *forecast.Controller, logger *slog.Logger) Service {
	return &service{
		loop:      loop,
		view:      handles,
		recommend: rc,
		forecast:  fc,
		logger:    logger.With("component", "session.service"),
	}
}

// Activate runs the page-load step. Without autoStart a supported forecast
// region waits for the refresh trigger.
func (s *service) Activate(autoStart bool) {
	s.loop.Dispatch(func() {
		if autoStart || !s.forecast.Supported() {
			s.forecast.Init()
			return
		}
		s.logger.Info("forecast auto start disabled")
	})
}

func (s *service) Snapshot(ctx context.Context) (view.Snapshot, error) {
	var snap view.Snapshot
	err := s.loop.Call(ctx, func() {
		snap = s.view.Snapshot()
	})
	return snap, err
}

func (s *service) SetInput(ctx context.Context, in outfit.RawInput) error {
	return s.loop.Call(ctx, func() {
		s.recommend.SetInput(in)
	})
}

func (s *service) QuickSelect(ctx context.Context, weather string) error {
	return s.loop.Call(ctx, func() {
		s.recommend.QuickSelect(weather)
	})
}

// Submit optionally replaces the form values, then triggers a submission.
func (s *service) Submit(ctx context.Context, in *outfit.RawInput) error {
	var submitErr error
	if err := s.loop.Call(ctx, func() {
		if in != nil && !s.view.Recommend.Submit.Disabled {
			s.recommend.SetInput(*in)
		}
		submitErr = s.recommend.Submit()
	}); err != nil {
		return err
	}
	return submitErr
}

func (s *service) RefreshForecast(ctx context.Context) error {
	var refreshErr error
	if err := s.loop.Call(ctx, func() {
		refreshErr = s.forecast.Refresh()
	}); err != nil {
		return err
	}
	return refreshErr
}
