package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-assistant/internal/domain/eventloop"
	"github.com/yanqian/outfit-assistant/internal/domain/forecast"
	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/recommend"
	"github.com/yanqian/outfit-assistant/internal/domain/session"
	"github.com/yanqian/outfit-assistant/internal/domain/view"
	"github.com/yanqian/outfit-assistant/internal/infra/advisorapi"
	"github.com/yanqian/outfit-assistant/internal/infra/config"
	"github.com/yanqian/outfit-assistant/internal/infra/geo"
)

const loopQueueSize = 64

func provideLoop(logger *slog.Logger) *eventloop.Loop {
	return eventloop.New(loopQueueSize, logger)
}

func provideAdvisorClient(cfg *config.Config, logger *slog.Logger) *advisorapi.Client {
	return advisorapi.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.Timeout, logger)
}

func providePositionOptions(cfg *config.Config) outfit.PositionOptions {
	return outfit.PositionOptions{
		EnableHighAccuracy: cfg.Geo.EnableHighAccuracy,
		Timeout:            cfg.Geo.Timeout,
		MaximumAge:         cfg.Geo.MaximumAge,
	}
}

func providePositionStore(cfg *config.Config, logger *slog.Logger) geo.PositionStore {
	if cfg.Geo.Store.Kind != "valkey" {
		return geo.NewMemoryStore()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return geo.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return geo.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return geo.NewMemoryStore()
	}
	logger.Info("geo valkey store enabled", "addr", cfg.Geo.Store.Addr)
	return geo.NewValkeyStore(client, cfg.Geo.Store.Prefix)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Geo.Store.Addr, "://") {
		return valkey.ParseURL(cfg.Geo.Store.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Geo.Store.Addr}}, nil
}

// provideLocator returns a nil Locator when no provider is configured, which
// puts the forecast region into its unsupported state.
func provideLocator(cfg *config.Config, store geo.PositionStore, logger *slog.Logger) forecast.Locator {
	var provider geo.Provider
	switch cfg.Geo.Provider {
	case "static":
		provider = geo.NewStatic(cfg.Geo.Latitude, cfg.Geo.Longitude)
	case "ipapi":
		provider = geo.NewIPAPI(cfg.Geo.IPAPIURL)
	default:
		logger.Info("geolocation disabled", "provider", cfg.Geo.Provider)
		return nil
	}
	return geo.NewCached(provider, store, logger)
}

func provideViewHandles() *view.Handles {
	return view.New()
}

func provideRecommendController(handles *view.Handles, client *advisorapi.Client, loop *eventloop.Loop, logger *slog.Logger) *recommend.Controller {
	return recommend.NewController(handles.Recommend, client, loop, logger)
}

func provideForecastController(handles *view.Handles, locator forecast.Locator, client *advisorapi.Client, loop *eventloop.Loop, opts outfit.PositionOptions, logger *slog.Logger) *forecast.Controller {
	return forecast.NewController(handles.Forecast, locator, client, loop, opts, logger)
}

func provideSession(loop *eventloop.Loop, handles *view.Handles, rc *recommend.Controller, fc *forecast.Controller, logger *slog.Logger) session.Service {
	return session.NewService(loop, handles, rc, fc, logger)
}
