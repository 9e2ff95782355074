//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-assistant/internal/bootstrap"
	"github.com/yanqian/outfit-assistant/internal/infra/config"
	httpiface "github.com/yanqian/outfit-assistant/internal/interface/http"
	"github.com/yanqian/outfit-assistant/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLoop,
		provideAdvisorClient,
		providePositionOptions,
		providePositionStore,
		provideLocator,
		provideViewHandles,
		provideRecommendController,
		provideForecastController,
		provideSession,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
