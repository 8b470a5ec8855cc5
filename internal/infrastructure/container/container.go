// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/application/completion"
	"github.com/smartdine/v2/internal/application/recommendation"
	"github.com/smartdine/v2/internal/infrastructure/ai"
	"github.com/smartdine/v2/internal/infrastructure/config"
	"github.com/smartdine/v2/internal/infrastructure/http/handlers"
	"github.com/smartdine/v2/internal/infrastructure/http/server"
	"github.com/smartdine/v2/internal/infrastructure/persistence/memory"
	"github.com/smartdine/v2/internal/ports/inbound"
	"github.com/smartdine/v2/internal/ports/outbound"
	"github.com/smartdine/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CompletionModule,
	MenuModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// CompletionModule provides the completion backend, usage tracking and
// the fail-soft generator. Backend construction fails fast when the
// selected variant has no credential.
var CompletionModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CompletionClient, error) {
		return ai.NewCompletionClient(cfg.AI, log)
	},
	completion.NewUsageTracker,
	func(client outbound.CompletionClient, cfg *config.Config, usage *completion.UsageTracker, log *zap.Logger) *completion.Generator {
		return completion.NewGenerator(client, cfg.AI.Model, usage, log,
			completion.WithDefaults(outbound.ChatParams{
				MaxTokens:   cfg.AI.MaxTokens,
				Temperature: cfg.AI.Temperature,
				TopP:        cfg.AI.TopP,
			}),
			completion.WithRateLimit(cfg.AI.RequestsPerSecond, 1),
		)
	},
)

// MenuModule provides the menu source
var MenuModule = fx.Provide(
	func(log *zap.Logger) outbound.MenuSource {
		log.Info("Using in-memory menu store")
		return memory.NewMenuStore()
	},
)

// ServiceModule provides the recommendation core
var ServiceModule = fx.Provide(
	recommendation.NewRanker,
	fx.Annotate(
		func(ranker *recommendation.Ranker, menus outbound.MenuSource, log *zap.Logger) *recommendation.Service {
			return recommendation.NewService(ranker, menus, log)
		},
		fx.As(new(inbound.RecommendationService)),
	),
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	handlers.NewAPI,
	server.NewServer,
)

// LifecycleModule wires server start/stop into the fx lifecycle
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Stop(ctx)
			},
		})
	},
)
