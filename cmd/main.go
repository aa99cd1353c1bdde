package main

import (
	"log"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	redisstore "github.com/davidbz/martin/internal/cache/redis"
	"github.com/davidbz/martin/internal/config"
	"github.com/davidbz/martin/internal/domain"
	"github.com/davidbz/martin/internal/http"
	"github.com/davidbz/martin/internal/http/middleware"
	"github.com/davidbz/martin/internal/observability"
	"github.com/davidbz/martin/internal/provider/grok"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Completion client. An absent API key leaves the client nil and runs
	// the service in demo mode (heuristic analysis only).
	if err := container.Provide(func(cfg *grok.Config, logger *zap.Logger) (domain.CompletionClient, error) {
		if cfg.APIKey == "" {
			logger.Warn("no Grok API key configured - running in demo mode")
			return nil, nil
		}

		client, err := grok.NewClient(*cfg)
		if err != nil {
			return nil, err
		}

		logger.Info("Grok client initialized", zap.String("model", cfg.Model))
		return client, nil
	}); err != nil {
		log.Fatalf("Failed to provide Grok client: %v", err)
	}

	// Result cache. An empty Redis address disables caching.
	if err := container.Provide(func(cfg *config.RedisConfig, logger *zap.Logger) domain.ResultCache {
		if cfg.Addr == "" {
			logger.Warn("no Redis address configured - caching disabled")
			return nil
		}

		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})

		logger.Info("Redis result cache initialized", zap.String("addr", cfg.Addr))
		return redisstore.NewStore(client)
	}); err != nil {
		log.Fatalf("Failed to provide result cache: %v", err)
	}

	// Analysis engine
	if err := container.Provide(domain.NewHeuristicAnalyzer); err != nil {
		log.Fatalf("Failed to provide heuristic analyzer: %v", err)
	}
	if err := container.Provide(func() domain.InstructionBuilder {
		return domain.NewInstructionBuilder()
	}); err != nil {
		log.Fatalf("Failed to provide instruction builder: %v", err)
	}
	if err := container.Provide(func(cfg *config.AnalysisConfig) domain.ReplyParser {
		if cfg.ReplySchema == "rewrite" {
			return domain.NewRewriteParser()
		}
		return domain.NewSchemaParser()
	}); err != nil {
		log.Fatalf("Failed to provide reply parser: %v", err)
	}
	if err := container.Provide(domain.NewAnalyzerService); err != nil {
		log.Fatalf("Failed to provide analyzer service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
