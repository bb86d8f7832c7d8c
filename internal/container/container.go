package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/wanderspark-api/app/db"
	appMiddleware "github.com/FACorreiaa/wanderspark-api/app/middleware"
	"github.com/FACorreiaa/wanderspark-api/config"
	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
	"github.com/FACorreiaa/wanderspark-api/internal/api/itinerary"
	llmInteraction "github.com/FACorreiaa/wanderspark-api/internal/api/llm_interaction"
	"github.com/FACorreiaa/wanderspark-api/internal/api/packing"
	"github.com/FACorreiaa/wanderspark-api/internal/api/suggestions"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	Pool               *pgxpool.Pool
	RateLimiter        *appMiddleware.RateLimiter
	SuggestionsHandler *suggestions.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
	PackingHandler     *packing.HandlerImpl

	cache suggestions.Cache
}

// NewContainer builds the dependency graph. Postgres is optional: without a
// configured host, model interactions are not persisted.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	recorder, err := c.initRecorder(ctx)
	if err != nil {
		return nil, err
	}

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Gemini)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	generator := generativeAI.NewGeminiGenerator(aiClient, recorder, generativeAI.GeneratorOptions{
		Temperature:   cfg.Gemini.Temperature,
		Timeout:       cfg.Gemini.Timeout,
		MaxToolRounds: cfg.Gemini.MaxToolRounds,
	}, logger)

	cache, err := suggestions.NewCache(cfg.Suggestions.Cache)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize suggestions cache: %w", err)
	}
	c.cache = cache

	provider := suggestions.NewDummyProvider(logger)
	suggestionsService := suggestions.NewServiceImpl(provider, provider, cache, logger)
	itineraryService := itinerary.NewServiceImpl(generator, suggestionsService, logger)
	packingService := packing.NewServiceImpl(generator, logger)

	c.SuggestionsHandler = suggestions.NewHandlerImpl(suggestionsService, logger)
	c.ItineraryHandler = itinerary.NewHandlerImpl(itineraryService, logger)
	c.PackingHandler = packing.NewHandlerImpl(packingService, logger)
	c.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
	if err := c.RateLimiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
		c.Close()
		return nil, fmt.Errorf("rate limit config: %w", err)
	}

	return c, nil
}

func (c *Container) initRecorder(ctx context.Context) (generativeAI.InteractionRecorder, error) {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if errors.Is(err, database.ErrNotConfigured) {
		c.Logger.Warn("Postgres not configured, llm interactions will not be persisted")
		return llmInteraction.NoopRecorder{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Pool = pool

	if !database.WaitForDB(ctx, pool, c.Logger) {
		pool.Close()
		c.Pool = nil
		return nil, errors.New("database not ready after waiting")
	}
	return llmInteraction.NewPostgresLlmInteractionRepo(pool, c.Logger), nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("Failed to close suggestions cache", slog.Any("error", err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
