package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flowz-server/internal/adapter/repo"
	"flowz-server/internal/batchgen"
	"flowz-server/internal/http/handlers"
	httpapi "flowz-server/internal/http/httpapi"
	"flowz-server/internal/imagefetch"
	"flowz-server/internal/infra"
	"flowz-server/internal/infra/credentials"
	"flowz-server/internal/infra/geoip"
	appmw "flowz-server/internal/middleware"
	"flowz-server/internal/providers/genai"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	geminiAPIKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if geminiAPIKey == "" {
		credStore := credentials.NewStore(runner)
		keyFromStore, err := credStore.GeminiAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load gemini api key from store")
		} else {
			geminiAPIKey = keyFromStore
		}
	}

	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:     geminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}
	if !geminiClient.HasKey() {
		logger.Warn().Str("model", geminiClient.Model()).Msg("gemini api key missing, batch generation disabled")
	}

	fetcher := imagefetch.NewFetcher(nil)
	fetcher.MaxBytes = cfg.ImageFetchMax

	jobs := repo.NewBatchJobRepository(runner)
	products := repo.NewProductRepository(runner)
	stores := repo.NewStoreRepository(runner)

	orchestrator := batchgen.New(geminiClient, jobs, products, fetcher, logger)

	var countryLookup appmw.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	app := &handlers.App{
		SQL:            runner,
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		Jobs:           jobs,
		Products:       products,
		Stores:         stores,
		Orchestrator:   orchestrator,
		Generator:      geminiClient,
		HeartbeatEvery: cfg.HeartbeatEvery,
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Config:        cfg,
		Logger:        logger,
		CountryLookup: countryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
