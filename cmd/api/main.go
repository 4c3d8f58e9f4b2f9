package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ganpati/internal/donation"
	"ganpati/internal/http/handlers"
	httpapi "ganpati/internal/http/httpapi"
	"ganpati/internal/infra"
	"ganpati/internal/infra/geoip"
	"ganpati/internal/web"
)

func main() {
	// Load .env when present
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
	}
	defer resolver.Close()

	svc := donation.NewService(donation.Options{Delay: cfg.DonationDelay})
	app := handlers.NewApp(logger, svc)

	ui, err := web.NewHandler(web.Options{
		Endpoint:   cfg.DonateEndpointURL,
		HTTPClient: &http.Client{Timeout: cfg.SubmitTimeout},
		Location:   cfg.ReceiptLocation,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build web handler")
	}

	router := httpapi.NewRouter(app, ui, httpapi.OptionsFromConfig(cfg, resolver.Lookup()))
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
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
