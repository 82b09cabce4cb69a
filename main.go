package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/config"
	"torn_flight_board/internal/deployment"
	"torn_flight_board/internal/flightlog"
	"torn_flight_board/internal/processing"
	"torn_flight_board/internal/sheets"
	"torn_flight_board/internal/torn"
	"torn_flight_board/internal/web"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	interval := flag.Duration("interval", config.DefaultRefreshInterval, "Interval between flight log refreshes (e.g., 30s, 1m)")
	runOnce := flag.Bool("once", false, "Refresh and publish once, then exit (no HTTP server)")
	flag.Parse()

	if *interval <= 0 {
		log.Fatal().Dur("interval", *interval).Msg("Refresh interval must be positive")
	}

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Msg("Starting Torn flight board")

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.UpdateInterval = *interval

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := processing.NewAPICallTracker()
	flightLogClient := flightlog.NewClient(cfg.FlightLogURL)

	var tornClient torn.TornAPI
	var resolver processing.NameResolverInterface
	if cfg.ResolvesNames() {
		tornClient = torn.NewClient(cfg.TornAPIKey)
		resolver = processing.NewNameResolver(tornClient, tracker, processing.NameResolverConfig{
			TTL:         cfg.NameCacheTTL,
			Concurrency: cfg.NameLookupConcurrency,
		})
	} else {
		log.Warn().Msg("TORN_API_KEY not set, player names will not be resolved")
	}

	var publishers []processing.BoardPublisher
	if cfg.PublishesSheet() {
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		publishers = append(publishers, sheets.NewBoardManager(sheetsClient, cfg.SpreadsheetID, cfg.BoardSheetName))
	}
	var deployer *deployment.SSHDeployer
	if cfg.PublishesSnapshot() {
		deployer = deployment.NewSSHDeployer(cfg.DeployURL, cfg.DeployKeyFile, cfg.DeployKnownHosts)
		publishers = append(publishers, deployer)
	}

	processor := processing.NewBoardProcessor(flightLogClient, resolver, tracker, cfg.Location, publishers...)

	refresh := func() {
		log.Debug().Msg("Starting flight board refresh")

		flightLogClient.ResetAPICallCount()
		if tornClient != nil {
			tornClient.ResetAPICallCount()
		}

		// failures are logged by the processor and surfaced on the board
		_ = processor.Refresh(ctx)

		event := log.Info().Int64("flight_log_calls", flightLogClient.GetAPICallCount())
		if tornClient != nil {
			event = event.Int64("torn_api_calls", tornClient.GetAPICallCount())
		}
		event.Msg("Completed flight board refresh")

		tracker.LogSessionSummary()
		tracker.ResetSession()
	}

	log.Info().Msg("Running initial refresh")
	refresh()

	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial refresh")
		if deployer != nil {
			_ = deployer.Disconnect()
		}
		return
	}

	timeouts := config.DefaultHTTPServerTimeouts
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      web.NewRouter(web.NewServer(processor), cfg.AllowedOrigins),
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
		IdleTimeout:  timeouts.Idle,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
			os.Exit(1)
		}
	}()

	log.Info().
		Dur("interval", cfg.UpdateInterval).
		Msg("Starting scheduled refreshes")

	ticker := time.NewTicker(cfg.UpdateInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			refresh()
		}
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if deployer != nil {
		_ = deployer.Disconnect()
	}
	log.Info().Msg("Stopped")
}
