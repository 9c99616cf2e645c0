package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/coc"
	"coc_war_stats/internal/deployment"
	"coc_war_stats/internal/processing"
	"coc_war_stats/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	interval := flag.Duration("interval", 5*time.Minute, "Interval between checks while no war is in progress (e.g., 5m, 10m)")
	runOnce := flag.Bool("once", false, "Run once and exit (don't start scheduler)")
	flag.Parse()

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Msg("Starting CoC War Stats application")

	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.UpdateInterval = *interval

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize clients
	clashClient := coc.NewClient(config.APIToken, config.APIBaseURL)
	tracker := processing.NewAPICallTracker()
	cachedClient := processing.NewCachedWarClient(clashClient, tracker)

	var sheetsClient processing.SheetsClientInterface
	if config.SheetsEnabled() {
		client, err := sheets.NewClient(ctx, config.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		sheetsClient = client
	} else {
		log.Info().Msg("SPREADSHEET_ID not set - sheet export disabled")
	}

	var deployer processing.DeployerInterface
	if config.DeployEnabled() {
		sshDeployer := deployment.NewSSHDeployer(config.DeployURL, config.DeployKeyFile, config.KnownHostsFile)
		defer func() {
			if err := sshDeployer.Disconnect(); err != nil {
				log.Warn().Err(err).Msg("Failed to close SSH connection")
			}
		}()
		deployer = sshDeployer
	}

	warProcessor := processing.NewWarProcessorWithCache(cachedClient, sheetsClient, deployer, config)

	// processWars runs one cycle and returns how long to wait before the next one
	processWars := func() time.Duration {
		log.Debug().Msg("Starting war processing cycle")

		// Reset API call counter at the start of each cycle
		clashClient.ResetAPICallCount()

		result, err := warProcessor.ProcessCycle(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to process war cycle")
		}

		cacheStats := cachedClient.GetCacheStats()
		log.Info().
			Int64("api_calls", clashClient.GetAPICallCount()).
			Int("cached_wars", cacheStats.TotalEntries).
			Int64("cache_hits", cacheStats.Hits).
			Msg("Completed war processing cycle")

		if result == nil || result.NextCheck <= 0 {
			return config.UpdateInterval
		}
		return result.NextCheck
	}

	log.Info().Msg("Running initial war processing")
	delay := processWars()

	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial processing")
		return
	}

	log.Info().
		Dur("interval", *interval).
		Msg("Starting scheduled war processing")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		log.Debug().Dur("next_check", delay).Msg("Waiting for next war check")
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		case <-timer.C:
			delay = processWars()
			timer.Reset(delay)
		}
	}
}
