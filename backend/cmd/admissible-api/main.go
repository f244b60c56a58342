package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	oklogrun "github.com/oklog/run"

	"github.com/admissible-dev/admissible-demo/backend/internal/router"
	"github.com/admissible-dev/admissible-demo/backend/internal/setup"
	"github.com/admissible-dev/admissible-demo/shared/config"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/middleware/metrics"
	"github.com/admissible-dev/admissible-demo/shared/server"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	if err := run(cfg, deps); err != nil {
		logger.Log.Error("api failed", "error", err)
		os.Exit(1)
	}
}

// run returns once the run group stops. It owns deps.Storage and closes it on
// every path.
func run(cfg *config.Config, deps *setup.Dependencies) error {
	defer func() {
		if err := deps.Storage.Cleanup(); err != nil {
			logger.Log.Warn("closing activity store", "error", err)
		}
	}()

	logger.Log.Info("starting api",
		"upstream", cfg.Public.Upstream.BaseURL,
		"activity_driver", cfg.Public.Activity.Driver,
	)

	var g oklogrun.Group
	apiLn, err := server.Add(&g, "api", cfg.Public.API.Addr, router.New(deps))
	if err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	if _, err := server.Add(&g, "api-metrics", cfg.Public.API.MetricsAddr, metrics.Handler()); err != nil {
		if apiLn != nil {
			apiLn.Close()
		}
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	if interval := cfg.Public.Activity.SweepInterval; interval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return deps.Sweeper.Run(ctx, interval)
		}, func(error) {
			cancel()
		})
	}
	server.AddSignalHandler(&g)

	if err := g.Run(); err != nil {
		logger.Log.Info("api stopped", "reason", err)
	}
	return nil
}
