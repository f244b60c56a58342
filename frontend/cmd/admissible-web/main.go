package main

import (
	"flag"
	"os"

	"github.com/admissible-dev/admissible-demo/frontend/internal/router"
	"github.com/admissible-dev/admissible-demo/frontend/internal/setup"
	"github.com/admissible-dev/admissible-demo/frontend/web"
	"github.com/admissible-dev/admissible-demo/shared/config"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/middleware/metrics"
	"github.com/admissible-dev/admissible-demo/shared/server"
	"github.com/oklog/run"
)

func main() {
	configFolder := flag.String("config_folder", "config", "Path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(*configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg, web.FS)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "error", err)
		os.Exit(1)
	}

	var g run.Group
	if _, err := server.Add(&g, "frontend", cfg.Public.Frontend.Addr, router.SetupRouter(deps)); err != nil {
		logger.Log.Error("failed to start frontend server", "error", err)
		os.Exit(1)
	}
	if _, err := server.Add(&g, "frontend-metrics", cfg.Public.Frontend.MetricsAddr, metrics.Handler()); err != nil {
		logger.Log.Error("failed to start metrics server", "error", err)
		os.Exit(1)
	}
	server.AddSignalHandler(&g)

	logger.Log.Info("frontend started", "addr", cfg.Public.Frontend.Addr, "api", cfg.Public.Frontend.APIBaseURL)
	if err := g.Run(); err != nil {
		logger.Log.Info("frontend stopped", "reason", err)
	}
}
