package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/adrg/xdg"

	"github.com/Ryder-MHumble/evolabeler-go/app"
	"github.com/Ryder-MHumble/evolabeler-go/config"
	"github.com/Ryder-MHumble/evolabeler-go/debug"
)

func main() {
	cfgPath, err := xdg.ConfigFile("evolabeler/config.json")
	if err != nil {
		cfgPath = "config.json"
	}
	cfg, cfgErr := config.Load(cfgPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stdout, level)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", cfgPath, "error", cfgErr)
	}

	if cfg.Debug {
		debug.StartMemLogger(2*time.Second, logger)
		debug.StartGoroutineLogger(time.Second, logger)
	}

	container := app.BuildContainer(cfg, logger)
	application := app.NewApp("EvoLabeler", 1280, 860, container)
	application.Start()
}
