package main

import (
	"flag"
	"log/slog"
	"time"

	"github.com/tvoss/image-measure-go/app"
	"github.com/tvoss/image-measure-go/config"
	"github.com/tvoss/image-measure-go/debug"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	application := app.NewApp("Image Measure", 960, 760, cfg, logger, *cfgPath)
	application.Start()
}
