package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"spherewalk/internal/config"
	"spherewalk/internal/game"
	"spherewalk/internal/logger"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", "config.yaml", "path to the settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	loadErr := err
	if err != nil {
		cfg = config.Default()
	}
	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if loadErr != nil {
		log.Warn("using default settings", "err", loadErr)
	}

	g := game.New(cfg)
	if err := g.Run(); err != nil {
		log.Error("demo stopped", "err", err)
		os.Exit(1)
	}
}
