package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"silly-roads/internal/config"
	"silly-roads/internal/game"
	"silly-roads/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults are used when omitted)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	g, err := game.New(cfg, logger.Log)
	if err != nil {
		logger.Log.Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Log.Error("game stopped", zap.Error(err))
		os.Exit(1)
	}
}
