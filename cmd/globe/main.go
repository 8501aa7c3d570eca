// Package main is the interactive globe viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/app"
	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/logger"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var flags config.Flags
	flags.Register(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.Load(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Globe ===")

	cat, err := catalog.Load(cfg.Data.Entities)
	if err != nil {
		logger.Error("entity table", zap.Error(err))
		os.Exit(1)
	}
	p := cat.Progress()
	logger.Info("entities loaded",
		zap.String("path", cfg.Data.Entities),
		zap.Int("count", cat.Len()),
		zap.Int("completed", p.Completed))

	viewer, err := app.New(cfg, cat, logger.Log)
	if err != nil {
		logger.Error("viewer init failed", zap.Error(err))
		os.Exit(1)
	}
	defer viewer.Close()

	if err := viewer.Run(); err != nil {
		logger.Error("viewer stopped", zap.Error(err))
		viewer.Close()
		logger.Sync()
		os.Exit(1)
	}
}
