package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thep200/github-harvester/cfg"
	"github.com/thep200/github-harvester/internal/harvester"
	"github.com/thep200/github-harvester/internal/model"
	"github.com/thep200/github-harvester/pkg/db"
	"github.com/thep200/github-harvester/pkg/log"
)

func newLogger(format string) log.Logger {
	if format == "json" {
		logger, _ := log.NewZlgLogger()
		return logger
	}
	logger, _ := log.NewCslLogger()
	return logger
}

func main() {
	version := flag.String("version", "v1", "Harvester version to run (v1: direct db, v2: kafka)")
	logFormat := flag.String("log", "console", "Log format (console, json)")
	flag.Parse()

	ctx := context.Background()
	logger := newLogger(*logFormat)

	// loader, _ := cfg.NewMockLoader()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Thiếu credential hoặc thông tin kết nối thì dừng ngay, trước khi có
	// bất kỳ hoạt động mạng nào
	if err := config.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration: %v", err)
		os.Exit(1)
	}

	pg, _ := db.NewPostgres(config)
	repoMd, _ := model.NewRepo(config, logger, pg)

	// Migrate database
	if *version == "v1" {
		if err := pg.Migrate(repoMd); err != nil {
			logger.Error(ctx, "Failed to migrate database: %v", err)
			os.Exit(1)
		}
	}

	hv, err := harvester.Factory(*version, logger, config, pg)
	if err != nil {
		logger.Error(ctx, "Failed to create harvester: %v", err)
		os.Exit(1)
	}

	//
	logger.Info(ctx, "Starting GitHub repository harvester (%s)", *version)
	if hv.Harvest() {
		logger.Info(ctx, "Successfully!")
	} else {
		logger.Error(ctx, "Failed!")
		os.Exit(1)
	}
}
