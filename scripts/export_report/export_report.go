package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/config"
	"github.com/devsparksuporte-web/PotencialCameras/dashboard"
	"github.com/devsparksuporte-web/PotencialCameras/database"
	"github.com/devsparksuporte-web/PotencialCameras/logger"
	"github.com/devsparksuporte-web/PotencialCameras/services"

	"github.com/joho/godotenv"
)

type options struct {
	dir    string
	quick  string
	status string
	store  string
	query  string
}

func (o options) filter() (dashboard.Filter, error) {
	quick, err := dashboard.ParseQuickFilter(o.quick)
	if err != nil {
		return dashboard.Filter{}, err
	}
	status, err := dashboard.ParseStatusFilter(o.status)
	if err != nil {
		return dashboard.Filter{}, err
	}
	return dashboard.Filter{Quick: quick, Status: status, Store: o.store, Query: o.query}, nil
}

// writeReport exports the filtered cameras to a dated CSV file in dir and
// returns the file path and the number of cameras written.
func writeReport(ctx context.Context, service *services.CameraService, opts options, now time.Time) (string, int, error) {
	filter, err := opts.filter()
	if err != nil {
		return "", 0, err
	}

	rows, err := service.Export(ctx, filter)
	if err != nil {
		return "", 0, err
	}

	path := filepath.Join(opts.dir, dashboard.ExportFilename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := dashboard.WriteCSV(f, rows); err != nil {
		return "", 0, fmt.Errorf("write report: %w", err)
	}
	return path, len(rows) - 1, f.Close()
}

func main() {
	var opts options
	flag.StringVar(&opts.dir, "dir", ".", "output directory")
	flag.StringVar(&opts.quick, "quick", "all", "quick filter (all, online, offline, aviso, erro, reparo, working, blackscreen, total)")
	flag.StringVar(&opts.status, "status", "all", "status filter")
	flag.StringVar(&opts.store, "store", dashboard.AllStores, "store name")
	flag.StringVar(&opts.query, "q", "", "search text")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	service := services.NewCameraService(database.NewGormGateway(db))
	path, count, err := writeReport(context.Background(), service, opts, time.Now())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to export cameras")
	}

	fmt.Printf("Exported %d cameras to %s\n", count, path)
}
