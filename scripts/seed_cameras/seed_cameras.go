package main

import (
	"context"
	"fmt"
	"os"

	"github.com/devsparksuporte-web/PotencialCameras/config"
	"github.com/devsparksuporte-web/PotencialCameras/database"
	"github.com/devsparksuporte-web/PotencialCameras/logger"
	"github.com/devsparksuporte-web/PotencialCameras/models"
	"github.com/devsparksuporte-web/PotencialCameras/validation"

	"github.com/joho/godotenv"
)

// demoFleet is inserted oldest first, so the first entry ends up last in
// the newest-first listing.
var demoFleet = []models.CameraFormData{
	{Name: "Entrada Principal", IP: "192.168.10.11", Serial: "HKV-2201-A01", Location: "Entrada", Store: "Loja Centro", Status: models.StatusOnline, ChannelsTotal: 8, ChannelsWorking: 8},
	{Name: "Caixas", IP: "192.168.10.12", Serial: "HKV-2201-A02", Location: "Frente de caixa", Store: "Loja Centro", Status: models.StatusAviso, ChannelsTotal: 4, ChannelsWorking: 3, ChannelsBlackscreen: 1},
	{Name: "Estoque", IP: "192.168.20.11", Serial: "INT-4410-B01", Location: "Deposito", Store: "Loja Norte", Status: models.StatusOffline, ChannelsTotal: 4},
	{Name: "Doca", IP: "192.168.20.12", Serial: "INT-4410-B02", Location: "Recebimento", Store: "Loja Norte", Status: models.StatusOnline, ChannelsTotal: 2, ChannelsWorking: 2},
	{Name: "Estacionamento", IP: "192.168.30.11", Serial: "DAH-0930-C01", Location: "Area externa", Store: "Loja Sul", Status: models.StatusErro, ChannelsTotal: 6, ChannelsWorking: 2, ChannelsBlackscreen: 4},
	{Name: "Corredor", IP: "192.168.30.12", Serial: "DAH-0930-C02", Location: "Corredor central", Store: "Loja Sul", Status: models.StatusReparo, ChannelsTotal: 2},
}

// seed inserts the demo fleet when the table is empty and returns how many
// cameras were created.
func seed(ctx context.Context, gateway database.Gateway) (int, error) {
	existing, err := gateway.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cameras: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, form := range demoFleet {
		if err := validation.ValidateForm(form); err != nil {
			return i, fmt.Errorf("demo camera %q: %w", form.Name, err)
		}
		if _, err := gateway.Insert(ctx, form); err != nil {
			return i, fmt.Errorf("insert %q: %w", form.Name, err)
		}
	}
	return len(demoFleet), nil
}

func main() {
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

	created, err := seed(context.Background(), database.NewGormGateway(db))
	if err != nil {
		logger.Fatal().Err(err).Int("created", created).Msg("Failed to seed cameras")
	}

	if created == 0 {
		fmt.Println("Cameras table is not empty, nothing to seed")
		return
	}
	fmt.Printf("Seeded %d demo cameras\n", created)
}
