package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"pamoja/internal/cli"
	"pamoja/internal/config"
	"pamoja/internal/ledger"
	applog "pamoja/internal/log"
	"pamoja/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := applog.New(applog.ParseLevel(cfg.LogLevel), "pamoja")

	store := ledger.New()

	// Seed from a file when configured, otherwise load the demo ledger.
	var (
		f   seed.File
		src string
	)
	if cfg.SeedPath != "" {
		loaded, err := seed.Load(cfg.SeedPath)
		if err != nil {
			return err
		}
		f, src = loaded, cfg.SeedPath
	} else {
		f, src = seed.Demo(), "demo"
	}
	counts, err := seed.Apply(store, f)
	if err != nil {
		return fmt.Errorf("seed ledger from %s: %w", src, err)
	}
	logger.WithComponent("seed").Info("ledger seeded",
		"source", src,
		"projects", counts.Projects,
		"donations", counts.Donations,
		"expenditures", counts.Expenditures,
		"users", counts.Users)

	app := &cli.App{Store: store, Log: logger, Cfg: cfg}
	return cli.NewRootCmd(app).Execute()
}
