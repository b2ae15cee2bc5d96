// Package main provides a one-shot loader for the district catalog.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/config"
	"github.com/travelcast/travelcast/internal/database"
	"github.com/travelcast/travelcast/internal/district"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "travelcast-loaddistricts").
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	file := flag.String("file", cfg.DistrictsFile, "path to the district catalog JSON")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, database.ConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to open catalog file")
	}
	defer f.Close()

	repo := district.NewPostgresRepository(pool)
	created, updated, err := district.LoadCatalog(ctx, repo, f, log)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	log.Info().
		Str("file", *file).
		Int("created", created).
		Int("updated", updated).
		Msg("district catalog loaded")
}
