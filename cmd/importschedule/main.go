// cmd/importschedule/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/config"
	"github.com/codr1/CopticLeague/internal/db"
	"github.com/codr1/CopticLeague/internal/importer"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configPath := flag.String("config", "config.yaml", "Path to config.yaml")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] <schedule.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open schedule file")
	}
	defer file.Close()

	rows, err := importer.ReadRows(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read schedule file")
	}
	log.Info().Int("rows", len(rows)).Str("file", flag.Arg(0)).Msg("Read schedule file")

	summary := importer.Import(context.Background(), database, rows, &log.Logger)
	if summary.Errors > 0 {
		os.Exit(1)
	}
}
