// cmd/dbtools/seedadmin/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/api/auth"
	"github.com/codr1/CopticLeague/internal/api/authz"
	"github.com/codr1/CopticLeague/internal/config"
	"github.com/codr1/CopticLeague/internal/db"
	dbgen "github.com/codr1/CopticLeague/internal/db/generated"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		configPath = flag.String("config", "config.yaml", "Path to config.yaml")
		email      = flag.String("email", "", "Admin email address")
		firstName  = flag.String("first-name", "League", "Admin first name")
		lastName   = flag.String("last-name", "Admin", "Admin last name")
	)
	flag.Parse()

	address := strings.ToLower(strings.TrimSpace(*email))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if address == "" {
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

	ctx := context.Background()
	existing, err := database.Queries.GetUserByEmail(ctx, address)
	switch {
	case err == nil:
		if _, err := database.Queries.UpdateUserRole(ctx, dbgen.UpdateUserRoleParams{
			Role: string(authz.RoleAdmin),
			ID:   existing.ID,
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to promote user")
		}
		log.Info().Int64("user_id", existing.ID).Str("email", address).Msg("Existing user promoted to admin")
		return
	case !errors.Is(err, sql.ErrNoRows):
		log.Fatal().Err(err).Msg("Failed to look up user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("SEED_ADMIN_PASSWORD is required for a new admin")
	}
	user, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        address,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(*firstName),
		LastName:     strings.TrimSpace(*lastName),
		Role:         string(authz.RoleAdmin),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}
	log.Info().Int64("user_id", user.ID).Str("email", address).Msg("Admin created")
}
