// Command seedadmin creates the first staff user so the API has a login to
// bootstrap from. Idempotent: if the email already exists, it does nothing.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/mathews-augusto-alves/library-api/internal/config"
	"github.com/mathews-augusto-alves/library-api/internal/infra"
	"github.com/mathews-augusto-alves/library-api/internal/repository"
	"github.com/mathews-augusto-alves/library-api/internal/service"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", "admin@library.local", "login email")
	password := flag.String("password", "", "initial password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, cfg)
	users := usecase.NewUserUseCase(userSvc, authSvc)

	ctx := context.Background()
	existing, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("lookup failed")
	}
	if existing != nil {
		log.Info().Str("email", *email).Msg("user already exists, nothing to do")
		return
	}

	user, err := users.Register(ctx, *name, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user")
	}
	log.Info().Uint("id", user.ID).Str("email", user.Email).Msg("staff user created")
}
