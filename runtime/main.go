package main

import (
	"github.com/harborview-realty/estate_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.JWTService{},
		&services.EmailService{},
		&services.AuthService{},

		&services.RateLimitService{},
		&services.MonitoringService{},

		&services.PropertyService{},
		&services.PostService{},
		&services.ContactService{},
		&services.SettingsService{},
		&services.MediaService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise services")
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service container stopped")
	}
}
