package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/seed/seeders"
	"github.com/harborview-realty/estate_api/services"
)

func main() {
	seedType := flag.String("type", "all", "what to seed: all, admin, settings")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	db, err := gorm.Open(postgres.Open(services.DatabaseDSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(services.Models()...); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		err = mainSeeder.SeedAll()
	case "admin":
		err = mainSeeder.SeedAdminOnly()
	case "settings":
		err = mainSeeder.SeedSettingsOnly()
	default:
		log.Fatal().Str("type", *seedType).Msg("Unknown seed type, use all, admin or settings")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Str("type", *seedType).Msg("Seeding completed")
	os.Exit(0)
}
