package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/harborview-realty/estate_api/importer/wpsync"
	"github.com/harborview-realty/estate_api/services"
	"github.com/harborview-realty/estate_api/services/repositories"
)

func main() {
	mode := flag.String("mode", "import", "import or patch")
	baseURL := flag.String("base", wpsync.DefaultBaseURL, "remote catalog API base URL")
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

	client := wpsync.NewClient(*baseURL)
	repo := repositories.NewPropertyRepository(db)

	switch *mode {
	case "import":
		summary, err := wpsync.NewImporter(client, repo).Run()
		if err != nil {
			log.Fatal().Err(err).Msg("Import failed")
		}
		log.Info().
			Int("imported", summary.Imported).
			Int("skipped", summary.Skipped).
			Int("errors", summary.Errors).
			Msg("Import complete")
	case "patch":
		summary, err := wpsync.NewPatcher(client, repo).Run()
		if err != nil {
			log.Fatal().Err(err).Msg("Patch failed")
		}
		log.Info().
			Int("patched", summary.Patched).
			Int("no_images", summary.NoImages).
			Int("errors", summary.Errors).
			Msg("Patch complete")
	default:
		log.Fatal().Str("mode", *mode).Msg("Unknown mode")
	}

	flushListingCache()

	os.Exit(0)
}

// flushListingCache drops cached property listings so the API serves the
// freshly synced data. Best effort: a missing Redis only costs cache TTL.
func flushListingCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	iter := client.Scan(ctx, 0, "properties:list:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to flush listing cache")
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush listing cache")
	}
}
