package main

import (
	"log"

	"carbook.dev/carbook/internal/bootstrap"
	"carbook.dev/carbook/internal/config"
	"carbook.dev/carbook/internal/server"
	"carbook.dev/carbook/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedTaxonomy(db); err != nil {
		log.Fatalf("failed to seed vehicle taxonomy: %v", err)
	}

	// Redis is optional: without it rate limiting and live notifications
	// are disabled, everything else keeps working.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, running without redis")
	}

	srv := server.NewServer(db, redisClient)

	addr := ":" + cfg.Port
	log.Printf("carbook server listening on %s", addr)
	if err := srv.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
