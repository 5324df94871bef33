// Package bootstrap wires runtime dependencies for the command entrypoints.
package bootstrap

import (
	"fmt"

	"creationity/internal/cache"
	"creationity/internal/config"
	"creationity/internal/database"
	"creationity/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedFixtures bool
}

// InitRuntime connects to DB and Redis and optionally seeds the curated
// starter content into an empty database.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May result in a nil client if Redis is unreachable; the app degrades
	// to uncached operation.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedFixtures {
		if err := seed.SeedFixturesOnly(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed starter content: %w", err)
		}
	}

	return db, r, nil
}
