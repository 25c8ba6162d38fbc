package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	authrepository "astrodesk/internal/auth/repository"
	authservice "astrodesk/internal/auth/service"
	mongoMigration "astrodesk/internal/migrations/mongo"
	"astrodesk/pkg/config"
	"astrodesk/pkg/token"
)

const JobName = "mongo-migration"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	seedAdmin(ctx, cfg)
	fmt.Println("Migration completed successfully.")
}

// seedAdmin ensures the configured admin account exists. Safe to run on
// every deploy: an existing account is left untouched.
func seedAdmin(ctx context.Context, cfg *config.Config) {
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	adminRepo := authrepository.NewMongoAdminRepository(cfg)
	auth := authservice.NewAuthService(adminRepo, tokens, cfg)

	created, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		cfg.Log.Fatal("Failed to seed admin account", "error", err)
	}
	if created {
		cfg.Log.Info("Admin account seeded", "username", cfg.AdminUsername)
	} else {
		cfg.Log.Info("Admin account already present", "username", cfg.AdminUsername)
	}
}
