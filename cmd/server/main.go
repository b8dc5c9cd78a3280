package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-account-service/internal/config"     // Internal config loader
	"github.com/iliyamo/user-account-service/internal/database"   // MySQL pool + schema sync
	"github.com/iliyamo/user-account-service/internal/handler"    // HTTP handlers
	"github.com/iliyamo/user-account-service/internal/repository" // Data access layer
	"github.com/iliyamo/user-account-service/internal/router"     // Internal router setup
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBConnTimeout)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Schema sync is required; the optional init script is best-effort and
	// its failures are logged and swallowed.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: schema sync failed: %v", err)
	}
	database.RunInitScript(ctx, db, cfg.DBInitScript)
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; caching disables itself

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	likes := repository.NewPlaceLikeRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	userHandler := handler.NewUserHandler(cfg, users, tokens, likes)
	pictureHandler := handler.NewPictureHandler(cfg, users)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterUsers(e, userHandler, pictureHandler, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
