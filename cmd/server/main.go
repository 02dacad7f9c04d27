package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/kitaplik/internal/bootstrap"
	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/internal/config"
	"anoa.com/kitaplik/internal/server"
	"anoa.com/kitaplik/pkg/database"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Options{
		Mode:       cfg.AppEnv,
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal("catalog load failed", "error", err)
	}
	if err := bootstrap.Run(db, cat, log); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	redisClient := connectRedis(cfg.RedisURL, log)

	srv, err := server.NewServer(cfg, db, redisClient, cat, log)
	if err != nil {
		log.Fatal("server setup failed", "error", err)
	}

	go func() {
		if err := srv.Run(":" + cfg.Port); err != nil {
			log.Fatal("server exited with error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// engine then runs without live notifications or marathons.
func connectRedis(url string, log *logger.Logger) *redis.Client {
	if url == "" {
		log.Warn("REDIS_URL not set, running without redis")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, running without redis", "error", err)
		return nil
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, running without redis", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
