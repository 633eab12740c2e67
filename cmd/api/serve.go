package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/server"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/store"
)

func newServeCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recipe catalog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if host != "" {
				cfg.ServerHost = host
			}
			if port != "" {
				cfg.ServerPort = port
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "address to bind (overrides SERVER_HOST)")
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides SERVER_PORT)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	deps := router.Dependencies{}

	if cfg.JWTSecret != "" {
		deps.TokenValidator = service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
		log.Println("Bearer token auth enabled for mutating recipe routes")
	} else {
		log.Println("Warning: JWT_SECRET not set, recipe routes are unauthenticated")
	}

	if cfg.RedisEnabled() && cfg.CreateLimitPerHour > 0 {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		deps.CreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.CreateLimitPerHour)
		log.Printf("Recipe creation limited to %d per hour", cfg.CreateLimitPerHour)
	}

	var uploader service.ImageUploader
	if cfg.S3BucketName != "" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		uploader = service.NewS3ImageUploader(s3Config)
		log.Printf("Recipe images stored in s3://%s", cfg.S3BucketName)
	}

	deps.RecipeService = service.NewRecipeService(store.New(), uploader)
	srv := server.New(cfg, deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
