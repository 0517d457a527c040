package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/api/rest"
	"github.com/fortuna/hardwood/internal/cache"
	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/store"
)

func getServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := store.NewDatabase(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			log.Println("✓ Connected to database")

			var queryCache *cache.RedisCache
			if cfg.RedisURL != "" {
				queryCache, err = cache.NewRedisCache(cfg.RedisURL)
				if err != nil {
					log.Printf("⚠ Redis unavailable, serving uncached: %v", err)
				} else {
					defer queryCache.Close()
					log.Println("✓ Connected to Redis")
				}
			}

			server := rest.NewServer(cfg.RESTPort, db, queryCache)
			go func() {
				log.Printf("✓ REST API listening on :%s", cfg.RESTPort)
				if err := server.Start(); err != nil {
					log.Printf("REST server error: %v", err)
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			log.Println("Shutting down gracefully...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	}

	return cmd
}
