package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow/internal/config"
	"github.com/pulmotools/ildflow/internal/relay"
	httpAdapter "github.com/pulmotools/ildflow/pkg/adapters/http"
	"github.com/pulmotools/ildflow/pkg/adapters/memory"
	redisStore "github.com/pulmotools/ildflow/pkg/adapters/redis"
	"github.com/pulmotools/ildflow/pkg/persistence/middleware"
	"github.com/pulmotools/ildflow/pkg/ports"
	"github.com/pulmotools/ildflow/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the JSON API: decision graph navigation, clinical resolvers, and
the streaming AI generation relay. Session state is kept in memory unless
REDIS_URL points at a Redis instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		logger := newLogger(cmd, true)

		graphFiles, _ := cmd.Flags().GetStringSlice("graph")
		reg, err := buildRegistry(graphFiles)
		if err != nil {
			return err
		}

		var store ports.StateStore = memory.NewStore()
		var sessionOpts []session.Option
		if cfg.RedisURL != "" {
			redisOpts, err := backend.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			client := backend.NewClient(redisOpts)
			rs := redisStore.NewFromClient(client, redisStore.WithTTL(24*time.Hour))
			defer rs.Close()
			store = rs
			sessionOpts = append(sessionOpts, session.WithLocker(redisStore.NewLocker(client, "ildflow:")))
			logger.Info("using redis session store")
		}
		if len(cfg.StateEncryptionKey) > 0 {
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
				ActiveKey: cfg.StateEncryptionKey,
			})(store)
			logger.Info("session state encryption enabled")
		}
		sessions := session.NewManager(store, append(sessionOpts, session.WithLogger(logger))...)

		var gen relay.Generator
		if cfg.GeminiAPIKey != "" {
			gen = relay.NewGemini(cfg.GeminiAPIKey,
				relay.WithModel(cfg.GeminiModel),
				relay.WithBaseURL(cfg.GeminiBaseURL),
				relay.WithLogger(logger),
			)
		} else {
			logger.Warn("GEMINI_API_KEY not set, generation endpoint will report a configuration error")
		}
		generate := relay.NewHandler(gen, logger)

		handler, err := httpAdapter.NewHandler(reg, sessions, generate, logger)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr, "graphs", len(reg.List()))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutdown signal received", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringSlice("graph", nil, "Additional YAML graph definitions to serve")
}
