package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/ai"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/thumbnail"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the template catalog, rendering, live
preview and share endpoints. Storage, the AI assistant and thumbnails are
enabled when DATABASE_URL, GEMINI_API_KEY and THUMBNAILS are set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()
	rn := rendering.NewRenderer(log)

	opts := server.Options{
		Config:   cfg,
		Renderer: rn,
		Limiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:   log,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare schema: %w", err)
		}
		opts.Store = database
	} else {
		log.Warn("DATABASE_URL not set, resume storage disabled")
	}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close() //nolint:errcheck
		opts.Assistant = ai.NewService(client, rn, log)
	} else {
		log.Warn("GEMINI_API_KEY not set, AI assistant disabled")
	}

	if cfg.Thumbnails {
		thumbs := thumbnail.NewService(rn, thumbnail.NewChromeCapturer(cfg.ChromePath), log)
		go func() {
			if err := thumbs.Warm(context.Background()); err != nil {
				log.WithError(err).Warn("thumbnail warm-up failed")
			}
		}()
		opts.Thumbnailer = thumbs
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
