package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinscribe/clinscribe/internal/config"
	"github.com/clinscribe/clinscribe/internal/domain/extraction"
	"github.com/clinscribe/clinscribe/internal/domain/pipeline"
	"github.com/clinscribe/clinscribe/internal/domain/terminology"
	"github.com/clinscribe/clinscribe/internal/platform/auth"
	"github.com/clinscribe/clinscribe/internal/platform/db"
	"github.com/clinscribe/clinscribe/internal/platform/middleware"
	"github.com/clinscribe/clinscribe/internal/platform/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinscribe-server",
		Short: "Clinical note structuring API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(vocabCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func vocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the terminology vocabulary",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print vocabulary index sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dir = cfg.DataDir
			}

			store, err := terminology.Load(dir)
			if err != nil {
				return fmt.Errorf("load vocabulary: %w", err)
			}

			stats := store.Stats()
			fmt.Printf("%-12s %s\n", "INDEX", "TERMS")
			fmt.Printf("%-12s %d\n", "condition", stats.Condition)
			fmt.Printf("%-12s %d\n", "icd10", stats.ConditionSecondary)
			fmt.Printf("%-12s %d\n", "medication", stats.Medication)
			fmt.Printf("%-12s %d\n", "lab", stats.Lab)
			return nil
		},
	}
	statsCmd.Flags().String("dir", "", "Path to vocabulary CSV directory (defaults to DATA_DIR)")
	cmd.AddCommand(statsCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	// Vocabulary
	store, err := terminology.Load(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to load vocabulary")
	}
	stats := store.Stats()
	logger.Info().
		Int("conditions", stats.Condition).
		Int("icd10", stats.ConditionSecondary).
		Int("medications", stats.Medication).
		Int("labs", stats.Lab).
		Msg("vocabulary loaded")

	// Semantic search provider
	var searcher terminology.SemanticSearcher
	var pool *pgxpool.Pool
	switch cfg.SemanticProvider {
	case config.SemanticHTTP:
		searcher = terminology.NewHTTPSearcher(cfg.SemanticURL, cfg.SemanticTimeout())
		logger.Info().Str("url", cfg.SemanticURL).Msg("semantic search via HTTP")
	case config.SemanticPostgres:
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		searcher = terminology.NewPGSearcher(pool)
		logger.Info().Msg("semantic search via postgres")
	default:
		logger.Info().Msg("semantic search disabled")
	}

	resolver := terminology.NewResolver(store, searcher, cfg.SemanticTopK, cfg.SemanticTimeout(), logger)

	// LLM client
	llm := extraction.NewClient(extraction.ClientConfig{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		SummaryModel: cfg.OpenAIModelSummary,
		ExtractModel: cfg.OpenAIModelExtract,
	}, logger)

	// Pipeline
	assembler := pipeline.NewAssembler(resolver)
	svc := pipeline.NewService(llm, llm, assembler, logger)
	handler := pipeline.NewHandler(svc)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	metrics := telemetry.NewRegistry("clinscribe")
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(telemetry.Middleware(metrics))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(cfg.AuthJWTSecret))
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}
	e.GET("/metrics", metrics.Handler())

	// API routes
	apiV1 := e.Group("/api/v1")
	handler.RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	return nil
}
