package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nyaya-backend/aiclient"
	"nyaya-backend/config"
	"nyaya-backend/handlers"
	"nyaya-backend/logger"
	"nyaya-backend/middleware"
	"nyaya-backend/repository"
	"nyaya-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file from the working directory or project root
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "nyaya-api"})
	log := logger.Named("server")
	if !foundEnv {
		log.Warn().Msg("no .env file found, using environment variables")
	}

	gin.SetMode(cfg.GinMode)

	// Initialize database connection
	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Postgres")
	}
	defer db.Close()

	// Initialize repositories
	sectionRepo := repository.NewLegalSectionRepository(db)

	// Initialize the semantic-search client
	aiClient := aiclient.NewClient(cfg.AIServiceURL, aiclient.WithTimeout(cfg.AISearchTimeout))

	// Initialize services
	lawService := service.NewLawService(
		service.WithSectionStore(sectionRepo),
		service.WithSemanticSearcher(aiClient),
	)

	// Initialize handlers
	lawHandler := handlers.NewLawHandler(lawService, sectionRepo)

	// Setup Gin router
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: middleware.DefaultSlow}),
		middleware.Recovery(),
	)
	lawHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           withCORS(cfg.CORSAllowedOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("ai_service_url", cfg.AIServiceURL).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Named("server").Info().Msg("Postgres connection established")
	return pool, nil
}

// withCORS mirrors the permissive CORS the frontend relies on
func withCORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})
}
