package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-fit-service/internal/app"
	"career-fit-service/internal/config"
	"career-fit-service/internal/infra/memory"
	"career-fit-service/internal/infra/postgres"
	redisinfra "career-fit-service/internal/infra/redis"
	transport "career-fit-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	banks, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	var loader memory.AssessmentLoader = banks
	var lister transport.AssessmentLister = banks

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		pg := postgres.NewAssessmentLoader(pool)
		loader, lister = pg, pg
		logger.Info("reading assessments from postgres")
	}

	redisClient := newRedisClient(cfg)
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
	assessmentTTL := config.TTLDuration(cfg.Assessment.TTL, 10*time.Minute)

	var assessments app.AssessmentRepository
	var store app.SessionRepository
	if redisClient != nil {
		defer redisClient.Close()
		assessments = redisinfra.NewAssessmentRepository(redisClient, loader, assessmentTTL, logger)
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		assessments = memory.NewAssessmentRepository(loader, assessmentTTL)
		store = memory.NewSessionStore()
	}

	service := app.NewAssessmentService(store, assessments, logger)
	wsHandler := transport.NewWSHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	transport.NewCatalogHandler(lister, assessments, logger).Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting career-fit service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
