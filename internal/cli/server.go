package cli

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"yabby-quiz-service/internal/app"
	"yabby-quiz-service/internal/config"
	"yabby-quiz-service/internal/infra/memory"
	infrapg "yabby-quiz-service/internal/infra/postgres"
	infraredis "yabby-quiz-service/internal/infra/redis"
	"yabby-quiz-service/internal/logger"
	"yabby-quiz-service/internal/metrics"
	transport "yabby-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// resolvePort picks the listen port: the --port flag (or PORT env backing its
// default) wins, then the config file, then 8080.
func resolvePort(flag, configured string) string {
	if flag != "" {
		return flag
	}
	if configured != "" {
		return configured
	}
	return "8080"
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := logger.New("yabby-quiz")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := resolvePort(portFlag, cfg.Server.Port)

	var store app.Store = memory.NewSettingsStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = infrapg.NewSettingsStore(pool)
	}

	var cache app.Cache = memory.NewCache()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = infraredis.NewCache(client)
	}

	cacheTTL := config.TTLDuration(cfg.Quiz.CacheTTL, time.Hour)
	repo := app.NewRepository(store, cache, cacheTTL)
	ids := app.NewIDGenerator()
	validator := app.NewValidator(app.NewSanitizer(), ids)
	resolver := app.NewResolver(repo, ids)
	m, reg := metrics.New()

	csrfKey := []byte(cfg.Admin.CSRFKey)
	if len(csrfKey) == 0 {
		// Random per-boot key; admin sessions do not survive a restart,
		// which is fine for a single-admin tool.
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			return err
		}
	}

	handler, err := transport.NewRouter(log, repo, validator, resolver, m, reg, transport.Options{
		AdminUser:  cfg.Admin.Username,
		AdminPass:  cfg.Admin.Password,
		CSRFKey:    csrfKey,
		CSRFSecure: cfg.Admin.CSRFSecure,
		PagesDir:   cfg.Pages.Dir,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting quiz service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
