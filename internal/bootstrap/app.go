package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"writing-tutor-api/internal/feedback"
	"writing-tutor-api/internal/feedback/remote"
	"writing-tutor-api/internal/services/health"
	"writing-tutor-api/internal/shared/config"
	"writing-tutor-api/internal/shared/server"
	"writing-tutor-api/internal/shared/server/middleware"
	"writing-tutor-api/internal/shared/storage/db"
)

const redisPingTimeout = 2 * time.Second

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Redis           *redis.Client
	Limiter         middleware.Limiter
	AnalysisRepo    feedback.Repo
	Remote          feedback.RemoteAnalyzer
	Health          *health.Service
	FeedbackService *feedback.Service
	FeedbackHandler *feedback.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	remoteAnalyzer, err := BuildRemote(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, limiter := buildLimiter(ctx, cfg)

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Redis:   redisClient,
		Limiter: limiter,
		Remote:  remoteAnalyzer,
	}

	if sqlDB != nil {
		app.AnalysisRepo = &feedback.PGRepo{DB: sqlDB}
	} else {
		app.AnalysisRepo = feedback.NewMemoryRepo()
	}
	app.FeedbackService = &feedback.Service{
		Remote: app.Remote,
		Repo:   app.AnalysisRepo,
	}
	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService, cfg.MaxUploadBytes)

	app.Health = health.NewService()
	if sqlDB != nil {
		app.Health.Register("database", sqlDB.PingContext)
	}
	if redisClient != nil {
		app.Health.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		FeedbackHandler: app.FeedbackHandler,
		Health:          app.Health,
		Limiter:         app.Limiter,
	})

	return app, nil
}

// Close releases pooled connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// BuildRemote returns the remote analyzer for cfg. Without an endpoint every
// analysis is answered by the local pipeline.
func BuildRemote(cfg config.Config) (feedback.RemoteAnalyzer, error) {
	if strings.TrimSpace(cfg.RemoteAnalysisURL) == "" {
		log.Printf("bootstrap: REMOTE_ANALYSIS_URL empty; all feedback is generated locally")
		return remote.Placeholder{}, nil
	}
	client, err := remote.NewClient(cfg.RemoteAnalysisURL, cfg.RemoteAnalysisTimeout)
	if err != nil {
		return nil, fmt.Errorf("remote analysis client: %w", err)
	}
	return client, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory analysis log")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory analysis log: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory analysis log: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

// buildLimiter prefers a shared Redis limiter and falls back to an in-process
// token bucket when Redis is absent or unreachable.
func buildLimiter(ctx context.Context, cfg config.Config) (*redis.Client, middleware.Limiter) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, middleware.NewRateLimiter(nil)
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("bootstrap: invalid REDIS_URL; using in-process rate limiter: %v", err)
		return nil, middleware.NewRateLimiter(nil)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("bootstrap: redis ping failed; using in-process rate limiter: %v", err)
		_ = client.Close()
		return nil, middleware.NewRateLimiter(nil)
	}
	return client, middleware.NewRedisLimiter(client, "writing-tutor:ratelimit", nil)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
