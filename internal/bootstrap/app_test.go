package bootstrap

import (
	"testing"

	"writing-tutor-api/internal/feedback"
	"writing-tutor-api/internal/feedback/remote"
	"writing-tutor-api/internal/shared/config"
	"writing-tutor-api/internal/shared/server/middleware"
)

func TestBuildDevUsesInMemoryDependencies(t *testing.T) {
	app, err := Build(config.Config{Env: "dev", RateLimitPerMinute: 30})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected no database in dev without DATABASE_URL")
	}
	if _, ok := app.AnalysisRepo.(*feedback.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.AnalysisRepo)
	}
	if _, ok := app.Remote.(remote.Placeholder); !ok {
		t.Fatalf("expected placeholder remote, got %T", app.Remote)
	}
	if _, ok := app.Limiter.(*middleware.RateLimiter); !ok {
		t.Fatalf("expected in-process limiter, got %T", app.Limiter)
	}
	if app.Router == nil {
		t.Fatalf("expected router")
	}
}

func TestBuildProductionRequiresDatabase(t *testing.T) {
	if _, err := Build(config.Config{Env: "production"}); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildRemote(t *testing.T) {
	analyzer, err := BuildRemote(config.Config{RemoteAnalysisURL: "https://analysis.example/api/analyze-writing"})
	if err != nil {
		t.Fatalf("BuildRemote: %v", err)
	}
	if _, ok := analyzer.(*remote.Client); !ok {
		t.Fatalf("expected remote client, got %T", analyzer)
	}

	if _, err := BuildRemote(config.Config{RemoteAnalysisURL: "ftp://nope"}); err == nil {
		t.Fatalf("expected invalid endpoint error")
	}
}

func TestBuildLimiterFallsBackOnBadRedisURL(t *testing.T) {
	app, err := Build(config.Config{Env: "dev", RedisURL: "not a url"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()
	if app.Redis != nil {
		t.Fatalf("expected no redis client")
	}
	if _, ok := app.Limiter.(*middleware.RateLimiter); !ok {
		t.Fatalf("expected in-process limiter, got %T", app.Limiter)
	}
}
