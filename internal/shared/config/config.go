package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRemoteTimeout      = 15 * time.Second
	defaultRateLimitPerMinute = 30
	defaultMaxUploadBytes     = 5 << 20
)

// Config holds application configuration.
type Config struct {
	Port                  string
	Env                   string
	CORSAllowOrigin       []string
	DatabaseURL           string
	RemoteAnalysisURL     string
	RemoteAnalysisTimeout time.Duration
	RedisURL              string
	RateLimitPerMinute    int
	MaxUploadBytes        int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   env,
		CORSAllowOrigin:       splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:           dbURL,
		RemoteAnalysisURL:     strings.TrimSpace(os.Getenv("REMOTE_ANALYSIS_URL")),
		RemoteAnalysisTimeout: getDuration("REMOTE_ANALYSIS_TIMEOUT", defaultRemoteTimeout),
		RedisURL:              strings.TrimSpace(os.Getenv("REDIS_URL")),
		RateLimitPerMinute:    getInt("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute),
		MaxUploadBytes:        int64(getInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
	}
}

// loadEnvFiles loads each file that exists. Variables already present in the
// process environment win over file values.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("env file %s ignored: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration: %q", key, raw)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
