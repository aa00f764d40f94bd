package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment selects how the rendering engine is acquired.
const (
	EnvLocal   = "local"
	EnvSandbox = "sandbox"
)

// Config holds all service configuration, loaded once from the environment.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	HTTPAddr       string

	DatabaseDSN string

	Storage StorageConfig
	Render  RenderConfig

	TracingEnabled   bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// StorageConfig configures the S3-compatible artifact store.
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// RenderConfig configures the headless browser backend.
type RenderConfig struct {
	ChromePath         string
	ContentLoadTimeout time.Duration
	RasterizeTimeout   time.Duration
}

var (
	ErrMissingDatabaseDSN = errors.New("missing_database_dsn")
	ErrMissingStorage     = errors.New("missing_storage_config")
)

// Load reads configuration from the process environment.
func Load() (Config, error) {
	cfg := Config{
		ServiceName:    envOr("SERVICE_NAME", "iterio-quotedoc"),
		ServiceVersion: envOr("SERVICE_VERSION", "dev"),
		Environment:    normalizeEnvironment(os.Getenv("APP_ENV")),
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DatabaseDSN:    strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		Storage: StorageConfig{
			Endpoint:      strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
			AccessKey:     strings.TrimSpace(os.Getenv("STORAGE_ACCESS_KEY")),
			SecretKey:     strings.TrimSpace(os.Getenv("STORAGE_SECRET_KEY")),
			Bucket:        envOr("STORAGE_BUCKET", "quote-documents"),
			UseSSL:        envBool("STORAGE_USE_SSL", true),
			PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_PUBLIC_BASE_URL")), "/"),
		},
		Render: RenderConfig{
			ChromePath:         strings.TrimSpace(os.Getenv("CHROME_PATH")),
			ContentLoadTimeout: envDuration("RENDER_CONTENT_TIMEOUT", 30*time.Second),
			RasterizeTimeout:   envDuration("RENDER_RASTERIZE_TIMEOUT", 30*time.Second),
		},
		TracingEnabled:   envBool("TRACING_ENABLED", false),
		ExporterEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_ENDPOINT")),
		ExporterProtocol: envOr("OTEL_EXPORTER_PROTOCOL", "http"),
		SamplingRatio:    envFloat("OTEL_SAMPLING_RATIO", 0.1),
	}

	if cfg.DatabaseDSN == "" {
		return cfg, ErrMissingDatabaseDSN
	}
	if cfg.Storage.Endpoint == "" || cfg.Storage.PublicBaseURL == "" {
		return cfg, ErrMissingStorage
	}
	return cfg, nil
}

func normalizeEnvironment(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvSandbox:
		return EnvSandbox
	default:
		return EnvLocal
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
