package config

import (
	"log/slog"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
)

const (
	DEFAULT_ENV                    = "dev"
	DEFAULT_QUERY                  = "smart fan"
	DEFAULT_BRANDS                 = "atomberg,havells,crompton,orient"
	DEFAULT_PER_PLATFORM           = 10
	DEFAULT_MAX_COMMENTS_PER_VIDEO = 30
	DEFAULT_SOURCE_CACHE_TTL       = 3600
	DEFAULT_SERVER_HOST            = "0.0.0.0"
	DEFAULT_SERVER_PORT            = 5000
)

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type AppConfig struct {
	Env string

	Query               string
	Brands              []string
	Weights             models.Weights
	PerPlatform         int
	MaxCommentsPerVideo int
	AnalysisWorkers     int

	CSEAPIKey     string
	CSECX         string
	YouTubeAPIKey string

	Valkey         clients.ValkeyConfig
	SourceCacheTTL time.Duration

	Kafka  kafka_client.KafkaConfig
	Server ServerConfig
}

// Env returns APP_ENV, defaulting to dev.
func Env() string {
	return envString("APP_ENV", DEFAULT_ENV)
}

// Load reads the process configuration from the environment. Malformed values
// fall back to their defaults.
func Load() AppConfig {
	brands, err := processing.NormalizeBrands(strings.Split(envString("BRANDS", DEFAULT_BRANDS), ","))
	if err != nil {
		slog.Warn("[Config] BRANDS has no usable entries, using defaults")
		brands, _ = processing.NormalizeBrands(strings.Split(DEFAULT_BRANDS, ","))
	}

	return AppConfig{
		Env:                 Env(),
		Query:               envString("DEFAULT_QUERY", DEFAULT_QUERY),
		Brands:              brands,
		Weights:             envWeights("WEIGHTS", models.DefaultWeights),
		PerPlatform:         envPositiveInt("PER_PLATFORM", DEFAULT_PER_PLATFORM),
		MaxCommentsPerVideo: envPositiveInt("MAX_COMMENTS_PER_VIDEO", DEFAULT_MAX_COMMENTS_PER_VIDEO),
		AnalysisWorkers:     envPositiveInt("ANALYSIS_WORKERS", processing.DEFAULT_WORKERS),

		CSEAPIKey:     os.Getenv("CSE_API_KEY"),
		CSECX:         os.Getenv("CSE_CX"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),

		Valkey: clients.ValkeyConfig{
			Address:  os.Getenv("VALKEY_INIT_ADDRESS"),
			Password: os.Getenv("VALKEY_PASSWORD"),
			UseTLS:   envBool("VALKEY_TLS", false),
		},
		SourceCacheTTL: time.Duration(envPositiveInt("SOURCE_CACHE_TTL", DEFAULT_SOURCE_CACHE_TTL)) * time.Second,

		Kafka: kafka_client.GetKafkaConfig(),
		Server: ServerConfig{
			Host:        envString("SERVER_HOST", DEFAULT_SERVER_HOST),
			Port:        envPositiveInt("SERVER_PORT", DEFAULT_SERVER_PORT),
			CORSOrigins: envList("CORS_ORIGINS", []string{"*"}),
		},
	}
}

// Defaults is the run configuration used when a request overrides nothing.
// Each call returns a fresh copy.
func (c AppConfig) Defaults() models.RunConfig {
	return models.RunConfig{
		Query:               c.Query,
		Brands:              append([]string(nil), c.Brands...),
		Weights:             c.Weights,
		PerPlatform:         c.PerPlatform,
		MaxCommentsPerVideo: c.MaxCommentsPerVideo,
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envPositiveInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("[Config] Invalid value, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", def))
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("[Config] Invalid boolean, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return def
	}
	return v
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// envWeights parses a comma separated [mentions, engagement, sentiment]
// vector. Anything other than exactly three finite non-negative numbers
// yields def.
func envWeights(key string, def models.Weights) models.Weights {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}

	parts := strings.Split(raw, ",")
	if len(parts) != len(def) {
		slog.Warn("[Config] WEIGHTS must have exactly 3 entries, using defaults",
			slog.String("value", raw))
		return def
	}

	var w models.Weights
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			slog.Warn("[Config] WEIGHTS entry is not a non-negative number, using defaults",
				slog.String("value", raw))
			return def
		}
		w[i] = v
	}
	return w
}
