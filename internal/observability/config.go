package observability

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/classifieds/internal/config"
)

// Config holds observability settings. Process config supplies identity;
// the OTEL_* and LOG_* environment variables override export and verbosity.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	// Slow-SQL thresholds for the GORM logger. Row-lock reads taken during
	// a quote commit have their own, tighter threshold.
	DBSlowQuery     time.Duration
	DBLockSlowQuery time.Duration

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	env := strings.TrimSpace(envOr("DEPLOYMENT_ENV", cfg.Environment))

	protocol := envOr("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	protocol = envOr("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", protocol)

	// Development traces every request; elsewhere a tenth of pricing traffic.
	sampling := 0.1
	if isDevEnv(env) {
		sampling = 1
	}

	return Config{
		ServiceName:          orDefault(cfg.AppName, "classifieds"),
		Environment:          env,
		Version:              envOr("SERVICE_VERSION", cfg.AppVersion),
		LogLevel:             strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(envOr("LOG_FORMAT", "json")),
		DBSlowQuery:          envMillis("DB_SLOW_QUERY_MS", 250*time.Millisecond),
		DBLockSlowQuery:      envMillis("DB_LOCK_SLOW_QUERY_MS", 50*time.Millisecond),
		OtelEnabled:          envBool("OTEL_ENABLED", true),
		OtelExporterEndpoint: envOr("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint),
		OtelExporterProtocol: strings.ToLower(protocol),
		OtelSamplingRatio:    envFloat("OTEL_SAMPLING_RATIO", sampling),
	}
}

// Debug is true for debug logging or a development environment.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug") || isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

func envOr(key, def string) string {
	return orDefault(os.Getenv(key), strings.TrimSpace(def))
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v < 0 || v > 1 {
		return def
	}
	return v
}

// envMillis reads a millisecond count. Zero disables the threshold.
func envMillis(key string, def time.Duration) time.Duration {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v < 0 {
		return def
	}
	return time.Duration(v) * time.Millisecond
}
