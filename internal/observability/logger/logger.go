package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	obscontext "github.com/smallbiznis/classifieds/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the process logger.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	Level       string
	Format      string
	Debug       bool

	// Sampling keeps the first Initial entries per message each Window,
	// then every Thereafter-th. Zero values fall back to 100/100/1s.
	SamplingInitial    int
	SamplingThereafter int
	SamplingWindow     time.Duration
}

// New builds the process logger, installs it as the zap global so
// FromContext works outside fx-injected code, and flushes it on stop.
func New(lc fx.Lifecycle, cfg Config) (*zap.Logger, error) {
	zapCfg, err := productionConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core,
				orDuration(cfg.SamplingWindow, time.Second),
				orInt(cfg.SamplingInitial, 100),
				orInt(cfg.SamplingThereafter, 100),
			)
		}),
	}
	if cfg.Debug {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	base, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, err
	}
	base = base.With(
		zap.String("service", orString(cfg.ServiceName, "classifieds")),
		zap.String("env", strings.TrimSpace(cfg.Environment)),
		zap.String("version", strings.TrimSpace(cfg.Version)),
	)
	zap.ReplaceGlobals(base)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				_ = base.Sync()
				return nil
			},
		})
	}
	return base, nil
}

func productionConfig(cfg Config) (zap.Config, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "json"
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		zapCfg.Encoding = "console"
	}
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	level := orString(cfg.Level, "info")
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zapCfg, nil
}

// FromContext returns the global logger enriched with request-scoped fields.
func FromContext(ctx context.Context) *zap.Logger {
	return WithContext(ctx, zap.L())
}

// WithContext adds the request, correlation and trace ids plus the listing
// and seller the request acts on, when known.
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil || base == nil {
		return base
	}

	fields := make([]zap.Field, 0, 6)
	fields = appendNonEmpty(fields, "request_id", obscontext.RequestIDFromContext(ctx))
	fields = appendNonEmpty(fields, "correlation_id", obscontext.CorrelationIDFromContext(ctx))
	fields = appendNonEmpty(fields, "listing_id", obscontext.ListingIDFromContext(ctx))
	fields = appendNonEmpty(fields, "seller_id", obscontext.SellerIDFromContext(ctx))
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// WithListing pins listing and seller on a service logger. Service calls
// arrive without the HTTP context, so the ids come from the request itself.
func WithListing(log *zap.Logger, listingID, sellerID string) *zap.Logger {
	if log == nil {
		return nil
	}
	return log.With(
		zap.String("listing_id", strings.TrimSpace(listingID)),
		zap.String("seller_id", strings.TrimSpace(sellerID)),
	)
}

func appendNonEmpty(fields []zap.Field, key, value string) []zap.Field {
	if value == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}

func orString(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

func orInt(value, def int) int {
	if value > 0 {
		return value
	}
	return def
}

func orDuration(value, def time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return def
}
