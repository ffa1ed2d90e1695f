package logger

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures the GORM zap logger.
type GormLoggerConfig struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
	// LockSlowThreshold applies to SELECT ... FOR UPDATE reads of
	// subscription and campaign rows held inside a quote commit.
	LockSlowThreshold    time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig returns production-safe defaults.
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        250 * time.Millisecond,
		LockSlowThreshold:    50 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// GormLogger implements gormlogger.Interface on top of the request-scoped zap logger.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) message(ctx context.Context, enabledAt gormlogger.LogLevel, level zapcore.Level, msg string, data []interface{}) {
	if l.cfg.Level < enabledAt {
		return
	}
	fields := []zap.Field{zap.String("component", "gorm")}
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	if ce := FromContext(ctx).Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// Trace logs failed statements, slow statements and, at Info, everything.
// Row-lock reads are judged against LockSlowThreshold.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	if err != nil && l.cfg.Level >= gormlogger.Error {
		if !(l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound)) {
			sql, rows := fc()
			l.write(ctx, zapcore.ErrorLevel, "db_query", sql, rows, elapsed, err)
			return
		}
	}

	if l.cfg.Level < gormlogger.Warn {
		return
	}
	sql, rows := fc()
	lock := locking(sql)
	switch {
	case lock && l.cfg.LockSlowThreshold > 0 && elapsed > l.cfg.LockSlowThreshold:
		l.write(ctx, zapcore.WarnLevel, "db_slow_lock", sql, rows, elapsed, nil)
	case !lock && l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold:
		l.write(ctx, zapcore.WarnLevel, "db_slow_query", sql, rows, elapsed, nil)
	case l.cfg.Level >= gormlogger.Info:
		l.write(ctx, zapcore.DebugLevel, "db_query", sql, rows, elapsed, nil)
	}
}

// ParamsFilter drops bound values; seller and listing ids already travel on the logger.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) write(ctx context.Context, level zapcore.Level, msg, sql string, rows int64, elapsed time.Duration, err error) {
	ce := FromContext(ctx).Check(level, msg)
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("component", "gorm"),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.String("operation", operationFromSQL(sql)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	if locking(sql) {
		fields = append(fields, zap.Bool("row_lock", true))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

// operationFromSQL names the statement's verb. Keywords inside parentheses
// (CTE bodies, subqueries) are skipped so WITH ... UPDATE reports UPDATE.
func operationFromSQL(sql string) string {
	var nested string
	depth := 0
	word := strings.Builder{}

	flush := func() string {
		token := strings.ToUpper(word.String())
		word.Reset()
		switch token {
		case "SELECT", "INSERT", "UPDATE", "DELETE", "MERGE":
			if depth == 0 {
				return token
			}
			if nested == "" {
				nested = token
			}
		}
		return ""
	}

	for _, r := range sql {
		if unicode.IsLetter(r) {
			word.WriteRune(r)
			continue
		}
		if op := flush(); op != "" {
			return op
		}
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	if op := flush(); op != "" {
		return op
	}
	if nested != "" {
		return nested
	}
	return "UNKNOWN"
}

func locking(sql string) bool {
	return strings.Contains(strings.ToUpper(sql), "FOR UPDATE")
}

var _ gormlogger.Interface = (*GormLogger)(nil)
