package logging

import (
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// QueryTracer logs every statement and its arguments through logger. It
// is only worth attaching at debug level or below; anything higher turns
// the tracer off.
func QueryTracer(logger zerolog.Logger) *tracelog.TraceLog {
	pgxLogger := logger.With().Str("component", "pgx").Logger()
	return &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(pgxLogger),
		LogLevel: TraceLevel(logger.GetLevel()),
	}
}

// TraceLevel maps a zerolog level onto the pgx tracelog scale.
func TraceLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	default:
		return tracelog.LogLevelNone
	}
}
