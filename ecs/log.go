package ecs

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the package-level diagnostic logger. It defaults to a no-op
// logger so a library consumer pays nothing for it unless they call Init —
// nothing on the correctness path depends on it; the core itself never
// performs I/O.
var logger zerolog.Logger = zerolog.Nop()

// LogLevel selects how verbose Init's logger is.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogConfig configures the package-level diagnostic logger.
type LogConfig struct {
	Level      LogLevel
	JSONOutput bool
	Output     io.Writer
}

// Init installs the package-level diagnostic logger. Call it once before
// building a World if you want scheduler batch planning traced; otherwise the
// runtime stays silent. Only RunScheduleParallel logs; system registration
// and world operations are not logged.
func Init(cfg LogConfig) {
	var level zerolog.Level
	switch cfg.Level {
	case LogLevelDebug:
		level = zerolog.DebugLevel
	case LogLevelWarn:
		level = zerolog.WarnLevel
	case LogLevelError:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// withComponent returns a child logger tagged with an ECS subsystem name
// (e.g. "scheduler", "world").
func withComponent(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func withSchedule(id ScheduleID) zerolog.Logger {
	return withComponent("scheduler").With().Uint64("schedule_id", uint64(id)).Logger()
}

func withSystem(id SystemID) zerolog.Logger {
	return logger.With().Uint64("system_id", uint64(id)).Logger()
}
