package internal

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

var CurrentLevel slog.Level

// SetLoggingHandler configures the default logger.
//
// Known environment variables are honored by the caller before flags, to
// enable debug logging of the setup itself.
func SetLoggingHandler(level slog.Level, color bool) {
	CurrentLevel = level
	var h slog.Handler
	if color {
		h = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}
	slog.SetDefault(slog.New(h))
}

// LogLevelFromEnv reads SFGR_VERBOSITY and DEBUG before flag parsing.
func LogLevelFromEnv() (slog.Level, error) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if _, debug := os.LookupEnv("DEBUG"); debug {
		level.Set(slog.LevelDebug)
		return level.Level(), nil
	}
	envlevel, found := os.LookupEnv("SFGR_VERBOSITY")
	if found {
		err := level.UnmarshalText([]byte(envlevel))
		if err != nil {
			return level.Level(), err
		}
	}
	return level.Level(), nil
}
