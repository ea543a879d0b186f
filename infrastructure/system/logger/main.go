package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	domainLogger "github.com/t-kuni/shoko/domain/system/logger"
)

type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger builds a logger from environment variables.
// SHOKO_LOG_LEVEL: debug, info, warn, error (default: info)
// SHOKO_LOG_FORMAT: json, console (default: console)
func NewZerologLogger() domainLogger.ILogger {
	level := zerolog.InfoLevel
	switch os.Getenv("SHOKO_LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if os.Getenv("SHOKO_LOG_FORMAT") == "json" {
		output = os.Stderr
	}

	return &ZerologLogger{
		logger: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *ZerologLogger) Info(msg string) {
	l.logger.Info().Msg(msg)
}
