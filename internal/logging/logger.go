// Package logging настраивает структурированный логгер (zerolog).
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config — настройки логгера.
type Config struct {
	// Level — минимальный уровень: debug, info, warn, error.
	Level string

	// Pretty включает человекочитаемый вывод вместо JSON.
	Pretty bool

	// Output — куда писать (по умолчанию os.Stderr).
	Output io.Writer
}

// DefaultConfig возвращает JSON-логгер уровня info в stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Output: os.Stderr,
	}
}

// Setup настраивает глобальный логгер и возвращает его.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ParseLevel переводит строку в zerolog.Level. Неизвестное значение — info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel сообщает, знаком ли уровень.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "":
		return true
	}
	return false
}

// NewLogger возвращает дочерний логгер с полем component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
