// Package config собирает настройки сервера: значения по умолчанию,
// YAML-файл, переменные окружения REDISLITE_* и флаги командной строки
// (в порядке возрастания приоритета).
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"redislite/internal/logging"
)

// ErrInvalidConfig — любая ошибка валидации.
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "REDISLITE_"

// Config — все параметры процесса.
type Config struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Capacity        int           `yaml:"capacity"`
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	MaxLineBytes    int           `yaml:"max_line_bytes"`
	MaxConnections  int           `yaml:"max_connections"` // 0 = без лимита
	IdleTimeout     time.Duration `yaml:"idle_timeout"`    // 0 = без таймаута
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	StatsInterval   time.Duration `yaml:"stats_interval"` // 0 = монитор выключен
	MetricsAddr     string        `yaml:"metrics_addr"`   // пусто = без HTTP /metrics
	LogLevel        string        `yaml:"log_level"`
	LogPretty       bool          `yaml:"log_pretty"`
}

// Default возвращает настройки по умолчанию.
func Default() Config {
	return Config{
		Host:            "localhost",
		Port:            6379,
		Capacity:        100,
		ReadBufferSize:  1024,
		MaxLineBytes:    64 * 1024,
		MaxConnections:  1024,
		ShutdownTimeout: 10 * time.Second,
		StatsInterval:   10 * time.Second,
		LogLevel:        "info",
	}
}

// Addr возвращает host:port для net.Listen.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate проверяет инварианты конфигурации.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be greater than 0, got %d", ErrInvalidConfig, c.Capacity)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case c.ReadBufferSize < 16:
		return fmt.Errorf("%w: read_buffer_size must be at least 16, got %d", ErrInvalidConfig, c.ReadBufferSize)
	case c.MaxLineBytes < c.ReadBufferSize:
		return fmt.Errorf("%w: max_line_bytes (%d) must not be smaller than read_buffer_size (%d)",
			ErrInvalidConfig, c.MaxLineBytes, c.ReadBufferSize)
	case c.MaxConnections < 0:
		return fmt.Errorf("%w: max_connections must not be negative", ErrInvalidConfig)
	case c.IdleTimeout < 0 || c.ShutdownTimeout < 0 || c.StatsInterval < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	case !logging.ValidLevel(c.LogLevel):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Load собирает конфигурацию. getenv обычно os.Getenv.
// Флаг -config указывает YAML-файл; флаги перекрывают файл и окружение.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("redislite", flag.ContinueOnError)
	path := fs.String("config", getenv(envPrefix+"CONFIG"), "Path to YAML config file")
	host := fs.String("host", "", "Host to listen on")
	port := fs.Int("port", 0, "TCP port to listen on")
	capacity := fs.Int("capacity", 0, "Maximum number of cached keys")
	readBuf := fs.Int("read-buffer", 0, "Read buffer size per connection, bytes")
	maxLine := fs.Int("max-line", 0, "Maximum request line length, bytes")
	maxConns := fs.Int("max-conns", 0, "Maximum concurrent connections (0 = unlimited)")
	idle := fs.Duration("idle-timeout", 0, "Close idle connections after this duration (0 = never)")
	shutdown := fs.Duration("shutdown-timeout", 0, "Graceful shutdown timeout")
	stats := fs.Duration("stats-interval", 0, "Cache stats sampling interval (0 = off)")
	metricsAddr := fs.String("metrics-addr", "", "HTTP address for /metrics (empty = off)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logPretty := fs.Bool("log-pretty", false, "Human-readable log output")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *path != "" {
		if err := cfg.loadFile(*path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	// Флаги применяем только если они заданы явно.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "capacity":
			cfg.Capacity = *capacity
		case "read-buffer":
			cfg.ReadBufferSize = *readBuf
		case "max-line":
			cfg.MaxLineBytes = *maxLine
		case "max-conns":
			cfg.MaxConnections = *maxConns
		case "idle-timeout":
			cfg.IdleTimeout = *idle
		case "shutdown-timeout":
			cfg.ShutdownTimeout = *shutdown
		case "stats-interval":
			cfg.StatsInterval = *stats
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-pretty":
			cfg.LogPretty = *logPretty
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile накладывает YAML-файл поверх текущих значений.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// applyEnv читает REDISLITE_* переменные.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v := getenv(envPrefix + name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, envPrefix, name, v)
		}
		*dst = n
		return nil
	}
	dur := func(name string, dst *time.Duration) error {
		v := getenv(envPrefix + name)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a duration", ErrInvalidConfig, envPrefix, name, v)
		}
		*dst = d
		return nil
	}

	str("HOST", &c.Host)
	str("METRICS_ADDR", &c.MetricsAddr)
	str("LOG_LEVEL", &c.LogLevel)

	if v := getenv(envPrefix + "LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sLOG_PRETTY=%q is not a boolean", ErrInvalidConfig, envPrefix, v)
		}
		c.LogPretty = b
	}

	return errors.Join(
		num("PORT", &c.Port),
		num("CAPACITY", &c.Capacity),
		num("READ_BUFFER_SIZE", &c.ReadBufferSize),
		num("MAX_LINE_BYTES", &c.MaxLineBytes),
		num("MAX_CONNECTIONS", &c.MaxConnections),
		dur("IDLE_TIMEOUT", &c.IdleTimeout),
		dur("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout),
		dur("STATS_INTERVAL", &c.StatsInterval),
	)
}
