package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Config holds the settings of the accept loop around the request core and
// of the telemetry pipeline. The core itself has no settings.
type Config struct {
	Addr          string
	BufferSize    int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxConns      int
	StrictFraming bool
	LogLevel      slog.Level

	ServiceName  string
	OTLPEndpoint string
}

func Default() Config {
	return Config{
		Addr:         "127.0.0.1:5555",
		BufferSize:   1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxConns:     1,
		LogLevel:     slog.LevelInfo,
		ServiceName:  "rakis",
	}
}

// Load builds a Config from defaults, then the environment, then args.
// getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if err := cfg.fromEnv(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("rakis", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "size of the single read buffer per connection")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "deadline for reading a request, 0 disables")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "deadline for writing a response, 0 disables")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "connections handled at once, 1 is sequential")
	fs.BoolVar(&cfg.StrictFraming, "strict-framing", cfg.StrictFraming, "omit the extra CRLF after response bodies")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) fromEnv(getenv func(string) string) error {
	if v := getenv("RAKIS_ADDR"); v != "" {
		c.Addr = v
	}

	var errs []error
	if v := getenv("RAKIS_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, wrapEnv("RAKIS_BUFFER_SIZE", err))
		c.BufferSize = n
	}
	if v := getenv("RAKIS_READ_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, wrapEnv("RAKIS_READ_TIMEOUT", err))
		c.ReadTimeout = d
	}
	if v := getenv("RAKIS_WRITE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, wrapEnv("RAKIS_WRITE_TIMEOUT", err))
		c.WriteTimeout = d
	}
	if v := getenv("RAKIS_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, wrapEnv("RAKIS_MAX_CONNS", err))
		c.MaxConns = n
	}
	if v := getenv("RAKIS_STRICT_FRAMING"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, wrapEnv("RAKIS_STRICT_FRAMING", err))
		c.StrictFraming = b
	}
	if v := getenv("RAKIS_LOG_LEVEL"); v != "" {
		errs = append(errs, wrapEnv("RAKIS_LOG_LEVEL", c.LogLevel.UnmarshalText([]byte(v))))
	}
	if v := getenv("OTEL_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	c.OTLPEndpoint = getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	return errors.Join(errs...)
}

func wrapEnv(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("config: %s: %w", key, err)
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("config: addr is empty"))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("config: buffer size must be positive, got %d", c.BufferSize))
	}
	if c.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("config: max conns must be positive, got %d", c.MaxConns))
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		errs = append(errs, errors.New("config: timeouts must not be negative"))
	}
	return errors.Join(errs...)
}
