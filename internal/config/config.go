package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the server settings. Every flag falls back to a CHESS_*
// environment variable.
type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     log.Level
	LogFormat    string
	WSBuffer     int
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "debug, info, warn, error or fatal")
	format := fs.String("log-format", getenv("CHESS_LOG_FORMAT", "text"), "text or json")
	buffer := fs.String("ws-buffer", getenv("CHESS_WS_BUFFER", "1024"), "websocket read/write buffer size in bytes")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Addr:         strings.TrimSpace(*addr),
		AllowOrigins: *origins,
		LogFormat:    strings.ToLower(strings.TrimSpace(*format)),
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(*level)))
	if err != nil {
		return Config{}, fmt.Errorf("%w: log level %q", ErrInvalidConfig, *level)
	}
	cfg.LogLevel = lvl

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: log format %q", ErrInvalidConfig, *format)
	}

	n, err := strconv.Atoi(strings.TrimSpace(*buffer))
	if err != nil || n <= 0 {
		return Config{}, fmt.Errorf("%w: websocket buffer %q", ErrInvalidConfig, *buffer)
	}
	cfg.WSBuffer = n
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
