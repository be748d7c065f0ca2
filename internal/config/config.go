package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/vizdeck/engine"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `json:"server"`
	Render RenderConfig `json:"render"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr     string        `json:"listen_addr"`
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxUploadMB    int           `json:"max_upload_mb"`
	CORSOrigins    []string      `json:"cors_origins"`
}

// RenderConfig holds chart rendering defaults
type RenderConfig struct {
	ChartWidth  int `json:"chart_width"`
	ChartHeight int `json:"chart_height"`
	HistBins    int `json:"hist_bins"`
}

// DefaultConfig returns configuration from VIZDECK_* environment
// variables, falling back to defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     getEnv("VIZDECK_ADDR", ":8080"),
			RequestTimeout: getEnvDuration("VIZDECK_REQUEST_TIMEOUT", 30*time.Second),
			MaxUploadMB:    getEnvInt("VIZDECK_MAX_UPLOAD_MB", 32),
			CORSOrigins:    getEnvList("VIZDECK_CORS_ORIGINS", []string{"*"}),
		},
		Render: RenderConfig{
			ChartWidth:  getEnvInt("VIZDECK_CHART_WIDTH", 800),
			ChartHeight: getEnvInt("VIZDECK_CHART_HEIGHT", 600),
			HistBins:    getEnvInt("VIZDECK_HIST_BINS", 10),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server listen address is required")
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB")
	}

	if c.Render.ChartWidth < 1 || c.Render.ChartHeight < 1 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Render.ChartWidth, c.Render.ChartHeight)
	}

	if c.Render.HistBins < 1 {
		return fmt.Errorf("histogram bins must be at least 1")
	}

	return nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// RenderOptions converts the render defaults to engine options
func (c *Config) RenderOptions() []engine.Option {
	return []engine.Option{
		engine.WithSize(c.Render.ChartWidth, c.Render.ChartHeight),
		engine.WithBins(c.Render.HistBins),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
