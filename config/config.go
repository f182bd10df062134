package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendJSON   = "json"
)

type Config struct {
	Port                 int
	DataDir              string
	FFmpegPath           string
	EncodeTimeout        time.Duration
	MaxConcurrentEncodes int
	MaxUploadSizeMB      int
	ScratchDir           string // empty means the OS temp dir
	JPEGQuality          int
	ImageMaxPixels       int64 // width*height limit checked before decoding an image
	PassthroughFallback  bool
	HistoryEnabled       bool
	HistoryBackend       string // "sqlite" or "json"
	LogLevel             string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "7890"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	encodeTimeout, err := time.ParseDuration(getEnv("ENCODE_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENCODE_TIMEOUT: %w", err)
	}

	maxConcurrent, err := strconv.Atoi(getEnv("MAX_CONCURRENT_ENCODES", strconv.Itoa(runtime.NumCPU())))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_ENCODES: %w", err)
	}

	maxUploadSizeMB, err := strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}

	jpegQuality, err := strconv.Atoi(getEnv("JPEG_QUALITY", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid JPEG_QUALITY: %w", err)
	}

	imageMaxPixels, err := strconv.ParseInt(getEnv("IMAGE_MAX_PIXELS", "50000000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_PIXELS: %w", err)
	}

	passthrough, err := strconv.ParseBool(getEnv("PASSTHROUGH_FALLBACK", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PASSTHROUGH_FALLBACK: %w", err)
	}

	historyEnabled, err := strconv.ParseBool(getEnv("HISTORY_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_ENABLED: %w", err)
	}

	cfg := &Config{
		Port:                 port,
		DataDir:              getEnv("DATA_DIR", "/data"),
		FFmpegPath:           getEnv("FFMPEG_PATH", "ffmpeg"),
		EncodeTimeout:        encodeTimeout,
		MaxConcurrentEncodes: maxConcurrent,
		MaxUploadSizeMB:      maxUploadSizeMB,
		ScratchDir:           os.Getenv("SCRATCH_DIR"),
		JPEGQuality:          jpegQuality,
		ImageMaxPixels:       imageMaxPixels,
		PassthroughFallback:  passthrough,
		HistoryEnabled:       historyEnabled,
		HistoryBackend:       strings.ToLower(getEnv("HISTORY_BACKEND", HistoryBackendSQLite)),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges after parsing.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.FFmpegPath, validation.Required),
		validation.Field(&c.EncodeTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.MaxConcurrentEncodes, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxUploadSizeMB, validation.Required, validation.Min(1)),
		validation.Field(&c.JPEGQuality, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.ImageMaxPixels, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.DataDir, validation.When(c.HistoryEnabled, validation.Required)),
		validation.Field(&c.HistoryBackend, validation.In(HistoryBackendSQLite, HistoryBackendJSON)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// MaxUploadBytes is MaxUploadSizeMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
