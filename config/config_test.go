package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATA_DIR", "FFMPEG_PATH", "ENCODE_TIMEOUT", "MAX_CONCURRENT_ENCODES",
	"MAX_UPLOAD_SIZE_MB", "SCRATCH_DIR", "JPEG_QUALITY", "IMAGE_MAX_PIXELS", "PASSTHROUGH_FALLBACK",
	"HISTORY_ENABLED", "HISTORY_BACKEND", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7890, cfg.Port)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 5*time.Minute, cfg.EncodeTimeout)
	assert.Equal(t, runtime.NumCPU(), cfg.MaxConcurrentEncodes)
	assert.Equal(t, 500, cfg.MaxUploadSizeMB)
	assert.Equal(t, int64(500<<20), cfg.MaxUploadBytes())
	assert.Empty(t, cfg.ScratchDir)
	assert.Equal(t, 90, cfg.JPEGQuality)
	assert.Equal(t, int64(50_000_000), cfg.ImageMaxPixels)
	assert.False(t, cfg.PassthroughFallback)
	assert.True(t, cfg.HistoryEnabled)
	assert.Equal(t, HistoryBackendSQLite, cfg.HistoryBackend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENCODE_TIMEOUT", "90s")
	t.Setenv("MAX_CONCURRENT_ENCODES", "2")
	t.Setenv("SCRATCH_DIR", "/tmp/mc")
	t.Setenv("JPEG_QUALITY", "75")
	t.Setenv("IMAGE_MAX_PIXELS", "1000000")
	t.Setenv("PASSTHROUGH_FALLBACK", "true")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("HISTORY_BACKEND", "JSON")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.EncodeTimeout)
	assert.Equal(t, 2, cfg.MaxConcurrentEncodes)
	assert.Equal(t, "/tmp/mc", cfg.ScratchDir)
	assert.Equal(t, 75, cfg.JPEGQuality)
	assert.Equal(t, int64(1_000_000), cfg.ImageMaxPixels)
	assert.True(t, cfg.PassthroughFallback)
	assert.False(t, cfg.HistoryEnabled)
	assert.Equal(t, HistoryBackendJSON, cfg.HistoryBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "PORT", value: "abc"},
		{key: "PORT", value: "70000"},
		{key: "ENCODE_TIMEOUT", value: "soon"},
		{key: "ENCODE_TIMEOUT", value: "10ms"},
		{key: "MAX_CONCURRENT_ENCODES", value: "-1"},
		{key: "MAX_UPLOAD_SIZE_MB", value: "x"},
		{key: "JPEG_QUALITY", value: "101"},
		{key: "IMAGE_MAX_PIXELS", value: "lots"},
		{key: "IMAGE_MAX_PIXELS", value: "-5"},
		{key: "PASSTHROUGH_FALLBACK", value: "maybe"},
		{key: "HISTORY_ENABLED", value: "nope"},
		{key: "HISTORY_BACKEND", value: "postgres"},
		{key: "LOG_LEVEL", value: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
