package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "filename unchanged",
			input:    "song.mp3",
			expected: "song.mp3",
		},
		{
			name:     "mime type unchanged",
			input:    "video/x-matroska",
			expected: "video/x-matroska",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "newline escaped",
			input:    "clip.mov\nERROR: fake log entry",
			expected: "clip.mov\\nERROR: fake log entry",
		},
		{
			name:     "CRLF escaped",
			input:    "line1\r\nline2",
			expected: "line1\\r\\nline2",
		},
		{
			name:     "tab escaped",
			input:    "col1\tcol2",
			expected: "col1\\tcol2",
		},
		{
			name:     "null byte escaped",
			input:    "before\x00after",
			expected: "before\\x00after",
		},
		{
			name:     "ANSI escape code escaped",
			input:    "text\x1b[31mred\x1b[0m",
			expected: "text\\x1b[31mred\\x1b[0m",
		},
		{
			name:     "DEL character escaped",
			input:    "delete\x7fchar",
			expected: "delete\\x7fchar",
		},
		{
			name:     "unicode preserved",
			input:    "café_中文_👋.wav",
			expected: "café_中文_👋.wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeForLog(tt.input))
		})
	}
}

func TestSanitizeForLog_AllControlChars(t *testing.T) {
	for i := 0; i < 32; i++ {
		result := SanitizeForLog(string(rune(i)))
		assert.True(t, strings.HasPrefix(result, "\\"), "control char 0x%02x not escaped: %q", i, result)
	}
	assert.Equal(t, "\\x7f", SanitizeForLog(string(rune(127))))
}

func TestTail(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		assert.Equal(t, "ffmpeg version 6.1", Tail("ffmpeg version 6.1", 100))
	})

	t.Run("zero max disables clipping", func(t *testing.T) {
		assert.Equal(t, "abc", Tail("abc", 0))
	})

	t.Run("cuts on line boundary", func(t *testing.T) {
		in := "line one\nline two\nline three\n"
		got := Tail(in, 16)
		assert.Equal(t, "...line three\n", got)
	})

	t.Run("no newline keeps raw tail", func(t *testing.T) {
		assert.Equal(t, "...6789", Tail("0123456789", 4))
	})

	t.Run("does not split multibyte runes", func(t *testing.T) {
		got := Tail("ab中文", 4)
		assert.Equal(t, "...文", got)
	})
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	var buf strings.Builder
	SetLevel("debug")
	Debug.SetOutput(&buf)
	Debug.Print("visible")
	assert.Contains(t, buf.String(), "visible")

	SetLevel("info")
	buf.Reset()
	Debug.Print("hidden")
	assert.Empty(t, buf.String())
}
