package validation

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func wavHeader() []byte {
	h := []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x02\x00\x44\xac\x00\x00\x10\xb1\x02\x00\x04\x00\x10\x00data\x00\x00\x00\x00")
	return h
}

func TestSourceMIME(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		expected string
	}{
		{name: "declared wins", declared: "audio/mpeg", data: []byte("whatever"), expected: "audio/mpeg"},
		{name: "declared normalized", declared: "Video/QuickTime; codecs=avc1", data: nil, expected: "video/quicktime"},
		{name: "empty data unknown", declared: "", data: nil, expected: "application/octet-stream"},
		{name: "missing declaration sniffs png", declared: "", data: pngBytes(t), expected: "image/png"},
		{name: "generic declaration sniffs png", declared: "application/octet-stream", data: pngBytes(t), expected: "image/png"},
		{name: "generic declaration sniffs wav", declared: "application/octet-stream", data: wavHeader(), expected: "audio/wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SourceMIME(tt.declared, tt.data))
		})
	}
}
