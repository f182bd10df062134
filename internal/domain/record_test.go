package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionRecord_MarkDone(t *testing.T) {
	r := &ConversionRecord{ID: "1"}
	r.MarkDone(NewConvertedArtifact("a_converted.wav", MIMEAudioWAV, []byte("1234")), "digest")

	assert.Equal(t, RecordStatusDone, r.Status)
	assert.Equal(t, "a_converted.wav", r.OutputName)
	assert.Equal(t, int64(4), r.OutputSize)
	assert.Equal(t, "digest", r.OutputDigest)
}

func TestConversionRecord_MarkFailed(t *testing.T) {
	r := &ConversionRecord{ID: "1"}
	r.MarkFailed(NewConversionError(ErrTimeout, "encode", errors.New("killed")))

	assert.Equal(t, RecordStatusFailed, r.Status)
	assert.Equal(t, "timeout", r.ErrorKind)
	assert.Equal(t, "encode: encoder timed out: killed", r.ErrorMessage)
}
