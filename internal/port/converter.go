package port

import (
	"context"
	"time"

	"github.com/bnema/mediaconv/internal/domain"
)

// ConversionStrategy converts one family of media formats.
type ConversionStrategy interface {
	Name() string
	Capabilities() domain.CapabilitySet
	Supports(sourceMIME, targetMIME string) bool
	Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error)
}

// Invocation is a single run of the external encoder.
type Invocation struct {
	Input     []byte
	InputExt  string // extension hint for the input scratch file
	OutputExt string
	Args      []string      // placed between the input and output paths
	Timeout   time.Duration // zero means the runner's default
}

// EncoderRunner runs the external encoder over scratch files and returns the
// encoded bytes.
type EncoderRunner interface {
	Run(ctx context.Context, inv Invocation) ([]byte, error)
}
