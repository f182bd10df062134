// Package converter assembles the conversion strategies into the order the
// router consults them.
package converter

import (
	"github.com/bnema/mediaconv/internal/adapter/converter/ffmpeg"
	"github.com/bnema/mediaconv/internal/adapter/converter/imagecodec"
	"github.com/bnema/mediaconv/internal/adapter/converter/passthrough"
	"github.com/bnema/mediaconv/internal/port"
)

type Options struct {
	JPEGQuality         int
	ImageMaxPixels      int64
	MaxConcurrent       int  // bound on in-process image conversions
	PassthroughFallback bool // register the catch-all strategy last
}

// Strategies returns the registry: audio, video and image first, then the
// optional passthrough fallback.
func Strategies(runner port.EncoderRunner, opts Options) []port.ConversionStrategy {
	strategies := []port.ConversionStrategy{
		ffmpeg.NewAudioStrategy(runner),
		ffmpeg.NewVideoStrategy(runner),
		imagecodec.NewStrategy(imagecodec.Options{
			JPEGQuality:   opts.JPEGQuality,
			MaxPixels:     opts.ImageMaxPixels,
			MaxConcurrent: opts.MaxConcurrent,
		}),
	}
	if opts.PassthroughFallback {
		strategies = append(strategies, passthrough.NewStrategy())
	}
	return strategies
}
