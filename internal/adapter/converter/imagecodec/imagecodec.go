// Package imagecodec converts still images in process with the standard image
// codecs. No encoder subprocess and no scratch files are involved.
package imagecodec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // decoder registration
	"image/jpeg"
	"image/png"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/port"
)

const (
	DefaultJPEGQuality = 90
	// DefaultMaxPixels caps decoded images at roughly 50 megapixels.
	DefaultMaxPixels int64 = 50_000_000
)

// Options tunes the image strategy. Zero values select the defaults.
type Options struct {
	JPEGQuality   int   // 1-100
	MaxPixels     int64 // width*height budget checked before decoding
	MaxConcurrent int   // simultaneous conversions, defaults to NumCPU
}

type Strategy struct {
	caps        domain.CapabilitySet
	jpegQuality int
	maxPixels   int64
	gate        *semaphore.Weighted
}

// NewStrategy returns an image strategy. Out of range values fall back to
// the defaults.
func NewStrategy(opts Options) *Strategy {
	quality := opts.JPEGQuality
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}
	return &Strategy{
		caps: domain.CapabilitySet{
			SourcePrefix: domain.PrefixImage,
			Targets: map[string]domain.Format{
				domain.MIMEImagePNG:  {Extension: "png", Codec: "png"},
				domain.MIMEImageJPEG: {Extension: "jpg", Codec: "jpeg"},
			},
		},
		jpegQuality: quality,
		maxPixels:   maxPixels,
		gate:        semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (s *Strategy) Name() string                       { return "image" }
func (s *Strategy) Capabilities() domain.CapabilitySet { return s.caps }

func (s *Strategy) Supports(sourceMIME, targetMIME string) bool {
	return s.caps.Supports(sourceMIME, targetMIME)
}

func (s *Strategy) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "image", err)
	}

	target := req.EffectiveTargetMIME()
	format, ok := s.caps.Format(target)
	if !ok {
		return nil, domain.NewConversionError(domain.ErrUnsupportedConversion, "image",
			fmt.Errorf("target %s not handled", target))
	}

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "wait for image slot", err)
	}
	defer s.gate.Release(1)

	if err := s.checkDimensions(req.Data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(req.Data))
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrInvalidInput, "decode image", err)
	}

	var buf bytes.Buffer
	switch format.Codec {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: s.jpegQuality})
	default:
		err = fmt.Errorf("no encoder for %s", format.Codec)
	}
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrEncodingFailed, "encode "+format.Codec, err)
	}

	name := domain.OutputFilename(req.Filename, "image", format.Extension)
	return domain.NewConvertedArtifact(name, target, buf.Bytes()), nil
}

// checkDimensions reads only the header so a tiny file declaring a huge
// canvas is rejected before any pixel buffer is allocated.
func (s *Strategy) checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.NewConversionError(domain.ErrInvalidInput, "decode image", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.NewConversionError(domain.ErrInvalidInput, "decode image",
			fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height))
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > s.maxPixels {
		return domain.NewConversionError(domain.ErrInvalidInput, "decode image",
			fmt.Errorf("%dx%d is %d pixels, limit is %d", cfg.Width, cfg.Height, pixels, s.maxPixels))
	}
	return nil
}

// flatten composites img over white. JPEG has no alpha channel, and the
// encoder would otherwise render transparent pixels as black.
func flatten(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

var _ port.ConversionStrategy = (*Strategy)(nil)
