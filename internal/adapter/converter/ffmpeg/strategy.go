package ffmpeg

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/infrastructure/logger"
	"github.com/bnema/mediaconv/internal/port"
)

// Strategy converts audio or video through the external encoder. The
// capability table decides which targets are accepted and which encoder
// arguments each one gets.
type Strategy struct {
	name        string
	defaultBase string
	caps        domain.CapabilitySet
	runner      port.EncoderRunner
}

// NewAudioStrategy accepts any audio/* source and produces mp3, wav or ogg.
func NewAudioStrategy(runner port.EncoderRunner) *Strategy {
	return &Strategy{
		name:        "ffmpeg-audio",
		defaultBase: "audio",
		caps:        domain.CapabilitySet{SourcePrefix: domain.PrefixAudio, Targets: audioFormats()},
		runner:      runner,
	}
}

// NewVideoStrategy accepts any video/* source and produces mp4, mov, mkv
// (H.264/AAC) or webm (VP9/Opus).
func NewVideoStrategy(runner port.EncoderRunner) *Strategy {
	return &Strategy{
		name:        "ffmpeg-video",
		defaultBase: "video",
		caps:        domain.CapabilitySet{SourcePrefix: domain.PrefixVideo, Targets: videoFormats()},
		runner:      runner,
	}
}

func (s *Strategy) Name() string                       { return s.name }
func (s *Strategy) Capabilities() domain.CapabilitySet { return s.caps }

func (s *Strategy) Supports(sourceMIME, targetMIME string) bool {
	return s.caps.Supports(sourceMIME, targetMIME)
}

func (s *Strategy) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	target := req.EffectiveTargetMIME()
	format, ok := s.caps.Format(target)
	if !ok {
		return nil, domain.NewConversionError(domain.ErrUnsupportedConversion, s.name,
			fmt.Errorf("target %s not handled", target))
	}

	logger.Debug.Printf("%s: %s -> %s (%s)", s.name,
		logger.SanitizeForLog(req.EffectiveSourceMIME()), target, format.Codec)

	data, err := s.runner.Run(ctx, port.Invocation{
		Input:     req.Data,
		InputExt:  domain.ExtensionOr(req.Filename, domain.PlaceholderExtension),
		OutputExt: format.Extension,
		Args:      slices.Clone(format.Args),
	})
	if err != nil {
		return nil, err
	}

	name := domain.OutputFilename(req.Filename, s.defaultBase, format.Extension)
	return domain.NewConvertedArtifact(name, target, data), nil
}

var _ port.ConversionStrategy = (*Strategy)(nil)
