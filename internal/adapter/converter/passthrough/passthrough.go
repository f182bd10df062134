// Package passthrough provides the catch-all fallback strategy. It performs
// no conversion: the input bytes come back unchanged, relabelled with the
// requested MIME type. A router only accepts it as its last entry.
package passthrough

import (
	"context"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/port"
)

type Strategy struct{}

func NewStrategy() *Strategy { return &Strategy{} }

func (s *Strategy) Name() string { return "passthrough" }

func (s *Strategy) Capabilities() domain.CapabilitySet {
	return domain.CapabilitySet{CatchAll: true}
}

func (s *Strategy) Supports(string, string) bool { return true }

func (s *Strategy) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "passthrough", err)
	}
	target := req.EffectiveTargetMIME()
	name := domain.OutputFilename(req.Filename, "file", domain.ExtensionForMIME(target))
	return domain.NewConvertedArtifact(name, target, req.Data), nil
}

var _ port.ConversionStrategy = (*Strategy)(nil)
