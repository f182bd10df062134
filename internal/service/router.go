package service

import (
	"context"
	"fmt"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/port"
)

// Router selects, in registration order, the first strategy able to handle
// a (source, target) pair. The registry is fixed at construction.
type Router struct {
	strategies []port.ConversionStrategy
}

// NewRouter validates the registry: names are unique, a catch-all strategy
// may only be the last entry, and no two specific strategies accept the same
// pair. Registration order is therefore only load-bearing for the fallback.
func NewRouter(strategies ...port.ConversionStrategy) (*Router, error) {
	names := make(map[string]bool, len(strategies))
	for i, s := range strategies {
		if s == nil {
			return nil, fmt.Errorf("%w: strategy %d is nil", domain.ErrInvalidRegistry, i)
		}
		if names[s.Name()] {
			return nil, fmt.Errorf("%w: duplicate strategy %q", domain.ErrInvalidRegistry, s.Name())
		}
		names[s.Name()] = true

		caps := s.Capabilities()
		if caps.CatchAll {
			if i != len(strategies)-1 {
				return nil, fmt.Errorf("%w: catch-all strategy %q must be registered last", domain.ErrInvalidRegistry, s.Name())
			}
			continue
		}
		for _, prev := range strategies[:i] {
			if caps.Overlaps(prev.Capabilities()) {
				return nil, fmt.Errorf("%w: strategies %q and %q accept overlapping conversions",
					domain.ErrInvalidRegistry, prev.Name(), s.Name())
			}
		}
	}
	return &Router{strategies: append([]port.ConversionStrategy(nil), strategies...)}, nil
}

// Resolve returns the first strategy supporting the pair. A blank source
// type is treated as DefaultSourceMIME.
func (r *Router) Resolve(sourceMIME, targetMIME string) (port.ConversionStrategy, error) {
	if sourceMIME == "" {
		sourceMIME = domain.DefaultSourceMIME
	}
	for _, s := range r.strategies {
		if s.Supports(sourceMIME, targetMIME) {
			return s, nil
		}
	}
	return nil, domain.NewConversionError(domain.ErrUnsupportedConversion, "resolve",
		fmt.Errorf("%s to %s", sourceMIME, targetMIME))
}

// Convert validates req and hands it to exactly one strategy. Nothing is
// retried.
func (r *Router) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	_, artifact, err := r.convert(ctx, req)
	return artifact, err
}

func (r *Router) convert(ctx context.Context, req *domain.ConversionRequest) (port.ConversionStrategy, *domain.ConvertedArtifact, error) {
	if req == nil {
		return nil, nil, domain.NewConversionError(domain.ErrInvalidInput, "convert", fmt.Errorf("nil request"))
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	strategy, err := r.Resolve(req.EffectiveSourceMIME(), req.EffectiveTargetMIME())
	if err != nil {
		return nil, nil, err
	}
	artifact, err := strategy.Convert(ctx, req)
	return strategy, artifact, err
}

// Strategies returns the registry in resolution order.
func (r *Router) Strategies() []port.ConversionStrategy {
	return append([]port.ConversionStrategy(nil), r.strategies...)
}
