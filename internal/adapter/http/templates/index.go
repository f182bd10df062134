// Package templates renders the HTML pages of the conversion service.
// Components live in .templ files; run `templ generate` after editing them.
package templates

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/service"
)

// IndexData feeds the upload page.
type IndexData struct {
	Strategies     []service.StrategyInfo
	Recent         []*domain.ConversionRecord
	MaxUploadBytes int64
}

// targetOptions lists every concrete target once, in registry order.
func targetOptions(strategies []service.StrategyInfo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range strategies {
		for _, t := range s.Targets {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func strategySources(s service.StrategyInfo) string {
	if s.CatchAll {
		return "any"
	}
	return s.SourcePrefix + "*"
}

func strategyTargets(s service.StrategyInfo) string {
	if s.CatchAll {
		return "any"
	}
	return strings.Join(s.Targets, ", ")
}

func recordSize(r *domain.ConversionRecord) string {
	size := humanize.Bytes(uint64(r.InputSize))
	if r.Status == domain.RecordStatusDone {
		size += " → " + humanize.Bytes(uint64(r.OutputSize))
	}
	return size
}
