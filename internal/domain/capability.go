package domain

import (
	"sort"
	"strings"
)

// Format is one row of a strategy's capability table.
type Format struct {
	Extension string
	Codec     string   // human readable codec label
	Args      []string // encoder arguments; nil for in-process codecs
}

// CapabilitySet describes which (source, target) pairs a strategy accepts:
// any source whose MIME type starts with SourcePrefix, converted to one of
// the Targets keys. A CatchAll set accepts every pair.
type CapabilitySet struct {
	SourcePrefix string
	Targets      map[string]Format
	CatchAll     bool
}

func (c CapabilitySet) Supports(sourceMIME, targetMIME string) bool {
	if c.CatchAll {
		return true
	}
	if !strings.HasPrefix(NormalizeMIME(sourceMIME), c.SourcePrefix) {
		return false
	}
	_, ok := c.Targets[NormalizeMIME(targetMIME)]
	return ok
}

// Format returns the table row for targetMIME.
func (c CapabilitySet) Format(targetMIME string) (Format, bool) {
	f, ok := c.Targets[NormalizeMIME(targetMIME)]
	return f, ok
}

// TargetMIMEs lists the accepted targets in sorted order.
func (c CapabilitySet) TargetMIMEs() []string {
	if len(c.Targets) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Targets))
	for mime := range c.Targets {
		out = append(out, mime)
	}
	sort.Strings(out)
	return out
}

// Overlaps reports whether some (source, target) pair is accepted by both
// sets. Catch-all sets overlap with everything.
func (c CapabilitySet) Overlaps(other CapabilitySet) bool {
	if c.CatchAll || other.CatchAll {
		return true
	}
	if !strings.HasPrefix(c.SourcePrefix, other.SourcePrefix) &&
		!strings.HasPrefix(other.SourcePrefix, c.SourcePrefix) {
		return false
	}
	for mime := range c.Targets {
		if _, ok := other.Targets[mime]; ok {
			return true
		}
	}
	return false
}
