// Package validation holds the upload checks applied before a request reaches
// the conversion service.
package validation

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/bnema/mediaconv/internal/domain"
)

// SourceMIME decides the source type of an upload. A specific declared type
// wins; a missing or generic declaration falls back to content sniffing, and
// content that cannot be identified stays application/octet-stream.
func SourceMIME(declared string, data []byte) string {
	declared = domain.NormalizeMIME(declared)
	if declared != "" && declared != domain.DefaultSourceMIME {
		return declared
	}
	if len(data) == 0 {
		return domain.DefaultSourceMIME
	}
	return domain.NormalizeMIME(mimetype.Detect(data).String())
}
