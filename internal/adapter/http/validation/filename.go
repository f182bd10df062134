package validation

import (
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFilenameLength is the maximum allowed filename length (common filesystem limit).
const maxFilenameLength = 255

// SanitizeFilename makes a client or encoder supplied name safe for a
// Content-Disposition header: path components are dropped, control
// characters and header/path metacharacters become '_', and the result is
// capped at 255 bytes with the extension kept. Empty results become "file".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 || r == '"' || r == ':' {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	if strings.Trim(name, "_.") == "" {
		return "file"
	}
	if len(name) > maxFilenameLength {
		name = truncatePreservingExtension(name)
	}
	return name
}

func truncatePreservingExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || len(ext) >= maxFilenameLength {
		return truncateToBytes(name, maxFilenameLength)
	}
	base := name[:len(name)-len(ext)]
	return truncateToBytes(base, maxFilenameLength-len(ext)) + ext
}

// truncateToBytes cuts s to at most maxBytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

// ContentDisposition returns an attachment header value for filename.
// Non-ASCII names are emitted in the RFC 2231 filename* form.
func ContentDisposition(filename string) string {
	v := mime.FormatMediaType("attachment", map[string]string{"filename": SanitizeFilename(filename)})
	if v == "" {
		return "attachment"
	}
	return v
}
