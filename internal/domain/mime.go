package domain

import "strings"

// DefaultSourceMIME is assumed when the caller does not declare a source type.
const DefaultSourceMIME = "application/octet-stream"

const (
	PrefixAudio = "audio/"
	PrefixVideo = "video/"
	PrefixImage = "image/"
)

const (
	MIMEAudioMPEG = "audio/mpeg"
	MIMEAudioWAV  = "audio/wav"
	MIMEAudioOGG  = "audio/ogg"

	MIMEVideoMP4       = "video/mp4"
	MIMEVideoWebM      = "video/webm"
	MIMEVideoQuickTime = "video/quicktime"
	MIMEVideoMatroska  = "video/x-matroska"

	MIMEImagePNG  = "image/png"
	MIMEImageJPEG = "image/jpeg"
)

// mimeExtensions is the fallback table used when a strategy has no
// capability row of its own for a MIME type (passthrough, HTTP sniffing).
var mimeExtensions = map[string]string{
	MIMEAudioMPEG:      "mp3",
	MIMEAudioWAV:       "wav",
	"audio/x-wav":      "wav",
	MIMEAudioOGG:       "ogg",
	"audio/flac":       "flac",
	"audio/aac":        "aac",
	"audio/mp4":        "m4a",
	MIMEVideoMP4:       "mp4",
	MIMEVideoWebM:      "webm",
	MIMEVideoQuickTime: "mov",
	MIMEVideoMatroska:  "mkv",
	"video/x-msvideo":  "avi",
	MIMEImagePNG:       "png",
	MIMEImageJPEG:      "jpg",
	"image/gif":        "gif",
	"image/webp":       "webp",
	"application/pdf":  "pdf",
	"text/plain":       "txt",
}

// ExtensionForMIME returns the conventional extension for mime, or "bin".
func ExtensionForMIME(mime string) string {
	if ext, ok := mimeExtensions[NormalizeMIME(mime)]; ok {
		return ext
	}
	return "bin"
}

// NormalizeMIME lowercases mime and drops any parameters ("; charset=...").
func NormalizeMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
