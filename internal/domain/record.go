package domain

import "time"

type RecordStatus string

const (
	RecordStatusDone   RecordStatus = "done"
	RecordStatusFailed RecordStatus = "failed"
)

// ConversionRecord is the history entry written for every conversion call.
type ConversionRecord struct {
	ID           string        `json:"id"`
	Strategy     string        `json:"strategy"`
	SourceMIME   string        `json:"source_mime"`
	TargetMIME   string        `json:"target_mime"`
	OriginalName string        `json:"original_name"`
	OutputName   string        `json:"output_name"`
	Status       RecordStatus  `json:"status"`
	ErrorKind    string        `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	InputSize    int64         `json:"input_size"`
	OutputSize   int64         `json:"output_size"`
	InputDigest  string        `json:"input_digest"`
	OutputDigest string        `json:"output_digest,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (r *ConversionRecord) MarkDone(a *ConvertedArtifact, digest string) {
	r.Status = RecordStatusDone
	r.OutputName = a.Name()
	r.OutputSize = a.Size()
	r.OutputDigest = digest
}

func (r *ConversionRecord) MarkFailed(err error) {
	r.Status = RecordStatusFailed
	r.ErrorKind = KindOf(err)
	r.ErrorMessage = err.Error()
}
