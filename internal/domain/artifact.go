package domain

// ConvertedArtifact is the result of a conversion. It is not modified after
// construction; ownership of the bytes passes to whoever receives it.
type ConvertedArtifact struct {
	name     string
	mimeType string
	data     []byte
}

func NewConvertedArtifact(name, mimeType string, data []byte) *ConvertedArtifact {
	return &ConvertedArtifact{name: name, mimeType: mimeType, data: data}
}

func (a *ConvertedArtifact) Name() string     { return a.name }
func (a *ConvertedArtifact) MIMEType() string { return a.mimeType }
func (a *ConvertedArtifact) Data() []byte     { return a.data }
func (a *ConvertedArtifact) Size() int64      { return int64(len(a.data)) }
