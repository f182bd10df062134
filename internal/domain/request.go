package domain

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var mimePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*/[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]*$`)

// ConversionRequest is one uploaded blob plus the format it should become.
type ConversionRequest struct {
	Data       []byte
	SourceMIME string // may be empty when the uploader did not declare one
	Filename   string // original filename, optional
	TargetMIME string
}

// Validate checks the request invariants. Violations are reported as
// ErrInvalidInput.
func (r *ConversionRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Data, validation.NotNil),
		validation.Field(&r.TargetMIME, validation.Required, validation.By(mediaType(true))),
		validation.Field(&r.SourceMIME, validation.By(mediaType(false))),
	)
	if err != nil {
		return NewConversionError(ErrInvalidInput, "validate request", err)
	}
	return nil
}

// EffectiveSourceMIME returns the declared source type, normalized, or
// DefaultSourceMIME when none was given.
func (r *ConversionRequest) EffectiveSourceMIME() string {
	if strings.TrimSpace(r.SourceMIME) == "" {
		return DefaultSourceMIME
	}
	return NormalizeMIME(r.SourceMIME)
}

// EffectiveTargetMIME returns the normalized target type.
func (r *ConversionRequest) EffectiveTargetMIME() string {
	return NormalizeMIME(r.TargetMIME)
}

func mediaType(required bool) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			if required {
				return errors.New("cannot be blank")
			}
			return nil
		}
		if !mimePattern.MatchString(NormalizeMIME(s)) {
			return errors.New("must be a type/subtype media type")
		}
		return nil
	}
}
