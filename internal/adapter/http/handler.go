package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bnema/mediaconv/internal/adapter/http/templates"
	"github.com/bnema/mediaconv/internal/adapter/http/validation"
	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/infrastructure/logger"
	"github.com/bnema/mediaconv/internal/service"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in
// memory before spilling to disk.
const multipartMemory = 32 << 20

const indexRecentLimit = 10

type ConversionService interface {
	Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error)
	Get(ctx context.Context, id string) (*domain.ConversionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error)
	Strategies() []service.StrategyInfo
}

type Handlers struct {
	svc            ConversionService
	maxUploadBytes int64
}

func NewHandlers(svc ConversionService, maxUploadBytes int64) *Handlers {
	return &Handlers{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handlers) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := h.svc.ListRecent(r.Context(), indexRecentLimit)
		if err != nil {
			logger.Error.Printf("index history error: %v", err)
			recent = nil
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = templates.Index(templates.IndexData{
			Strategies:     h.svc.Strategies(),
			Recent:         recent,
			MaxUploadBytes: h.maxUploadBytes,
		}).Render(r.Context(), w)
	}
}

// Convert accepts a multipart upload with the fields "file" and
// "targetType" and answers with the converted bytes as an attachment.
func (h *Handlers) Convert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || r.ContentLength > h.maxUploadBytes {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "too_large", "upload exceeds the size limit")
				return
			}
			writeJSONError(w, http.StatusBadRequest, domain.KindOf(domain.ErrInvalidInput), "expected a multipart form upload")
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, domain.KindOf(domain.ErrInvalidInput), "missing file field")
			return
		}
		defer file.Close() //nolint:errcheck

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error.Printf("read upload %s: %v", logger.SanitizeForLog(header.Filename), err)
			writeJSONError(w, http.StatusInternalServerError, domain.KindOf(domain.ErrIOFailure), "failed to read upload")
			return
		}
		if data == nil {
			data = []byte{}
		}

		artifact, err := h.svc.Convert(r.Context(), &domain.ConversionRequest{
			Data:       data,
			SourceMIME: validation.SourceMIME(header.Header.Get("Content-Type"), data),
			Filename:   header.Filename,
			TargetMIME: r.FormValue("targetType"),
		})
		if err != nil {
			writeConversionError(w, err)
			return
		}

		w.Header().Set("Content-Type", artifact.MIMEType())
		w.Header().Set("Content-Disposition", validation.ContentDisposition(artifact.Name()))
		w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size(), 10))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Data())
	}
}

func (h *Handlers) Strategies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.svc.Strategies())
	}
}

// Conversions lists recent history. An optional "limit" query parameter
// caps the result.
func (h *Handlers) Conversions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeJSONError(w, http.StatusBadRequest, domain.KindOf(domain.ErrInvalidInput), "limit must be a positive integer")
				return
			}
			limit = n
		}

		records, err := h.svc.ListRecent(r.Context(), limit)
		if err != nil {
			logger.Error.Printf("list conversions: %v", err)
			writeJSONError(w, http.StatusInternalServerError, domain.KindOf(domain.ErrIOFailure), "failed to list conversions")
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (h *Handlers) Conversion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := h.svc.Get(r.Context(), r.PathValue("id"))
		if errors.Is(err, domain.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "conversion not found")
			return
		}
		if err != nil {
			logger.Error.Printf("get conversion: %v", err)
			writeJSONError(w, http.StatusInternalServerError, domain.KindOf(domain.ErrIOFailure), "failed to load conversion")
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// statusFor maps an error kind to the HTTP status reported to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedConversion):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrEncodingFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeConversionError reports the kind and operation of a failure. Encoder
// output stays in the server log and the history record.
func writeConversionError(w http.ResponseWriter, err error) {
	message := err.Error()
	var ce *domain.ConversionError
	if errors.As(err, &ce) {
		message = ce.Kind.Error()
		if ce.Op != "" {
			message = ce.Op + ": " + message
		}
		if ce.Err != nil && ce.Output == "" {
			message += ": " + ce.Err.Error()
		}
	}
	writeJSONError(w, statusFor(err), domain.KindOf(err), message)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("encode response: %v", err)
	}
}
