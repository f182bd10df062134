package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/service"
)

type mockConversionService struct {
	mock.Mock
}

func (m *mockConversionService) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*domain.ConvertedArtifact)
	return a, args.Error(1)
}

func (m *mockConversionService) Get(ctx context.Context, id string) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.ConversionRecord)
	return r, args.Error(1)
}

func (m *mockConversionService) ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]*domain.ConversionRecord)
	return r, args.Error(1)
}

func (m *mockConversionService) Strategies() []service.StrategyInfo {
	args := m.Called()
	s, _ := args.Get(0).([]service.StrategyInfo)
	return s
}

// multipartUpload builds a convert request. An empty contentType leaves the
// part without a Content-Type header.
func multipartUpload(t *testing.T, filename, contentType string, data []byte, target string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if target != "" {
		require.NoError(t, mw.WriteField("targetType", target))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestConvert_Success(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("Convert", mock.Anything, mock.MatchedBy(func(req *domain.ConversionRequest) bool {
		return req.Filename == "song.wav" &&
			req.SourceMIME == "audio/wav" &&
			req.TargetMIME == "audio/mpeg" &&
			string(req.Data) == "RIFF-ish"
	})).Return(domain.NewConvertedArtifact("song_converted.mp3", "audio/mpeg", []byte("ID3-ish")), nil)

	srv := NewServer(svc, 1<<20)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, multipartUpload(t, "song.wav", "audio/wav", []byte("RIFF-ish"), "audio/mpeg"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=song_converted.mp3", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, "ID3-ish", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	svc.AssertExpectations(t)
}

func TestConvert_SniffsMissingContentType(t *testing.T) {
	pngSig := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	svc := new(mockConversionService)
	svc.On("Convert", mock.Anything, mock.MatchedBy(func(req *domain.ConversionRequest) bool {
		return req.SourceMIME == "image/png"
	})).Return(domain.NewConvertedArtifact("pic_converted.jpg", "image/jpeg", []byte{0xff, 0xd8}), nil)

	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, multipartUpload(t, "pic.png", "", pngSig, "image/jpeg"))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestConvert_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{name: "unsupported", err: domain.NewConversionError(domain.ErrUnsupportedConversion, "resolve", nil), status: http.StatusUnsupportedMediaType, kind: "unsupported_conversion"},
		{name: "invalid input", err: domain.NewConversionError(domain.ErrInvalidInput, "decode image", errors.New("bad header")), status: http.StatusBadRequest, kind: "invalid_input"},
		{name: "timeout", err: &domain.ConversionError{Kind: domain.ErrTimeout, Op: "run encoder", ExitCode: -1, Output: "frame=1"}, status: http.StatusGatewayTimeout, kind: "timeout"},
		{name: "encoding failed", err: &domain.ConversionError{Kind: domain.ErrEncodingFailed, Op: "run encoder", ExitCode: 1, Output: "Invalid data"}, status: http.StatusUnprocessableEntity, kind: "encoding_failed"},
		{name: "io failure", err: domain.NewConversionError(domain.ErrIOFailure, "create scratch file", errors.New("disk full")), status: http.StatusInternalServerError, kind: "io_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockConversionService)
			svc.On("Convert", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewServer(svc, 1<<20).ServeHTTP(rec, multipartUpload(t, "a.bin", "text/plain", []byte("x"), "application/pdf"))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.NotContains(t, body.Message, "Invalid data")
			assert.NotContains(t, body.Message, "frame=1")
		})
	}
}

func TestConvert_InvalidInputMessageKeepsCause(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("Convert", mock.Anything, mock.Anything).
		Return(nil, domain.NewConversionError(domain.ErrInvalidInput, "validate request", errors.New("TargetMIME: cannot be blank.")))

	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, multipartUpload(t, "a.wav", "audio/wav", []byte("x"), ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validate request: invalid input: TargetMIME: cannot be blank.", decodeError(t, rec).Message)
}

func TestConvert_MissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("targetType", "audio/mpeg"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	svc := new(mockConversionService)
	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decodeError(t, rec).Error)
	svc.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestConvert_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/convert", bytes.NewBufferString("plain"))
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	NewServer(new(mockConversionService), 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert_TooLarge(t *testing.T) {
	svc := new(mockConversionService)
	rec := httptest.NewRecorder()
	NewServer(svc, 1024).ServeHTTP(rec, multipartUpload(t, "big.wav", "audio/wav", bytes.Repeat([]byte("a"), 4096), "audio/mpeg"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	svc.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestStrategies(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("Strategies").Return([]service.StrategyInfo{
		{Name: "ffmpeg-audio", SourcePrefix: "audio/", Targets: []string{"audio/mpeg"}},
	})

	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/strategies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"ffmpeg-audio","source_prefix":"audio/","targets":["audio/mpeg"],"catch_all":false}]`, rec.Body.String())
}

func TestConversions_List(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("ListRecent", mock.Anything, 5).Return([]*domain.ConversionRecord{{ID: "a"}, {ID: "b"}}, nil)

	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/conversions?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var records []domain.ConversionRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	svc.AssertExpectations(t)
}

func TestConversions_InvalidLimit(t *testing.T) {
	for _, q := range []string{"abc", "0", "-3"} {
		t.Run(q, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewServer(new(mockConversionService), 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/conversions?limit="+q, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestConversion_Get(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("Get", mock.Anything, "known").Return(&domain.ConversionRecord{ID: "known", Status: domain.RecordStatusDone}, nil)
	svc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	srv := NewServer(svc, 1<<20)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/conversions/known", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"done"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/conversions/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestIndex(t *testing.T) {
	svc := new(mockConversionService)
	svc.On("ListRecent", mock.Anything, indexRecentLimit).Return(nil, errors.New("db down"))
	svc.On("Strategies").Return([]service.StrategyInfo{
		{Name: "image", SourcePrefix: "image/", Targets: []string{"image/jpeg", "image/png"}},
	})

	rec := httptest.NewRecorder()
	NewServer(svc, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<option value="image/jpeg">`)
	assert.Contains(t, rec.Body.String(), "No conversions yet.")
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(new(mockConversionService), 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
