package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/service"
)

func render(t *testing.T, data IndexData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Index(data).Render(context.Background(), &buf))
	return buf.String()
}

func TestIndex_Form(t *testing.T) {
	html := render(t, IndexData{
		Strategies: []service.StrategyInfo{
			{Name: "ffmpeg-audio", SourcePrefix: "audio/", Targets: []string{"audio/mpeg", "audio/wav"}},
			{Name: "dup", SourcePrefix: "audio/x-", Targets: []string{"audio/wav"}},
			{Name: "passthrough", CatchAll: true},
		},
		MaxUploadBytes: 500 << 20,
	})

	assert.Contains(t, html, `action="/api/convert"`)
	assert.Contains(t, html, `name="targetType"`)
	assert.Contains(t, html, `<option value="audio/mpeg">`)
	assert.Equal(t, 1, bytes.Count([]byte(html), []byte(`<option value="audio/wav">`)))
	assert.Contains(t, html, "500 MiB")
	assert.Contains(t, html, "<td>passthrough</td><td>any</td><td>any</td>")
	assert.Contains(t, html, "No conversions yet.")
}

func TestIndex_RecentEscapesNames(t *testing.T) {
	html := render(t, IndexData{
		Recent: []*domain.ConversionRecord{
			{
				OriginalName: `<script>alert(1)</script>.mp3`,
				SourceMIME:   "audio/mpeg",
				TargetMIME:   "audio/wav",
				Status:       domain.RecordStatusFailed,
				ErrorKind:    "encoding_failed",
				CreatedAt:    time.Now(),
			},
		},
	})

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `class="failed">encoding_failed`)
}

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestForm_NoUploadLimit(t *testing.T) {
	html := renderComponent(t, Form(IndexData{
		Strategies: []service.StrategyInfo{{Name: "image", SourcePrefix: "image/", Targets: []string{"image/png"}}},
	}))

	assert.Contains(t, html, `<option value="image/png">image/png</option>`)
	assert.NotContains(t, html, "Maximum upload size")
}

func TestStrategies_PrefixAndTargets(t *testing.T) {
	html := renderComponent(t, Strategies([]service.StrategyInfo{
		{Name: "ffmpeg-video", SourcePrefix: "video/", Targets: []string{"video/mp4", "video/webm"}},
	}))

	assert.Contains(t, html, "<td>ffmpeg-video</td><td>video/*</td><td>video/mp4, video/webm</td>")
}

func TestRecent_DoneRowShowsBothSizes(t *testing.T) {
	html := renderComponent(t, Recent([]*domain.ConversionRecord{
		{
			OriginalName: "clip.wav",
			SourceMIME:   "audio/wav",
			TargetMIME:   "audio/mpeg",
			Status:       domain.RecordStatusDone,
			InputSize:    2_000_000,
			OutputSize:   300_000,
			CreatedAt:    time.Now(),
		},
	}))

	assert.Contains(t, html, "<td>2.0 MB → 300 kB</td>")
	assert.Contains(t, html, "<td>done</td>")
	assert.NotContains(t, html, "No conversions yet.")
}

func TestIndex_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Index(IndexData{}).Render(ctx, &buf)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
