package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "scratch")

		m, err := NewManager(dir)

		require.NoError(t, err)
		assert.Equal(t, dir, m.Dir())
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("defaults to os temp dir", func(t *testing.T) {
		m, err := NewManager("")

		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(m.Dir()))
	})
}

func TestManager_Create(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	t.Run("prefix and extension", func(t *testing.T) {
		f, err := m.Create("upload_", "mp3")
		require.NoError(t, err)
		defer f.Remove()

		name := filepath.Base(f.Path())
		assert.True(t, strings.HasPrefix(name, "upload_"), name)
		assert.True(t, strings.HasSuffix(name, ".mp3"), name)
		assert.Equal(t, m.Dir(), filepath.Dir(f.Path()))
	})

	t.Run("names are unique", func(t *testing.T) {
		a, err := m.Create("converted_", "wav")
		require.NoError(t, err)
		defer a.Remove()
		b, err := m.Create("converted_", "wav")
		require.NoError(t, err)
		defer b.Remove()

		assert.NotEqual(t, a.Path(), b.Path())
	})

	t.Run("extension cannot escape directory", func(t *testing.T) {
		f, err := m.Create("upload_", "../../etc/passwd")
		require.NoError(t, err)
		defer f.Remove()

		assert.Equal(t, m.Dir(), filepath.Dir(f.Path()))
	})

	t.Run("empty extension", func(t *testing.T) {
		f, err := m.Create("upload_", "")
		require.NoError(t, err)
		defer f.Remove()

		assert.False(t, strings.Contains(filepath.Base(f.Path()), "."))
	})
}

func TestFile_Lifecycle(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	f, err := m.Create("upload_", "dat")
	require.NoError(t, err)

	require.NoError(t, f.Write([]byte("payload")))
	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, f.Remove())
	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, f.Remove(), "removing twice is not an error")
}
