package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, now time.Time) *Writer {
	t.Helper()
	w := NewWriter(filepath.Join(t.TempDir(), "backups"))
	w.now = func() time.Time { return now }
	return w
}

func TestWriter_Save(t *testing.T) {
	now := time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC)

	t.Run("creates directory and writes file", func(t *testing.T) {
		w := newTestWriter(t, now)

		name, err := w.Save([]byte(`{"memorizedAyahs":[]}`))
		require.NoError(t, err)

		assert.Contains(t, name, "20261017T030000Z-")
		assert.Equal(t, ".json", filepath.Ext(name))
		content, err := w.Read(name)
		require.NoError(t, err)
		assert.Equal(t, `{"memorizedAyahs":[]}`, string(content))
	})

	t.Run("generates unique filenames", func(t *testing.T) {
		w := newTestWriter(t, now)

		name1, err := w.Save([]byte(`{}`))
		require.NoError(t, err)
		name2, err := w.Save([]byte(`{}`))
		require.NoError(t, err)

		assert.NotEqual(t, name1, name2)
	})
}

func TestWriter_List(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		w := newTestWriter(t, time.Now())

		files, err := w.List()

		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("newest first and skips other files", func(t *testing.T) {
		w := newTestWriter(t, time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC))
		older, err := w.Save([]byte(`{}`))
		require.NoError(t, err)
		w.now = func() time.Time { return time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC) }
		newer, err := w.Save([]byte(`{}`))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(w.Dir, "notes.txt"), []byte("x"), 0644))

		files, err := w.List()
		require.NoError(t, err)

		require.Len(t, files, 2)
		assert.Equal(t, newer, files[0].Name)
		assert.Equal(t, older, files[1].Name)
		assert.Equal(t, int64(2), files[0].Size)
	})
}

func TestWriter_Read_RejectsPaths(t *testing.T) {
	w := newTestWriter(t, time.Now())

	_, err := w.Read("../secret.json")
	assert.Error(t, err)
	_, err = w.Read("")
	assert.Error(t, err)
}

func TestWriter_Prune(t *testing.T) {
	w := newTestWriter(t, time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC))
	_, err := w.Save([]byte(`{}`))
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC) }
	kept, err := w.Save([]byte(`{}`))
	require.NoError(t, err)

	w.now = func() time.Time { return time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC) }
	deleted, err := w.Prune(30 * 24 * time.Hour)
	require.NoError(t, err)

	assert.Equal(t, int64(1), deleted)
	files, err := w.List()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, kept, files[0].Name)
}
