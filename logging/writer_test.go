package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("x"), 512*1024)
	for i := 0; i < 3; i++ {
		_, err := w.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	// The third write pushed the file past 1 MB and rotated it away
	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), info.Size())
}

func TestRotatingWriter_DropsOldestBeyondMaxFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.log")

	w, err := NewRotatingWriter(path, 1, 1)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("x"), 1024*1024)
	for i := 0; i < 3; i++ {
		_, err := w.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".2")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "pool.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
