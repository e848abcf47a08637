package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWriter(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name          string
		filename      string
		mode          CreateMode
		wantErr       bool
		setupExisting bool // Create file before test
	}{
		{
			name:     "create new file truncate mode",
			filename: "test1.bip",
			mode:     ModeTruncate,
		},
		{
			name:     "create new file exclusive mode",
			filename: "test2.bip",
			mode:     ModeExclusive,
		},
		{
			name:          "truncate existing file",
			filename:      "test3.bip",
			mode:          ModeTruncate,
			setupExisting: true,
		},
		{
			name:          "exclusive mode fails on existing",
			filename:      "test4.bip",
			mode:          ModeExclusive,
			setupExisting: true,
			wantErr:       true,
		},
		{
			name:     "invalid mode",
			filename: "test5.bip",
			mode:     CreateMode(7),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.filename)

			if tt.setupExisting {
				require.NoError(t, os.WriteFile(path, []byte("existing content"), 0o600))
			}

			w, err := NewFileWriter(path, tt.mode)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, w)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, w)
			defer w.Close()

			size, err := w.Size()
			require.NoError(t, err)
			assert.Equal(t, int64(0), size, "new or truncated file starts empty")
			assert.Equal(t, path, w.Name())
		})
	}
}

func TestFileWriter_Reserve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reserve.bip")
	w, err := NewFileWriter(path, ModeTruncate)
	require.NoError(t, err)

	_, err = w.WriteAt([]byte("HDR"), 0)
	require.NoError(t, err)
	require.NoError(t, w.Reserve(64))

	size, err := w.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(64), size)

	// Never shrinks.
	require.NoError(t, w.Reserve(10))
	size, err = w.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(64), size)

	buf := make([]byte, 5)
	_, err = w.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{'H', 'D', 'R', 0, 0}, buf)

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
}

func TestFileWriter_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.bip")
	w, err := NewFileWriter(path, ModeTruncate)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "Close is idempotent")

	_, err = w.WriteAt([]byte{1}, 0)
	assert.Error(t, err)
	_, err = w.ReadAt(make([]byte, 1), 0)
	assert.Error(t, err)
	assert.Error(t, w.Reserve(8))
	assert.Error(t, w.Flush())
	assert.Equal(t, "", w.Name())
}

func TestFileWriter_WriteAtEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bip")
	w, err := NewFileWriter(path, ModeTruncate)
	require.NoError(t, err)
	defer w.Close()

	n, err := w.WriteAt(nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
