package git

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLogCompressed(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	files := map[string][]byte{
		"plain.log":    []byte(sampleLog),
		"history.gz":   gz.Bytes(),
		"history.zst":  zs.Bytes(),
		"named.log.gz": gz.Bytes(),
	}

	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			rc, err := OpenLog(path)
			require.NoError(t, err)
			defer rc.Close()

			l, err := Parse(rc)
			require.NoError(t, err)
			assert.Len(t, l.Commits, 3)
			assert.Equal(t, "3f2a1c", l.Commits[0].ID)
		})
	}
}

func TestOpenLogMissingFile(t *testing.T) {
	_, err := OpenLog(filepath.Join(t.TempDir(), "missing.log"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecompressShortInput(t *testing.T) {
	rc, err := Decompress(bytes.NewReader([]byte("ab")))
	require.NoError(t, err)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}
