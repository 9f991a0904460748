package local

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/spatialite-go/source"
)

func Test_NewLocalFileReader(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.splb")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test data"), 0o644))

	reader, err := NewLocalFileReader(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, reader)
	require.NoError(t, reader.Close())

	reader, err = NewLocalFileReader("/non/existent/file.splb")
	require.Error(t, err)
	require.Nil(t, reader)
}

func Test_LocalReader_SeekAndClone(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.splb")
	require.NoError(t, os.WriteFile(tmpFile, []byte("Hello, World!"), 0o644))

	reader, err := NewLocalFileReader(tmpFile)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reader.Close())
	}()

	pos, err := reader.Seek(7, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(7), pos)

	cloned, err := reader.Clone()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, cloned.Close())
	}()

	buf := make([]byte, 5)
	_, err = io.ReadFull(reader, buf)
	require.NoError(t, err)
	require.Equal(t, "World", string(buf))

	// clones start from the beginning
	_, err = io.ReadFull(cloned, buf)
	require.NoError(t, err)
	require.Equal(t, "Hello", string(buf))

	out, err := source.ReadFile(reader, 0)
	require.NoError(t, err)
	require.Equal(t, "Hello, World!", string(out))
}

func Test_LocalWriter(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "out.splb")

	writer, err := NewLocalFileWriter(tmpFile)
	require.NoError(t, err)
	for _, chunk := range []string{"Hello, ", "", "Writer!"} {
		n, err := writer.Write([]byte(chunk))
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}
	require.NoError(t, writer.Close())

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	require.Equal(t, "Hello, Writer!", string(content))

	_, err = NewLocalFileWriter(filepath.Join(t.TempDir(), "missing", "dir", "out.splb"))
	require.Error(t, err)
}

func Test_LocalWriter_Create(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "created.splb")

	created, err := (&localWriter{}).Create(tmpFile)
	require.NoError(t, err)
	require.NoError(t, source.WriteFile(created, []byte{0x00, 0xFE}))

	_, err = os.Stat(tmpFile)
	require.NoError(t, err)
}
