// Package writerfile adapts a plain io.Writer, such as stdout, to
// source.FileWriter.
package writerfile

import (
	"io"

	"github.com/hangxie/spatialite-go/source"
)

type flusher interface {
	Flush() error
}

type writerFile struct {
	writer io.Writer
}

// NewWriterFile wraps w. Close flushes w when it buffers (bufio.Writer and
// the like) but never closes it.
func NewWriterFile(w io.Writer) source.FileWriter {
	return &writerFile{writer: w}
}

// Create returns the receiver; the name is ignored.
func (w *writerFile) Create(string) (source.FileWriter, error) {
	return w, nil
}

func (w *writerFile) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

func (w *writerFile) Close() error {
	if f, ok := w.writer.(flusher); ok {
		return f.Flush()
	}
	return nil
}
