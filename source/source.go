// Package source abstracts the files blobs and archives are read from and
// written to.
package source

import (
	"bufio"
	"fmt"
	"io"
)

const bufferSize = 4096

type FileReader interface {
	io.Seeker
	io.Reader
	io.Closer
	Open(name string) (FileReader, error)
	Clone() (FileReader, error)
}

type FileWriter interface {
	io.Writer
	io.Closer
	Create(name string) (FileWriter, error)
}

// NewBufferedReader positions r at offset and wraps it for sequential reads.
// A negative offset is treated as 0.
func NewBufferedReader(r FileReader, offset int64) (*bufio.Reader, error) {
	if _, err := r.Seek(max(offset, 0), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", offset, err)
	}
	return bufio.NewReaderSize(r, bufferSize), nil
}

// ReadFile reads the whole of r from the start, refusing anything larger
// than maxSize when maxSize is positive.
func ReadFile(r FileReader, maxSize int64) ([]byte, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek to end: %w", err)
	}
	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("file size %d exceeds maximum size %d", size, maxSize)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w", size, err)
	}
	return buf, nil
}

// WriteFile writes buf to w and closes it, reporting the first error.
func WriteFile(w FileWriter, buf []byte) error {
	if _, err := w.Write(buf); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
