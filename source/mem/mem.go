// Package mem keeps files in a process-wide in-memory filesystem, mostly
// for tests and for piping archives between commands without touching disk.
package mem

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hangxie/spatialite-go/source"
)

var memFs afero.Fs

// OnCloseFunc is called when a mem writer is closed, with a reader over the
// file that was just written.
type OnCloseFunc func(string, io.Reader) error

// SetInMemFileFs replaces the shared in-memory filesystem.
func SetInMemFileFs(fs *afero.Fs) {
	memFs = *fs
}

// GetMemFileFs returns the shared in-memory filesystem, creating it on first use.
func GetMemFileFs() afero.Fs {
	if memFs == nil {
		memFs = afero.NewMemMapFs()
	}
	return memFs
}

type memWriter struct {
	filePath string
	file     afero.File
	onClose  OnCloseFunc
}

func NewMemFileWriter(name string, f OnCloseFunc) (source.FileWriter, error) {
	GetMemFileFs()
	w := &memWriter{onClose: f}
	return w.Create(name)
}

func (w *memWriter) Create(name string) (source.FileWriter, error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := memFs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := memFs.Create(name)
	if err != nil {
		return nil, err
	}
	return &memWriter{filePath: name, file: file, onClose: w.onClose}, nil
}

func (w *memWriter) Write(b []byte) (int, error) {
	return w.file.Write(b)
}

func (w *memWriter) Close() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	if w.onClose == nil {
		return nil
	}
	file, err := memFs.Open(w.filePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	if err := w.onClose(filepath.Base(w.filePath), file); err != nil {
		return fmt.Errorf("on close of %s: %w", w.filePath, err)
	}
	return nil
}

type memReader struct {
	filePath string
	file     afero.File
}

func NewMemFileReader(name string) (source.FileReader, error) {
	GetMemFileFs()
	return (&memReader{}).Open(name)
}

func (r *memReader) Open(name string) (source.FileReader, error) {
	file, err := memFs.Open(name)
	if err != nil {
		return nil, err
	}
	return &memReader{filePath: name, file: file}, nil
}

func (r *memReader) Clone() (source.FileReader, error) {
	return r.Open(r.filePath)
}

func (r *memReader) Seek(offset int64, whence int) (int64, error) {
	return r.file.Seek(offset, whence)
}

func (r *memReader) Read(b []byte) (int, error) {
	return r.file.Read(b)
}

func (r *memReader) Close() error {
	return r.file.Close()
}
