// Package local reads and writes files on the operating system's filesystem.
package local

import (
	"github.com/spf13/afero"

	"github.com/hangxie/spatialite-go/source"
)

var localFs = afero.NewOsFs()

type localReader struct {
	filePath string
	file     afero.File
}

func NewLocalFileReader(name string) (source.FileReader, error) {
	return (&localReader{}).Open(name)
}

func (r *localReader) Open(name string) (source.FileReader, error) {
	file, err := localFs.Open(name)
	if err != nil {
		return nil, err
	}
	return &localReader{filePath: name, file: file}, nil
}

// Clone opens an independent handle on the same file.
func (r *localReader) Clone() (source.FileReader, error) {
	return r.Open(r.filePath)
}

func (r *localReader) Seek(offset int64, whence int) (int64, error) {
	return r.file.Seek(offset, whence)
}

func (r *localReader) Read(b []byte) (int, error) {
	return r.file.Read(b)
}

func (r *localReader) Close() error {
	return r.file.Close()
}

type localWriter struct {
	filePath string
	file     afero.File
}

func NewLocalFileWriter(name string) (source.FileWriter, error) {
	return (&localWriter{}).Create(name)
}

func (w *localWriter) Create(name string) (source.FileWriter, error) {
	file, err := localFs.Create(name)
	if err != nil {
		return nil, err
	}
	return &localWriter{filePath: name, file: file}, nil
}

func (w *localWriter) Write(b []byte) (int, error) {
	return w.file.Write(b)
}

func (w *localWriter) Close() error {
	return w.file.Close()
}
