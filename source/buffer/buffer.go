// Package buffer implements source readers and writers over byte slices.
package buffer

import (
	"errors"
	"io"

	"github.com/hangxie/spatialite-go/source"
)

// DefaultCapacity fits a typical geometry blob without growing.
const DefaultCapacity = 512

type bufferFile struct {
	buff []byte
	loc  int
}

func (bf bufferFile) Bytes() []byte {
	return bf.buff
}

type bufferReader struct {
	bufferFile
}

// NewBufferReaderFromBytes reads from a private copy of s.
func NewBufferReaderFromBytes(s []byte) *bufferReader {
	buf := make([]byte, len(s))
	copy(buf, s)
	return NewBufferReaderFromBytesNoAlloc(buf)
}

// NewBufferReaderFromBytesNoAlloc reads from s directly.
func NewBufferReaderFromBytesNoAlloc(s []byte) *bufferReader {
	return &bufferReader{bufferFile{buff: s}}
}

// NewBufferReader drains r into a new reader.
func NewBufferReader(r io.Reader) (*bufferReader, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferReaderFromBytesNoAlloc(buf), nil
}

// Open ignores name; every handle sees the same bytes.
func (r *bufferReader) Open(string) (source.FileReader, error) {
	return NewBufferReaderFromBytesNoAlloc(r.buff), nil
}

func (r *bufferReader) Clone() (source.FileReader, error) {
	return NewBufferReaderFromBytesNoAlloc(r.buff), nil
}

func (r *bufferReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += int64(r.loc)
	case io.SeekEnd:
		offset += int64(len(r.buff))
	default:
		return int64(r.loc), errors.New("invalid whence")
	}
	if offset < 0 {
		return int64(r.loc), errors.New("unable to seek to a location <0")
	}
	r.loc = int(min(offset, int64(len(r.buff))))
	return int64(r.loc), nil
}

func (r *bufferReader) Read(p []byte) (int, error) {
	n := copy(p, r.buff[r.loc:])
	r.loc += n
	if r.loc == len(r.buff) {
		return n, io.EOF
	}
	return n, nil
}

func (r *bufferReader) Close() error {
	return nil
}

type bufferWriter struct {
	bufferFile
}

func NewBufferWriter() *bufferWriter {
	return NewBufferWriterCapacity(DefaultCapacity)
}

func NewBufferWriterCapacity(capacity int) *bufferWriter {
	return &bufferWriter{bufferFile{buff: make([]byte, 0, capacity)}}
}

// NewBufferWriterFromBytesNoAlloc appends to s.
func NewBufferWriterFromBytesNoAlloc(s []byte) *bufferWriter {
	return &bufferWriter{bufferFile{buff: s, loc: len(s)}}
}

// Create ignores name and returns a fresh writer.
func (w *bufferWriter) Create(string) (source.FileWriter, error) {
	return NewBufferWriter(), nil
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	w.buff = append(w.buff, p...)
	w.loc += len(p)
	return len(p), nil
}

func (w *bufferWriter) Close() error {
	return nil
}
