// Package archive stores a sequence of geometry blobs in one file.
//
// An archive starts with a 6 byte header:
//
//	"SPLA" | version (1) | compress codec
//
// followed by one record per blob:
//
//	raw length (uint32 LE) | stored length (uint32 LE) | stored bytes
//
// Every record is compressed on its own so a damaged record does not take
// the rest of the file with it, and every blob is validated on the way in
// and on the way out.
package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/hangxie/spatialite-go/blob"
	"github.com/hangxie/spatialite-go/compress"
	"github.com/hangxie/spatialite-go/encoding"
	"github.com/hangxie/spatialite-go/geometry"
)

const (
	Magic      = "SPLA"
	Version    = 1
	headerSize = 6
)

var (
	ErrInvalidHeader = errors.New("archive: invalid header")
	ErrCorruptRecord = errors.New("archive: corrupt record")
)

// Writer appends validated blobs to an archive.
type Writer struct {
	w     io.Writer
	codec compress.Codec
	count int
}

// NewWriter writes the archive header to w. The codec must be compiled in.
func NewWriter(w io.Writer, codec compress.Codec) (*Writer, error) {
	if !supported(codec) {
		return nil, fmt.Errorf("unsupported compress method: %v", codec)
	}
	header := append([]byte(Magic), Version, byte(codec))
	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write archive header: %w", err)
	}
	return &Writer{w: w, codec: codec}, nil
}

func supported(codec compress.Codec) bool {
	for _, c := range compress.Codecs() {
		if c == codec {
			return true
		}
	}
	return false
}

// Append writes buf as the next record. Blobs that are not well formed are
// rejected and nothing is written.
func (w *Writer) Append(buf []byte) error {
	if err := blob.Validate(buf); err != nil {
		return fmt.Errorf("record %d: %w", w.count, err)
	}
	stored, err := compress.CompressWithError(buf, w.codec)
	if err != nil {
		return fmt.Errorf("record %d: %w", w.count, err)
	}
	if err := encoding.WriteUint32LE(w.w, uint32(len(buf))); err != nil {
		return err
	}
	if err := encoding.WriteUint32LE(w.w, uint32(len(stored))); err != nil {
		return err
	}
	if _, err := w.w.Write(stored); err != nil {
		return fmt.Errorf("record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// AppendCollection encodes c and appends the result.
func (w *Writer) AppendCollection(c *geometry.Collection, opts blob.EncodeOptions) error {
	buf, err := blob.EncodeWithOptions(c, opts)
	if err != nil {
		return fmt.Errorf("record %d: %w", w.count, err)
	}
	return w.Append(buf)
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// Reader iterates over the records of an archive.
type Reader struct {
	r     io.Reader
	codec compress.Codec
	count int
}

// NewReader reads and checks the archive header.
func NewReader(r io.Reader) (*Reader, error) {
	header, err := encoding.ReadBytes(r, headerSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if string(header[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, header[:4])
	}
	if header[4] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, header[4])
	}
	codec := compress.Codec(header[5])
	if !supported(codec) {
		return nil, fmt.Errorf("%w: unsupported compress method %v", ErrInvalidHeader, codec)
	}
	return &Reader{r: r, codec: codec}, nil
}

func (r *Reader) Codec() compress.Codec {
	return r.codec
}

// Next returns the next blob, or io.EOF once the archive is exhausted.
func (r *Reader) Next() ([]byte, error) {
	rawLen, err := encoding.ReadUint32LE(r.r)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptRecord, r.count, err)
	}
	storedLen, err := encoding.ReadUint32LE(r.r)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptRecord, r.count, unexpected(err))
	}
	if maxSize := compress.GetMaxDecompressedSize(); maxSize > 0 && int64(storedLen) > maxSize {
		return nil, fmt.Errorf("%w %d: stored length %d exceeds maximum size %d", ErrCorruptRecord, r.count, storedLen, maxSize)
	}
	stored, err := encoding.ReadBytes(r.r, int(storedLen))
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptRecord, r.count, err)
	}
	buf, err := compress.UncompressWithExpectedSize(stored, r.codec, int64(rawLen))
	if err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptRecord, r.count, err)
	}
	if err := blob.Validate(buf); err != nil {
		return nil, fmt.Errorf("%w %d: %w", ErrCorruptRecord, r.count, err)
	}
	r.count++
	return buf, nil
}

// NextCollection decodes the next blob.
func (r *Reader) NextCollection() (*geometry.Collection, error) {
	buf, err := r.Next()
	if err != nil {
		return nil, err
	}
	return blob.Decode(buf)
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadAll returns every blob in the archive read from r.
func ReadAll(r io.Reader) ([][]byte, error) {
	ar, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	var blobs [][]byte
	for {
		buf, err := ar.Next()
		if err == io.EOF {
			return blobs, nil
		}
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, buf)
	}
}
