// Package gpkg reads and writes GeoPackage Binary (GPB) geometry blobs: an
// 8-byte header, an optional envelope and an ISO WKB geometry.
package gpkg

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/hangxie/spatialite-go/encoding"
	"github.com/hangxie/spatialite-go/geometry"
	"github.com/hangxie/spatialite-go/interop"
)

const (
	Magic1     byte = 'G'
	Magic2     byte = 'P'
	Version    byte = 0
	HeaderSize      = 8

	flagLittleEndian byte = 0x01
	flagEmpty        byte = 0x10
	flagExtended     byte = 0x20

	// EnvelopeXY is the only envelope the encoder writes.
	EnvelopeXY = 1
)

var (
	ErrInvalidHeader = errors.New("invalid GeoPackage binary header")
	ErrExtendedType  = errors.New("extended GeoPackage binary type is not supported")
	ErrEmptyGeometry = errors.New("empty geometry")
)

// envelopeSizes maps the envelope indicator to the envelope byte size.
var envelopeSizes = map[int]int{0: 0, 1: 32, 2: 48, 3: 48, 4: 64}

// Envelope is the optional bounding box of a GPB header.
type Envelope struct {
	MinX, MaxX, MinY, MaxY float64
	HasZ                   bool
	MinZ, MaxZ             float64
	HasM                   bool
	MinM, MaxM             float64
}

// Header is the parsed fixed part of a GPB blob.
type Header struct {
	LittleEndian bool
	Empty        bool
	SRID         int32
	// EnvelopeCode is 0 (none), 1 (XY), 2 (XYZ), 3 (XYM) or 4 (XYZM).
	EnvelopeCode int
	Envelope     Envelope
}

// Size is the header length including the envelope.
func (h Header) Size() int {
	return HeaderSize + envelopeSizes[h.EnvelopeCode]
}

// ParseHeader checks the signature, version and flags of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(buf))
	}
	if buf[0] != Magic1 || buf[1] != Magic2 {
		return Header{}, fmt.Errorf("%w: bad magic", ErrInvalidHeader)
	}
	if buf[2] != Version {
		return Header{}, fmt.Errorf("%w: version %d", ErrInvalidHeader, buf[2])
	}
	flags := buf[3]
	h := Header{
		LittleEndian: flags&flagLittleEndian != 0,
		Empty:        flags&flagEmpty != 0,
		EnvelopeCode: int(flags>>1) & 0x07,
	}
	size, ok := envelopeSizes[h.EnvelopeCode]
	if !ok {
		return Header{}, fmt.Errorf("%w: envelope indicator %d", ErrInvalidHeader, h.EnvelopeCode)
	}
	if flags&flagExtended != 0 {
		return Header{}, ErrExtendedType
	}
	if len(buf) < HeaderSize+size {
		return Header{}, fmt.Errorf("%w: envelope needs %d bytes", ErrInvalidHeader, size)
	}
	host := encoding.HostLittleEndian()
	h.SRID = encoding.ImportI32(buf, 4, h.LittleEndian, host)

	vals := make([]float64, size/8)
	for i := range vals {
		vals[i] = encoding.ImportF64(buf, HeaderSize+8*i, h.LittleEndian, host)
	}
	if len(vals) >= 4 {
		h.Envelope.MinX, h.Envelope.MaxX = vals[0], vals[1]
		h.Envelope.MinY, h.Envelope.MaxY = vals[2], vals[3]
	}
	switch h.EnvelopeCode {
	case 2:
		h.Envelope.HasZ = true
		h.Envelope.MinZ, h.Envelope.MaxZ = vals[4], vals[5]
	case 3:
		h.Envelope.HasM = true
		h.Envelope.MinM, h.Envelope.MaxM = vals[4], vals[5]
	case 4:
		h.Envelope.HasZ, h.Envelope.HasM = true, true
		h.Envelope.MinZ, h.Envelope.MaxZ = vals[4], vals[5]
		h.Envelope.MinM, h.Envelope.MaxM = vals[6], vals[7]
	}
	return h, nil
}

// IsValid reports whether buf carries a supported GPB header.
func IsValid(buf []byte) bool {
	_, err := ParseHeader(buf)
	return err == nil
}

// SRID returns the SRID stored in the header.
func SRID(buf []byte) (int32, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return 0, err
	}
	return h.SRID, nil
}

// ReadEnvelope returns the header envelope; ok is false when none is stored.
func ReadEnvelope(buf []byte) (env Envelope, ok bool, err error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return Envelope{}, false, err
	}
	return h.Envelope, h.EnvelopeCode != 0, nil
}

// Decode parses the WKB body of buf. The SRID comes from the header and the
// bounding box is recomputed from the coordinates.
func Decode(buf []byte) (*geometry.Collection, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	t, err := wkb.Unmarshal(buf[h.Size():])
	if err != nil {
		return nil, fmt.Errorf("failed to decode WKB body: %w", err)
	}
	c, err := interop.FromGeom(t)
	if err != nil {
		if errors.Is(err, interop.ErrEmptyGeometry) {
			return nil, ErrEmptyGeometry
		}
		return nil, err
	}
	c.SRID = h.SRID
	return c, nil
}

// Encode writes c as a little-endian GPB blob with an XY envelope, whatever
// the dimension model of c.
func Encode(c *geometry.Collection) ([]byte, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyGeometry
	}
	t, err := interop.ToGeom(c)
	if err != nil {
		return nil, err
	}
	body, err := wkb.Marshal(t, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to encode WKB body: %w", err)
	}
	c.RecomputeBoundingBox()

	host := encoding.HostLittleEndian()
	head := HeaderSize + envelopeSizes[EnvelopeXY]
	out := make([]byte, head+len(body))
	out[0], out[1], out[2] = Magic1, Magic2, Version
	out[3] = flagLittleEndian | EnvelopeXY<<1
	encoding.ExportI32(out, 4, c.SRID, true, host)
	encoding.ExportF64(out, 8, c.MinX, true, host)
	encoding.ExportF64(out, 16, c.MaxX, true, host)
	encoding.ExportF64(out, 24, c.MinY, true, host)
	encoding.ExportF64(out, 32, c.MaxY, true, host)
	copy(out[head:], body)
	return out, nil
}

// Codec exposes the package functions as a value, for callers that select a
// container format at runtime.
type Codec struct{}

func (Codec) IsValid(buf []byte) bool                         { return IsValid(buf) }
func (Codec) Decode(buf []byte) (*geometry.Collection, error) { return Decode(buf) }
func (Codec) Encode(c *geometry.Collection) ([]byte, error)   { return Encode(c) }
