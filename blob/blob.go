// Package blob implements the SpatiaLite internal geometry BLOB format: a
// fixed 44-byte envelope (markers, byte order, SRID, MBR, class tag) around a
// class-specific payload of points, line-strings and polygons, optionally
// delta-compressed.
//
// Layout:
//
//	offset  size  field
//	0       1     START marker (0x00)
//	1       1     byte order (0 big-endian, 1 little-endian)
//	2       4     srid
//	6       32    min_x, min_y, max_x, max_y
//	38      1     MBR marker (0x7C)
//	39      4     class tag
//	43      ...   payload
//	last    1     END marker (0xFE)
package blob

import "errors"

const (
	MarkerStart  byte = 0x00
	MarkerMBR    byte = 0x7C
	MarkerEnd    byte = 0xFE
	MarkerEntity byte = 0x69

	OrderBigEndian    byte = 0
	OrderLittleEndian byte = 1

	offsetOrder   = 1
	offsetSRID    = 2
	offsetMinX    = 6
	offsetMinY    = 14
	offsetMaxX    = 22
	offsetMaxY    = 30
	offsetMBR     = 38
	offsetClass   = 39
	PayloadOffset = 43

	// EnvelopeSize counts every fixed byte, END marker included.
	EnvelopeSize = 44
	MinSize      = 45

	entityHeaderSize = 5
)

var (
	ErrMalformedEnvelope = errors.New("malformed geometry blob envelope")
	ErrUnknownClass      = errors.New("unknown geometry class tag")
	ErrTruncated         = errors.New("truncated geometry payload")
	ErrInvalidEntity     = errors.New("invalid geometry entity")
	ErrTrailingBytes     = errors.New("unexpected bytes after geometry payload")
	ErrEmptyGeometry     = errors.New("empty geometry")
	ErrNotGeoPackage     = errors.New("not a GeoPackage geometry blob")
)
