// Package encoding provides the fixed-width primitives used by the geometry
// blob codec: 32-bit integers, 32-bit floats and 64-bit doubles read from and
// written to a byte buffer in a declared byte order.
//
// None of the Import/Export functions check bounds. Callers validate buffer
// length before touching a field.
package encoding

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// hostLittleEndian is probed once at package initialisation and never changes.
var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// HostLittleEndian reports whether the running machine stores integers
// least-significant byte first.
func HostLittleEndian() bool {
	return hostLittleEndian
}

// Order returns the binary.ByteOrder matching a little-endian flag.
func Order(little bool) binary.ByteOrder {
	if little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func swap32(v uint32, srcLittle, hostLittle bool) uint32 {
	if srcLittle != hostLittle {
		return bits.ReverseBytes32(v)
	}
	return v
}

func swap64(v uint64, srcLittle, hostLittle bool) uint64 {
	if srcLittle != hostLittle {
		return bits.ReverseBytes64(v)
	}
	return v
}

// ImportU32 reads an unsigned 32-bit integer stored at buf[off:off+4].
func ImportU32(buf []byte, off int, srcLittle, hostLittle bool) uint32 {
	return swap32(binary.NativeEndian.Uint32(buf[off:off+4]), srcLittle, hostLittle)
}

// ImportI32 reads a signed 32-bit integer stored at buf[off:off+4].
func ImportI32(buf []byte, off int, srcLittle, hostLittle bool) int32 {
	return int32(ImportU32(buf, off, srcLittle, hostLittle))
}

// ImportF32 reads an IEEE-754 single stored at buf[off:off+4].
func ImportF32(buf []byte, off int, srcLittle, hostLittle bool) float32 {
	return math.Float32frombits(ImportU32(buf, off, srcLittle, hostLittle))
}

// ImportF64 reads an IEEE-754 double stored at buf[off:off+8].
func ImportF64(buf []byte, off int, srcLittle, hostLittle bool) float64 {
	v := swap64(binary.NativeEndian.Uint64(buf[off:off+8]), srcLittle, hostLittle)
	return math.Float64frombits(v)
}

// ExportU32 writes v at buf[off:off+4] in the target byte order.
func ExportU32(buf []byte, off int, v uint32, dstLittle, hostLittle bool) {
	binary.NativeEndian.PutUint32(buf[off:off+4], swap32(v, dstLittle, hostLittle))
}

// ExportI32 writes v at buf[off:off+4] in the target byte order.
func ExportI32(buf []byte, off int, v int32, dstLittle, hostLittle bool) {
	ExportU32(buf, off, uint32(v), dstLittle, hostLittle)
}

// ExportF32 writes v at buf[off:off+4] in the target byte order.
func ExportF32(buf []byte, off int, v float32, dstLittle, hostLittle bool) {
	ExportU32(buf, off, math.Float32bits(v), dstLittle, hostLittle)
}

// ExportF64 writes v at buf[off:off+8] in the target byte order.
func ExportF64(buf []byte, off int, v float64, dstLittle, hostLittle bool) {
	binary.NativeEndian.PutUint64(buf[off:off+8], swap64(math.Float64bits(v), dstLittle, hostLittle))
}
