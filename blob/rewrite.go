package blob

import "github.com/hangxie/spatialite-go/encoding"

// Compress re-encodes buf with delta-compressed lines and rings.
func Compress(buf []byte) ([]byte, error) {
	return reencode(buf, true)
}

// Uncompress re-encodes buf with every vertex stored in full. Precision lost
// by an earlier compression is not recovered.
func Uncompress(buf []byte) ([]byte, error) {
	return reencode(buf, false)
}

func reencode(buf []byte, compress bool) ([]byte, error) {
	c, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	return Encode(c, compress)
}

// SetSRID returns a copy of a well-formed buf carrying srid, written in the
// blob's own byte order.
func SetSRID(buf []byte, srid int32) ([]byte, error) {
	if err := Validate(buf); err != nil {
		return nil, err
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	little := out[offsetOrder] == OrderLittleEndian
	encoding.ExportI32(out, offsetSRID, srid, little, encoding.HostLittleEndian())
	return out, nil
}
