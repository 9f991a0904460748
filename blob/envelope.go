package blob

import (
	"github.com/hangxie/spatialite-go/encoding"
	"github.com/hangxie/spatialite-go/geometry"
)

// Envelope holds the fixed header fields of a blob.
type Envelope struct {
	LittleEndian bool
	SRID         int32
	BoundingBox  geometry.BoundingBox
	Class        Class
}

// ReadEnvelope reads the header without walking the payload.
func ReadEnvelope(buf []byte) (Envelope, error) {
	if err := checkEnvelope(buf); err != nil {
		return Envelope{}, err
	}
	little := buf[offsetOrder] == OrderLittleEndian
	host := encoding.HostLittleEndian()
	class, err := ParseClass(encoding.ImportI32(buf, offsetClass, little, host))
	if err != nil {
		return Envelope{}, err
	}
	w := &walker{buf: buf, little: little, host: host}
	return Envelope{
		LittleEndian: little,
		SRID:         encoding.ImportI32(buf, offsetSRID, little, host),
		BoundingBox:  w.boundingBox(),
		Class:        class,
	}, nil
}

// ClassFromBlob returns the outer class of buf.
func ClassFromBlob(buf []byte) (Class, error) {
	env, err := ReadEnvelope(buf)
	if err != nil {
		return Class{}, err
	}
	return env.Class, nil
}

func mbrField(buf []byte, off int) (float64, bool) {
	if checkEnvelope(buf) != nil {
		return 0, false
	}
	little := buf[offsetOrder] == OrderLittleEndian
	return encoding.ImportF64(buf, off, little, encoding.HostLittleEndian()), true
}

// MbrMinX returns the stored minimum X; ok is false for a malformed envelope.
func MbrMinX(buf []byte) (float64, bool) { return mbrField(buf, offsetMinX) }

// MbrMinY returns the stored minimum Y; ok is false for a malformed envelope.
func MbrMinY(buf []byte) (float64, bool) { return mbrField(buf, offsetMinY) }

// MbrMaxX returns the stored maximum X; ok is false for a malformed envelope.
func MbrMaxX(buf []byte) (float64, bool) { return mbrField(buf, offsetMaxX) }

// MbrMaxY returns the stored maximum Y; ok is false for a malformed envelope.
func MbrMaxY(buf []byte) (float64, bool) { return mbrField(buf, offsetMaxY) }

// DecodeMBR builds the stored MBR as a closed five-vertex XY polygon, reading
// nothing past the envelope.
func DecodeMBR(buf []byte) (*geometry.Collection, error) {
	if err := checkEnvelope(buf); err != nil {
		return nil, err
	}
	little := buf[offsetOrder] == OrderLittleEndian
	w := &walker{buf: buf, little: little, host: encoding.HostLittleEndian()}
	box := w.boundingBox()

	c := geometry.NewCollection(geometry.XY)
	c.SRID = encoding.ImportI32(buf, offsetSRID, little, w.host)
	c.DeclaredType = geometry.Polygon
	ring := c.AddPolygon(5, 0).Exterior
	ring.SetXY(0, box.MinX, box.MinY)
	ring.SetXY(1, box.MaxX, box.MinY)
	ring.SetXY(2, box.MaxX, box.MaxY)
	ring.SetXY(3, box.MinX, box.MaxY)
	ring.SetXY(4, box.MinX, box.MinY)
	c.BoundingBox = box
	return c, nil
}
