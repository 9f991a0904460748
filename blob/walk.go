package blob

import (
	"fmt"

	"github.com/hangxie/spatialite-go/encoding"
	"github.com/hangxie/spatialite-go/geometry"
)

// walker performs the structural walk shared by the decoder and the
// validator. With coll == nil it only checks sizes and markers.
type walker struct {
	buf    []byte
	off    int
	end    int
	little bool
	host   bool
	coll   *geometry.Collection

	sawCompressed bool
}

// checkEnvelope validates the fixed markers and the byte-order flag.
func checkEnvelope(buf []byte) error {
	switch {
	case len(buf) < MinSize:
		return fmt.Errorf("%w: %d bytes", ErrMalformedEnvelope, len(buf))
	case buf[0] != MarkerStart:
		return fmt.Errorf("%w: bad start marker 0x%02x", ErrMalformedEnvelope, buf[0])
	case buf[len(buf)-1] != MarkerEnd:
		return fmt.Errorf("%w: bad end marker 0x%02x", ErrMalformedEnvelope, buf[len(buf)-1])
	case buf[offsetMBR] != MarkerMBR:
		return fmt.Errorf("%w: bad MBR marker 0x%02x", ErrMalformedEnvelope, buf[offsetMBR])
	case buf[offsetOrder] != OrderBigEndian && buf[offsetOrder] != OrderLittleEndian:
		return fmt.Errorf("%w: bad byte order flag 0x%02x", ErrMalformedEnvelope, buf[offsetOrder])
	}
	return nil
}

// walk parses buf and, when build is set, returns the decoded collection.
func walk(buf []byte, build bool) (*geometry.Collection, *walker, error) {
	if err := checkEnvelope(buf); err != nil {
		return nil, nil, err
	}
	w := &walker{
		buf:    buf,
		off:    PayloadOffset,
		end:    len(buf) - 1,
		little: buf[offsetOrder] == OrderLittleEndian,
		host:   encoding.HostLittleEndian(),
	}
	class, err := ParseClass(encoding.ImportI32(buf, offsetClass, w.little, w.host))
	if err != nil {
		return nil, nil, err
	}
	if build {
		w.coll = geometry.NewCollection(class.Dims)
		w.coll.SRID = encoding.ImportI32(buf, offsetSRID, w.little, w.host)
		w.coll.DeclaredType = class.Kind
		w.coll.BoundingBox = w.boundingBox()
	}

	if class.Elementary() {
		err = w.entity(class)
	} else {
		err = w.collection(class)
	}
	if err != nil {
		return nil, nil, err
	}
	if w.off != w.end {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, w.end-w.off)
	}
	return w.coll, w, nil
}

func (w *walker) boundingBox() geometry.BoundingBox {
	return geometry.BoundingBox{
		MinX: encoding.ImportF64(w.buf, offsetMinX, w.little, w.host),
		MinY: encoding.ImportF64(w.buf, offsetMinY, w.little, w.host),
		MaxX: encoding.ImportF64(w.buf, offsetMaxX, w.little, w.host),
		MaxY: encoding.ImportF64(w.buf, offsetMaxY, w.little, w.host),
	}
}

func (w *walker) need(n int) error {
	if n < 0 || n > w.end-w.off {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, w.off, w.end-w.off)
	}
	return nil
}

func (w *walker) i32() int32 {
	v := encoding.ImportI32(w.buf, w.off, w.little, w.host)
	w.off += 4
	return v
}

func (w *walker) f32() float64 {
	v := encoding.ImportF32(w.buf, w.off, w.little, w.host)
	w.off += 4
	return float64(v)
}

func (w *walker) f64() float64 {
	v := encoding.ImportF64(w.buf, w.off, w.little, w.host)
	w.off += 8
	return v
}

// count reads a non-negative element count.
func (w *walker) count(what string) (int, error) {
	if err := w.need(4); err != nil {
		return 0, err
	}
	n := w.i32()
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s count %d", ErrInvalidEntity, what, n)
	}
	return int(n), nil
}

func (w *walker) collection(outer Class) error {
	n, err := w.count("entity")
	if err != nil {
		return err
	}
	// every entity needs at least its header
	if err := w.need(n * entityHeaderSize); err != nil {
		return err
	}
	want := entityKind(outer.Kind)
	for i := range n {
		if err := w.need(entityHeaderSize); err != nil {
			return err
		}
		if m := w.buf[w.off]; m != MarkerEntity {
			return fmt.Errorf("%w: entity %d has marker 0x%02x", ErrInvalidEntity, i, m)
		}
		w.off++
		class, err := ParseClass(w.i32())
		if err != nil {
			return err
		}
		switch {
		case !class.Elementary():
			return fmt.Errorf("%w: nested %s in %s", ErrInvalidEntity, class, outer)
		case class.Dims != outer.Dims:
			return fmt.Errorf("%w: %s entity in %s", ErrInvalidEntity, class, outer)
		case want != geometry.Unknown && class.Kind != want:
			return fmt.Errorf("%w: %s entity in %s", ErrInvalidEntity, class, outer)
		}
		if err := w.entity(class); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) entity(class Class) error {
	switch class.Kind {
	case geometry.Point:
		return w.point(class.Dims)
	case geometry.LineString:
		return w.lineString(class)
	default:
		return w.polygon(class)
	}
}

func (w *walker) point(dims geometry.DimensionModel) error {
	if err := w.need(fullVertexSize(dims)); err != nil {
		return err
	}
	if w.coll == nil {
		w.off += fullVertexSize(dims)
		return nil
	}
	w.coll.AddPointVertex(w.fullVertex(dims))
	return nil
}

func (w *walker) lineString(class Class) error {
	n, err := w.count("vertex")
	if err != nil {
		return err
	}
	if err := w.need(sequenceSize(n, class.Dims, class.Compressed)); err != nil {
		return err
	}
	var dst *geometry.Coords
	if w.coll != nil {
		dst = &w.coll.AddLineString(n).Coords
	}
	w.sequence(n, class, dst)
	return nil
}

func (w *walker) polygon(class Class) error {
	rings, err := w.count("ring")
	if err != nil {
		return err
	}
	if rings == 0 {
		return fmt.Errorf("%w: polygon without exterior ring", ErrInvalidEntity)
	}
	// every ring needs at least its vertex count
	if err := w.need(rings * 4); err != nil {
		return err
	}
	var poly *geometry.PolygonGeom
	for r := range rings {
		n, err := w.count("vertex")
		if err != nil {
			return err
		}
		if err := w.need(sequenceSize(n, class.Dims, class.Compressed)); err != nil {
			return err
		}
		var dst *geometry.Coords
		if w.coll != nil {
			if r == 0 {
				poly = w.coll.AddPolygon(n, rings-1)
				dst = &poly.Exterior.Coords
			} else {
				dst = &poly.AddInteriorRing(r-1, n).Coords
			}
		}
		w.sequence(n, class, dst)
	}
	return nil
}

// sequence reads n vertices whose size has already been checked. Delta
// vertices are relative to the previously decoded vertex.
func (w *walker) sequence(n int, class Class, dst *geometry.Coords) {
	if class.Compressed {
		w.sawCompressed = true
	}
	if dst == nil {
		w.off += sequenceSize(n, class.Dims, class.Compressed)
		return
	}
	dims := class.Dims
	var prev geometry.Vertex
	for i := range n {
		var v geometry.Vertex
		if fullVertex(i, n, class.Compressed) {
			v = w.fullVertex(dims)
		} else {
			v.X = prev.X + w.f32()
			v.Y = prev.Y + w.f32()
			if dims.HasZ() {
				v.Z = prev.Z + w.f32()
			}
			if dims.HasM() {
				v.M = w.f64()
			}
		}
		dst.SetVertex(i, v)
		prev = v
	}
}

func (w *walker) fullVertex(dims geometry.DimensionModel) geometry.Vertex {
	v := geometry.Vertex{X: w.f64(), Y: w.f64()}
	if dims.HasZ() {
		v.Z = w.f64()
	}
	if dims.HasM() {
		v.M = w.f64()
	}
	return v
}
