package blob

import (
	"github.com/hangxie/spatialite-go/encoding"
	"github.com/hangxie/spatialite-go/geometry"
)

// EncodeOptions controls EncodeWithOptions.
type EncodeOptions struct {
	// Compress stores intermediate line and ring vertices as float32 deltas.
	Compress bool
	// BigEndian emits byte-order flag 0 instead of the default little-endian.
	BigEndian bool
	// KeepBoundingBox writes the collection's current box instead of
	// recomputing it first.
	KeepBoundingBox bool
}

// Encode serializes c as a little-endian blob. The bounding box of c is
// recomputed in place before writing.
func Encode(c *geometry.Collection, compress bool) ([]byte, error) {
	return EncodeWithOptions(c, EncodeOptions{Compress: compress})
}

// EncodeWithOptions serializes c. The exact size is computed by a sizing pass
// over the same writer, then the buffer is allocated once and filled.
func EncodeWithOptions(c *geometry.Collection, opts EncodeOptions) ([]byte, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyGeometry
	}
	if !opts.KeepBoundingBox {
		c.RecomputeBoundingBox()
	}
	class := ClassOf(c, opts.Compress)

	sizer := &blobWriter{}
	sizer.blob(c, class, opts.Compress)

	w := &blobWriter{
		buf:    make([]byte, sizer.off),
		little: !opts.BigEndian,
		host:   encoding.HostLittleEndian(),
	}
	w.blob(c, class, opts.Compress)
	return w.buf, nil
}

// blobWriter writes into buf, or only advances off when buf is nil.
type blobWriter struct {
	buf    []byte
	off    int
	little bool
	host   bool
}

func (w *blobWriter) u8(b byte) {
	if w.buf != nil {
		w.buf[w.off] = b
	}
	w.off++
}

func (w *blobWriter) i32(v int32) {
	if w.buf != nil {
		encoding.ExportI32(w.buf, w.off, v, w.little, w.host)
	}
	w.off += 4
}

func (w *blobWriter) f32(v float64) {
	if w.buf != nil {
		encoding.ExportF32(w.buf, w.off, float32(v), w.little, w.host)
	}
	w.off += 4
}

func (w *blobWriter) f64(v float64) {
	if w.buf != nil {
		encoding.ExportF64(w.buf, w.off, v, w.little, w.host)
	}
	w.off += 8
}

func (w *blobWriter) blob(c *geometry.Collection, class Class, compress bool) {
	w.u8(MarkerStart)
	if w.little {
		w.u8(OrderLittleEndian)
	} else {
		w.u8(OrderBigEndian)
	}
	w.i32(c.SRID)
	w.f64(c.MinX)
	w.f64(c.MinY)
	w.f64(c.MaxX)
	w.f64(c.MaxY)
	w.u8(MarkerMBR)
	w.i32(class.Tag())

	dims := c.DimensionModel()
	lineClass := Class{Kind: geometry.LineString, Dims: dims, Compressed: compress}
	polyClass := Class{Kind: geometry.Polygon, Dims: dims, Compressed: compress}

	switch class.Kind {
	case geometry.Point:
		w.vertex(c.Points[0].Vertex(), dims)
	case geometry.LineString:
		w.sequence(&c.LineStrings[0].Coords, compress)
	case geometry.Polygon:
		w.polygon(c.Polygons[0], compress)
	default:
		w.i32(int32(c.NumPoints() + c.NumLineStrings() + c.NumPolygons()))
		for _, p := range c.Points {
			w.entityHeader(Class{Kind: geometry.Point, Dims: dims})
			w.vertex(p.Vertex(), dims)
		}
		for _, l := range c.LineStrings {
			w.entityHeader(lineClass)
			w.sequence(&l.Coords, compress)
		}
		for _, p := range c.Polygons {
			w.entityHeader(polyClass)
			w.polygon(p, compress)
		}
	}
	w.u8(MarkerEnd)
}

func (w *blobWriter) entityHeader(class Class) {
	w.u8(MarkerEntity)
	w.i32(class.Tag())
}

func (w *blobWriter) polygon(p *geometry.PolygonGeom, compress bool) {
	w.i32(int32(p.NumRings()))
	for i := range p.NumRings() {
		w.sequence(&p.Ring(i).Coords, compress)
	}
}

// sequence writes a vertex count and the vertices. Deltas are taken from the
// previous original vertex; the first and last vertex are written in full.
func (w *blobWriter) sequence(c *geometry.Coords, compress bool) {
	n := c.NumPoints()
	dims := c.DimensionModel()
	w.i32(int32(n))
	if w.buf == nil {
		w.off += sequenceSize(n, dims, compress)
		return
	}
	var prev geometry.Vertex
	for i := range n {
		v := c.Vertex(i)
		if fullVertex(i, n, compress) {
			w.vertex(v, dims)
		} else {
			w.f32(v.X - prev.X)
			w.f32(v.Y - prev.Y)
			if dims.HasZ() {
				w.f32(v.Z - prev.Z)
			}
			if dims.HasM() {
				w.f64(v.M)
			}
		}
		prev = v
	}
}

func (w *blobWriter) vertex(v geometry.Vertex, dims geometry.DimensionModel) {
	w.f64(v.X)
	w.f64(v.Y)
	if dims.HasZ() {
		w.f64(v.Z)
	}
	if dims.HasM() {
		w.f64(v.M)
	}
}
