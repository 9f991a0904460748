package blob

import (
	"encoding/binary"
	"math"

	"github.com/hangxie/spatialite-go/geometry"
)

// rawWriter builds blobs by hand in either byte order
type rawWriter struct {
	buf   []byte
	order interface {
		binary.ByteOrder
		binary.AppendByteOrder
	}
}

func newRaw(little bool) *rawWriter {
	if little {
		return &rawWriter{order: binary.LittleEndian}
	}
	return &rawWriter{order: binary.BigEndian}
}

func (r *rawWriter) u8(b byte) *rawWriter {
	r.buf = append(r.buf, b)
	return r
}

func (r *rawWriter) i32(v int32) *rawWriter {
	r.buf = r.order.AppendUint32(r.buf, uint32(v))
	return r
}

func (r *rawWriter) f32(v float32) *rawWriter {
	r.buf = r.order.AppendUint32(r.buf, math.Float32bits(v))
	return r
}

func (r *rawWriter) f64(vs ...float64) *rawWriter {
	for _, v := range vs {
		r.buf = r.order.AppendUint64(r.buf, math.Float64bits(v))
	}
	return r
}

// envelope writes the fixed header up to and including the class tag
func (r *rawWriter) envelope(srid, tag int32, box geometry.BoundingBox) *rawWriter {
	r.u8(MarkerStart)
	if r.order == binary.LittleEndian {
		r.u8(OrderLittleEndian)
	} else {
		r.u8(OrderBigEndian)
	}
	return r.i32(srid).f64(box.MinX, box.MinY, box.MaxX, box.MaxY).u8(MarkerMBR).i32(tag)
}

func (r *rawWriter) end() []byte {
	return append(r.buf, MarkerEnd)
}

func rawBlob(little bool, tag int32, payload func(r *rawWriter)) []byte {
	r := newRaw(little).envelope(0, tag, geometry.BoundingBox{})
	payload(r)
	return r.end()
}

func lineString(dims geometry.DimensionModel, vs ...geometry.Vertex) *geometry.Collection {
	c := geometry.NewCollection(dims)
	c.DeclaredType = geometry.LineString
	l := c.AddLineString(len(vs))
	for i, v := range vs {
		l.SetVertex(i, v)
	}
	return c
}

func setRing(r *geometry.Ring, vs ...geometry.Vertex) {
	for i, v := range vs {
		r.SetVertex(i, v)
	}
}

func square(x0, y0, size float64) []geometry.Vertex {
	return []geometry.Vertex{
		{X: x0, Y: y0},
		{X: x0 + size, Y: y0},
		{X: x0 + size, Y: y0 + size},
		{X: x0, Y: y0 + size},
		{X: x0, Y: y0},
	}
}

// mixedCollection holds every entity kind in every channel
func mixedCollection(dims geometry.DimensionModel) *geometry.Collection {
	c := geometry.NewCollection(dims)
	c.SRID = 3857
	c.DeclaredType = geometry.GeometryCollection
	c.AddPointVertex(geometry.Vertex{X: -5, Y: 7, Z: 1, M: 2})

	l := c.AddLineString(4)
	for i := range 4 {
		f := float64(i)
		l.SetVertex(i, geometry.Vertex{X: f * 1.25, Y: -f / 3, Z: f * 10, M: f + 100})
	}

	p := c.AddPolygon(5, 1)
	setRing(p.Exterior, square(0, 0, 10)...)
	hole := p.AddInteriorRing(0, 4)
	setRing(hole,
		geometry.Vertex{X: 2, Y: 2, Z: 5, M: 1},
		geometry.Vertex{X: 4, Y: 2, Z: 5, M: 2},
		geometry.Vertex{X: 3, Y: 4, Z: 5, M: 3},
		geometry.Vertex{X: 2, Y: 2, Z: 5, M: 1},
	)
	return c
}
