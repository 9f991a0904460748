package geometry

import "fmt"

// Coords is a fixed-length vertex sequence stored as a flat slice with one
// stride-sized group of float64 values per vertex.
type Coords struct {
	dims DimensionModel
	flat []float64
}

func newCoords(dims DimensionModel, n int) Coords {
	if n < 0 {
		panic(fmt.Sprintf("geometry: negative vertex count %d", n))
	}
	return Coords{dims: dims, flat: make([]float64, n*dims.Stride())}
}

// NumPoints returns the number of vertices, fixed at creation.
func (c *Coords) NumPoints() int {
	return len(c.flat) / c.dims.Stride()
}

// DimensionModel returns the channel layout of the sequence.
func (c *Coords) DimensionModel() DimensionModel {
	return c.dims
}

// Flat exposes the underlying coordinate storage.
func (c *Coords) Flat() []float64 {
	return c.flat
}

func (c *Coords) base(i int) int {
	if i < 0 || i >= c.NumPoints() {
		panic(fmt.Sprintf("geometry: vertex index %d out of range [0,%d)", i, c.NumPoints()))
	}
	return i * c.dims.Stride()
}

// SetVertex stores v at index i.
func (c *Coords) SetVertex(i int, v Vertex) {
	b := c.base(i)
	c.flat[b] = v.X
	c.flat[b+1] = v.Y
	switch c.dims {
	case XYZ:
		c.flat[b+2] = v.Z
	case XYM:
		c.flat[b+2] = v.M
	case XYZM:
		c.flat[b+2] = v.Z
		c.flat[b+3] = v.M
	}
}

// SetXY stores the X and Y channels at index i, leaving Z and M untouched.
func (c *Coords) SetXY(i int, x, y float64) {
	b := c.base(i)
	c.flat[b] = x
	c.flat[b+1] = y
}

// Vertex returns the vertex at index i.
func (c *Coords) Vertex(i int) Vertex {
	b := c.base(i)
	v := Vertex{X: c.flat[b], Y: c.flat[b+1]}
	switch c.dims {
	case XYZ:
		v.Z = c.flat[b+2]
	case XYM:
		v.M = c.flat[b+2]
	case XYZM:
		v.Z = c.flat[b+2]
		v.M = c.flat[b+3]
	}
	return v
}

func (c *Coords) clone() Coords {
	flat := make([]float64, len(c.flat))
	copy(flat, c.flat)
	return Coords{dims: c.dims, flat: flat}
}

// LineStringGeom is an ordered vertex sequence owned by a Collection.
type LineStringGeom struct {
	Coords
}

// Ring is a closed vertex sequence addressed only through its Polygon.
type Ring struct {
	Coords
}

// IsClosed reports whether the first and last vertices are coordinate-equal.
func (r *Ring) IsClosed() bool {
	n := r.NumPoints()
	if n == 0 {
		return false
	}
	return r.Vertex(0) == r.Vertex(n-1)
}

// PolygonGeom is one exterior ring plus zero or more interior rings.
type PolygonGeom struct {
	Exterior  *Ring
	Interiors []*Ring
	dims      DimensionModel
}

// NumInteriors returns the number of interior ring slots.
func (p *PolygonGeom) NumInteriors() int {
	return len(p.Interiors)
}

// AddInteriorRing sizes the interior ring at slot pos with n vertices. The
// slot must have been reserved when the polygon was created.
func (p *PolygonGeom) AddInteriorRing(pos, n int) *Ring {
	if pos < 0 || pos >= len(p.Interiors) {
		panic(fmt.Sprintf("geometry: interior ring %d out of range [0,%d)", pos, len(p.Interiors)))
	}
	r := &Ring{Coords: newCoords(p.dims, n)}
	p.Interiors[pos] = r
	return r
}

// NumRings counts the exterior plus every interior slot.
func (p *PolygonGeom) NumRings() int {
	return 1 + len(p.Interiors)
}

// Ring returns ring i, 0 being the exterior. An interior slot that was never
// sized reads as an empty ring.
func (p *PolygonGeom) Ring(i int) *Ring {
	if i == 0 {
		return p.Exterior
	}
	if i < 0 || i > len(p.Interiors) {
		panic(fmt.Sprintf("geometry: ring %d out of range [0,%d)", i, p.NumRings()))
	}
	if r := p.Interiors[i-1]; r != nil {
		return r
	}
	return &Ring{Coords: Coords{dims: p.dims}}
}

// rings returns the exterior followed by every sized interior.
func (p *PolygonGeom) rings() []*Ring {
	out := make([]*Ring, 0, 1+len(p.Interiors))
	out = append(out, p.Exterior)
	for _, r := range p.Interiors {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
