package geometry

import "fmt"

// Collection is the top-level geometry entity. It exclusively owns its
// points, line-strings and polygons, kept in insertion order. Every child
// shares the collection's dimension model.
//
// A Collection is not safe for concurrent mutation.
type Collection struct {
	SRID         int32
	DeclaredType GeometryType
	BoundingBox

	Points      []*PointGeom
	LineStrings []*LineStringGeom
	Polygons    []*PolygonGeom

	dims DimensionModel
}

// NewCollection returns an empty collection with SRID 0, an Unknown declared
// type and an inverted bounding box.
func NewCollection(dims DimensionModel) *Collection {
	if !dims.Valid() {
		panic(fmt.Sprintf("geometry: invalid dimension model %d", int(dims)))
	}
	return &Collection{
		BoundingBox: InvertedBoundingBox(),
		dims:        dims,
	}
}

// DimensionModel returns the channel layout shared by every child.
func (c *Collection) DimensionModel() DimensionModel {
	return c.dims
}

func (c *Collection) requireDims(want DimensionModel, op string) {
	if c.dims != want {
		panic(fmt.Sprintf("geometry: %s on a %s collection", op, c.dims))
	}
}

// AddPoint appends an XY point.
func (c *Collection) AddPoint(x, y float64) *PointGeom {
	c.requireDims(XY, "AddPoint")
	return c.appendPoint(&PointGeom{X: x, Y: y})
}

// AddPointXYZ appends an XYZ point.
func (c *Collection) AddPointXYZ(x, y, z float64) *PointGeom {
	c.requireDims(XYZ, "AddPointXYZ")
	return c.appendPoint(&PointGeom{X: x, Y: y, Z: z})
}

// AddPointXYM appends an XYM point.
func (c *Collection) AddPointXYM(x, y, m float64) *PointGeom {
	c.requireDims(XYM, "AddPointXYM")
	return c.appendPoint(&PointGeom{X: x, Y: y, M: m})
}

// AddPointXYZM appends an XYZM point.
func (c *Collection) AddPointXYZM(x, y, z, m float64) *PointGeom {
	c.requireDims(XYZM, "AddPointXYZM")
	return c.appendPoint(&PointGeom{X: x, Y: y, Z: z, M: m})
}

// AddPointVertex appends a point from v, keeping only the channels of the
// collection's dimension model.
func (c *Collection) AddPointVertex(v Vertex) *PointGeom {
	p := &PointGeom{X: v.X, Y: v.Y}
	if c.dims.HasZ() {
		p.Z = v.Z
	}
	if c.dims.HasM() {
		p.M = v.M
	}
	return c.appendPoint(p)
}

func (c *Collection) appendPoint(p *PointGeom) *PointGeom {
	c.Points = append(c.Points, p)
	return p
}

// AddLineString appends a line-string pre-sized to n zero vertices.
func (c *Collection) AddLineString(n int) *LineStringGeom {
	l := &LineStringGeom{Coords: newCoords(c.dims, n)}
	c.LineStrings = append(c.LineStrings, l)
	return l
}

// AddPolygon appends a polygon whose exterior ring holds extN vertices and
// which reserves interiors unsized interior ring slots.
func (c *Collection) AddPolygon(extN, interiors int) *PolygonGeom {
	if interiors < 0 {
		panic(fmt.Sprintf("geometry: negative interior ring count %d", interiors))
	}
	p := &PolygonGeom{
		Exterior:  &Ring{Coords: newCoords(c.dims, extN)},
		Interiors: make([]*Ring, interiors),
		dims:      c.dims,
	}
	c.Polygons = append(c.Polygons, p)
	return p
}

func (c *Collection) NumPoints() int      { return len(c.Points) }
func (c *Collection) NumLineStrings() int { return len(c.LineStrings) }
func (c *Collection) NumPolygons() int    { return len(c.Polygons) }

// IsEmpty reports whether the collection owns no child at all.
func (c *Collection) IsEmpty() bool {
	return len(c.Points) == 0 && len(c.LineStrings) == 0 && len(c.Polygons) == 0
}

// Dimension returns the topological dimension of the collection: -1 when
// empty, 0 for points only, 1 when the highest child is a line-string and 2
// when it holds a polygon.
func (c *Collection) Dimension() int {
	switch {
	case len(c.Polygons) > 0:
		return 2
	case len(c.LineStrings) > 0:
		return 1
	case len(c.Points) > 0:
		return 0
	default:
		return -1
	}
}

// GeometryType derives the logical class from the child counts, consulting
// DeclaredType only where the counts are ambiguous: a single child may be
// declared as a one-member Multi* or GeometryCollection, and a homogeneous set
// may be declared as a GeometryCollection. Empty collections are Unknown.
func (c *Collection) GeometryType() GeometryType {
	pts, lns, pgs := len(c.Points), len(c.LineStrings), len(c.Polygons)
	switch {
	case pts == 0 && lns == 0 && pgs == 0:
		return Unknown
	case lns == 0 && pgs == 0:
		return homogeneous(pts, Point, MultiPoint, c.DeclaredType)
	case pts == 0 && pgs == 0:
		return homogeneous(lns, LineString, MultiLineString, c.DeclaredType)
	case pts == 0 && lns == 0:
		return homogeneous(pgs, Polygon, MultiPolygon, c.DeclaredType)
	default:
		return GeometryCollection
	}
}

func homogeneous(n int, single, multi, declared GeometryType) GeometryType {
	if declared == GeometryCollection {
		return GeometryCollection
	}
	if n == 1 && declared != multi {
		return single
	}
	return multi
}

// RecomputeBoundingBox rescans every vertex of every child. An empty
// collection gets the inverted box.
func (c *Collection) RecomputeBoundingBox() {
	c.BoundingBox, _ = c.bounds().GetBounds()
}

// ZRange returns the Z extent of every vertex. ok is false when the collection
// is empty or carries no Z channel.
func (c *Collection) ZRange() (minZ, maxZ float64, ok bool) {
	minZ, maxZ, ok = c.bounds().GetZRange()
	if !c.dims.HasZ() {
		return minZ, maxZ, false
	}
	return minZ, maxZ, ok
}

// MRange returns the M extent of every vertex. ok is false when the collection
// is empty or carries no M channel.
func (c *Collection) MRange() (minM, maxM float64, ok bool) {
	minM, maxM, ok = c.bounds().GetMRange()
	if !c.dims.HasM() {
		return minM, maxM, false
	}
	return minM, maxM, ok
}

func (c *Collection) bounds() *BoundsCalculator {
	calc := NewBoundsCalculator()
	for _, p := range c.Points {
		calc.AddVertex(p.Vertex())
	}
	for _, l := range c.LineStrings {
		calc.addCoords(&l.Coords)
	}
	for _, p := range c.Polygons {
		for _, r := range p.rings() {
			calc.addCoords(&r.Coords)
		}
	}
	return calc
}

// Destroy releases every owned child. The collection stays usable and empty.
func (c *Collection) Destroy() {
	c.Points = nil
	c.LineStrings = nil
	c.Polygons = nil
}

// Clone returns a deep copy sharing no storage with c.
func (c *Collection) Clone() *Collection {
	out := &Collection{
		SRID:         c.SRID,
		DeclaredType: c.DeclaredType,
		BoundingBox:  c.BoundingBox,
		dims:         c.dims,
	}
	for _, p := range c.Points {
		cp := *p
		out.Points = append(out.Points, &cp)
	}
	for _, l := range c.LineStrings {
		out.LineStrings = append(out.LineStrings, &LineStringGeom{Coords: l.clone()})
	}
	for _, p := range c.Polygons {
		np := &PolygonGeom{
			Exterior:  &Ring{Coords: p.Exterior.clone()},
			Interiors: make([]*Ring, len(p.Interiors)),
			dims:      p.dims,
		}
		for i, r := range p.Interiors {
			if r != nil {
				np.Interiors[i] = &Ring{Coords: r.clone()}
			}
		}
		out.Polygons = append(out.Polygons, np)
	}
	return out
}
