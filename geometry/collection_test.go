package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DimensionModel(t *testing.T) {
	tests := []struct {
		dims   DimensionModel
		hasZ   bool
		hasM   bool
		stride int
		name   string
		suffix string
	}{
		{XY, false, false, 2, "XY", ""},
		{XYZ, true, false, 3, "XYZ", " Z"},
		{XYM, false, true, 3, "XYM", " M"},
		{XYZM, true, true, 4, "XYZM", " ZM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.dims.Valid())
			require.Equal(t, tc.hasZ, tc.dims.HasZ())
			require.Equal(t, tc.hasM, tc.dims.HasM())
			require.Equal(t, tc.stride, tc.dims.Stride())
			require.Equal(t, tc.name, tc.dims.String())
			require.Equal(t, tc.suffix, tc.dims.Suffix())
		})
	}
	require.False(t, DimensionModel(4).Valid())
	require.Equal(t, "DimensionModel(4)", DimensionModel(4).String())
}

func Test_NewCollection(t *testing.T) {
	c := NewCollection(XY)
	require.Equal(t, int32(0), c.SRID)
	require.Equal(t, Unknown, c.DeclaredType)
	require.True(t, c.IsEmpty())
	require.True(t, c.BoundingBox.IsInverted())
	require.Equal(t, math.MaxFloat64, c.MinX)
	require.Equal(t, -math.MaxFloat64, c.MaxY)
	require.Equal(t, -1, c.Dimension())
	require.Equal(t, Unknown, c.GeometryType())

	require.Panics(t, func() { NewCollection(DimensionModel(7)) })
}

func Test_AddPoint_ChannelMismatchPanics(t *testing.T) {
	require.Panics(t, func() { NewCollection(XYZ).AddPoint(1, 2) })
	require.Panics(t, func() { NewCollection(XY).AddPointXYZ(1, 2, 3) })
	require.Panics(t, func() { NewCollection(XY).AddPointXYM(1, 2, 3) })
	require.Panics(t, func() { NewCollection(XYM).AddPointXYZM(1, 2, 3, 4) })

	c := NewCollection(XYZM)
	p := c.AddPointXYZM(1, 2, 3, 4)
	require.Equal(t, Vertex{X: 1, Y: 2, Z: 3, M: 4}, p.Vertex())
}

func Test_AddPointVertex_DropsAbsentChannels(t *testing.T) {
	c := NewCollection(XYM)
	p := c.AddPointVertex(Vertex{X: 1, Y: 2, Z: 3, M: 4})
	require.Equal(t, Vertex{X: 1, Y: 2, M: 4}, p.Vertex())
}

func Test_LineString_SetAndGet(t *testing.T) {
	c := NewCollection(XYZ)
	l := c.AddLineString(3)
	require.Equal(t, 3, l.NumPoints())
	require.Len(t, l.Flat(), 9)

	l.SetVertex(0, Vertex{X: 1, Y: 2, Z: 3, M: 99})
	l.SetXY(1, 4, 5)
	require.Equal(t, Vertex{X: 1, Y: 2, Z: 3}, l.Vertex(0))
	require.Equal(t, Vertex{X: 4, Y: 5}, l.Vertex(1))
	require.Equal(t, Vertex{}, l.Vertex(2))

	require.Panics(t, func() { l.Vertex(3) })
	require.Panics(t, func() { l.SetXY(-1, 0, 0) })
	require.Panics(t, func() { c.AddLineString(-1) })
}

func Test_Polygon_Rings(t *testing.T) {
	c := NewCollection(XY)
	p := c.AddPolygon(5, 2)
	require.Equal(t, 2, p.NumInteriors())
	require.Equal(t, 3, p.NumRings())

	hole := p.AddInteriorRing(0, 4)
	require.Equal(t, 4, hole.NumPoints())
	require.Same(t, hole, p.Ring(1))
	require.Same(t, p.Exterior, p.Ring(0))
	require.Equal(t, 0, p.Ring(2).NumPoints())

	require.Panics(t, func() { p.AddInteriorRing(2, 4) })
	require.Panics(t, func() { p.Ring(3) })
	require.Panics(t, func() { c.AddPolygon(4, -1) })
}

func Test_Ring_IsClosed(t *testing.T) {
	c := NewCollection(XY)
	r := c.AddPolygon(4, 0).Exterior
	r.SetXY(0, 0, 0)
	r.SetXY(1, 1, 0)
	r.SetXY(2, 1, 1)
	r.SetXY(3, 0, 1)
	require.False(t, r.IsClosed())
	r.SetXY(3, 0, 0)
	require.True(t, r.IsClosed())

	empty := &Ring{}
	require.False(t, empty.IsClosed())
}

func Test_RecomputeBoundingBox(t *testing.T) {
	c := NewCollection(XYZM)
	c.AddPointXYZM(-1, 5, 10, 100)
	l := c.AddLineString(2)
	l.SetVertex(0, Vertex{X: 3, Y: -2, Z: -7, M: 1})
	l.SetVertex(1, Vertex{X: 0, Y: 0, Z: 2, M: 50})
	p := c.AddPolygon(4, 1)
	p.Exterior.SetVertex(0, Vertex{X: 8, Y: 8})
	p.AddInteriorRing(0, 1).SetVertex(0, Vertex{X: 2, Y: 9, Z: 30})

	// stale until recomputed
	require.True(t, c.BoundingBox.IsInverted())

	c.RecomputeBoundingBox()
	require.Equal(t, BoundingBox{MinX: -1, MinY: -2, MaxX: 8, MaxY: 9}, c.BoundingBox)
	require.True(t, c.Contains(0, 0))
	require.False(t, c.Contains(9, 0))

	minZ, maxZ, ok := c.ZRange()
	require.True(t, ok)
	require.Equal(t, -7.0, minZ)
	require.Equal(t, 30.0, maxZ)

	minM, maxM, ok := c.MRange()
	require.True(t, ok)
	require.Equal(t, 0.0, minM)
	require.Equal(t, 100.0, maxM)
}

func Test_Ranges_WithoutChannel(t *testing.T) {
	c := NewCollection(XY)
	c.AddPoint(1, 1)
	_, _, ok := c.ZRange()
	require.False(t, ok)
	_, _, ok = c.MRange()
	require.False(t, ok)

	empty := NewCollection(XYZM)
	empty.RecomputeBoundingBox()
	require.True(t, empty.BoundingBox.IsInverted())
	_, _, ok = empty.ZRange()
	require.False(t, ok)
}

func Test_GeometryType(t *testing.T) {
	build := func(pts, lns, pgs int, declared GeometryType) *Collection {
		c := NewCollection(XY)
		c.DeclaredType = declared
		for range pts {
			c.AddPoint(0, 0)
		}
		for range lns {
			c.AddLineString(2)
		}
		for range pgs {
			c.AddPolygon(4, 0)
		}
		return c
	}
	tests := []struct {
		name          string
		pts, lns, pgs int
		declared      GeometryType
		expected      GeometryType
		dimension     int
	}{
		{"single-point", 1, 0, 0, Unknown, Point, 0},
		{"single-point-declared-multi", 1, 0, 0, MultiPoint, MultiPoint, 0},
		{"single-point-declared-collection", 1, 0, 0, GeometryCollection, GeometryCollection, 0},
		{"two-points", 2, 0, 0, Point, MultiPoint, 0},
		{"two-points-declared-collection", 2, 0, 0, GeometryCollection, GeometryCollection, 0},
		{"single-line", 0, 1, 0, Unknown, LineString, 1},
		{"single-line-declared-multi", 0, 1, 0, MultiLineString, MultiLineString, 1},
		{"single-line-declared-multipoint", 0, 1, 0, MultiPoint, LineString, 1},
		{"lines", 0, 3, 0, Unknown, MultiLineString, 1},
		{"single-polygon", 0, 0, 1, Polygon, Polygon, 2},
		{"polygons", 0, 0, 2, Unknown, MultiPolygon, 2},
		{"mixed", 1, 1, 0, Unknown, GeometryCollection, 1},
		{"mixed-declared-multipoint", 1, 0, 1, MultiPoint, GeometryCollection, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := build(tc.pts, tc.lns, tc.pgs, tc.declared)
			require.Equal(t, tc.expected, c.GeometryType())
			require.Equal(t, tc.dimension, c.Dimension())
		})
	}
}

func Test_GeometryTypeString(t *testing.T) {
	require.Equal(t, "MULTIPOLYGON", MultiPolygon.String())
	require.Equal(t, "UNKNOWN", GeometryType(42).String())
	require.True(t, GeometryCollection.IsMulti())
	require.False(t, Polygon.IsMulti())
}

func Test_Clone_IsDeep(t *testing.T) {
	c := NewCollection(XY)
	c.SRID = 4326
	c.DeclaredType = GeometryCollection
	c.AddPoint(1, 2)
	l := c.AddLineString(2)
	l.SetXY(1, 3, 4)
	p := c.AddPolygon(4, 2)
	p.AddInteriorRing(1, 4).SetXY(0, 7, 7)
	c.RecomputeBoundingBox()

	d := c.Clone()
	require.Equal(t, c, d)

	d.Points[0].X = 100
	d.LineStrings[0].SetXY(1, 100, 100)
	d.Polygons[0].Interiors[1].SetXY(0, 100, 100)
	require.Equal(t, 1.0, c.Points[0].X)
	require.Equal(t, Vertex{X: 3, Y: 4}, c.LineStrings[0].Vertex(1))
	require.Equal(t, Vertex{X: 7, Y: 7}, c.Polygons[0].Interiors[1].Vertex(0))
	require.Nil(t, d.Polygons[0].Interiors[0])
}

func Test_Destroy(t *testing.T) {
	c := NewCollection(XY)
	c.Destroy()
	require.True(t, c.IsEmpty())

	c.AddPoint(1, 1)
	c.AddLineString(2)
	c.AddPolygon(4, 1)
	c.Destroy()
	require.True(t, c.IsEmpty())
	require.Zero(t, c.NumPoints())
	require.Zero(t, c.NumLineStrings())
	require.Zero(t, c.NumPolygons())
}
