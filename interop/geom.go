// Package interop converts geometry collections to and from the
// github.com/twpayne/go-geom and github.com/paulmach/orb object models.
package interop

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/spatialite-go/geometry"
)

var (
	ErrEmptyGeometry   = errors.New("empty geometry")
	ErrUnsupportedType = errors.New("unsupported geometry type")
)

var layouts = map[geometry.DimensionModel]geom.Layout{
	geometry.XY:   geom.XY,
	geometry.XYZ:  geom.XYZ,
	geometry.XYM:  geom.XYM,
	geometry.XYZM: geom.XYZM,
}

func dimsOf(l geom.Layout) geometry.DimensionModel {
	switch l {
	case geom.XYZ:
		return geometry.XYZ
	case geom.XYM:
		return geometry.XYM
	case geom.XYZM:
		return geometry.XYZM
	default:
		return geometry.XY
	}
}

// ToGeom converts c into the narrowest go-geom type for its class. The SRID
// is carried over.
func ToGeom(c *geometry.Collection) (geom.T, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyGeometry
	}
	layout := layouts[c.DimensionModel()]
	srid := int(c.SRID)

	switch c.GeometryType() {
	case geometry.Point:
		return pointToGeom(c.Points[0], layout).SetSRID(srid), nil
	case geometry.LineString:
		return lineToGeom(c.LineStrings[0], layout).SetSRID(srid), nil
	case geometry.Polygon:
		return polygonToGeom(c.Polygons[0], layout).SetSRID(srid), nil
	case geometry.MultiPoint:
		var flat []float64
		for _, p := range c.Points {
			flat = append(flat, pointToGeom(p, layout).FlatCoords()...)
		}
		return geom.NewMultiPointFlat(layout, flat).SetSRID(srid), nil
	case geometry.MultiLineString:
		var flat []float64
		var ends []int
		for _, l := range c.LineStrings {
			flat = append(flat, l.Flat()...)
			ends = append(ends, len(flat))
		}
		return geom.NewMultiLineStringFlat(layout, flat, ends).SetSRID(srid), nil
	case geometry.MultiPolygon:
		var flat []float64
		var endss [][]int
		for _, p := range c.Polygons {
			var ends []int
			flat, ends = appendRings(flat, p)
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(layout, flat, endss).SetSRID(srid), nil
	default:
		gc := geom.NewGeometryCollection()
		for _, p := range c.Points {
			if err := gc.Push(pointToGeom(p, layout)); err != nil {
				return nil, fmt.Errorf("failed to add point: %w", err)
			}
		}
		for _, l := range c.LineStrings {
			if err := gc.Push(lineToGeom(l, layout)); err != nil {
				return nil, fmt.Errorf("failed to add line-string: %w", err)
			}
		}
		for _, p := range c.Polygons {
			if err := gc.Push(polygonToGeom(p, layout)); err != nil {
				return nil, fmt.Errorf("failed to add polygon: %w", err)
			}
		}
		return gc.SetSRID(srid), nil
	}
}

func pointToGeom(p *geometry.PointGeom, layout geom.Layout) *geom.Point {
	v := p.Vertex()
	var flat []float64
	switch layout {
	case geom.XYZ:
		flat = []float64{v.X, v.Y, v.Z}
	case geom.XYM:
		flat = []float64{v.X, v.Y, v.M}
	case geom.XYZM:
		flat = []float64{v.X, v.Y, v.Z, v.M}
	default:
		flat = []float64{v.X, v.Y}
	}
	return geom.NewPointFlat(layout, flat)
}

func lineToGeom(l *geometry.LineStringGeom, layout geom.Layout) *geom.LineString {
	flat := make([]float64, len(l.Flat()))
	copy(flat, l.Flat())
	return geom.NewLineStringFlat(layout, flat)
}

func polygonToGeom(p *geometry.PolygonGeom, layout geom.Layout) *geom.Polygon {
	flat, ends := appendRings(nil, p)
	return geom.NewPolygonFlat(layout, flat, ends)
}

func appendRings(flat []float64, p *geometry.PolygonGeom) ([]float64, []int) {
	ends := make([]int, 0, p.NumRings())
	for i := range p.NumRings() {
		flat = append(flat, p.Ring(i).Flat()...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

// FromGeom flattens t into a single collection. Nested collections are
// merged; the declared type follows the top-level type of t.
func FromGeom(t geom.T) (*geometry.Collection, error) {
	c := geometry.NewCollection(dimsOf(t.Layout()))
	c.SRID = int32(t.SRID())
	declared, err := addGeom(c, t)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyGeometry
	}
	c.DeclaredType = declared
	c.RecomputeBoundingBox()
	return c, nil
}

func addGeom(c *geometry.Collection, t geom.T) (geometry.GeometryType, error) {
	switch g := t.(type) {
	case *geom.Point:
		if !g.Empty() {
			c.AddPointVertex(vertexAt(g.FlatCoords(), g.Layout(), 0))
		}
		return geometry.Point, nil
	case *geom.LineString:
		addSequence(&c.AddLineString(g.NumCoords()).Coords, g.FlatCoords(), g.Layout())
		return geometry.LineString, nil
	case *geom.Polygon:
		addPolygon(c, g)
		return geometry.Polygon, nil
	case *geom.MultiPoint:
		for i := range g.NumPoints() {
			if _, err := addGeom(c, g.Point(i)); err != nil {
				return geometry.Unknown, err
			}
		}
		return geometry.MultiPoint, nil
	case *geom.MultiLineString:
		for i := range g.NumLineStrings() {
			if _, err := addGeom(c, g.LineString(i)); err != nil {
				return geometry.Unknown, err
			}
		}
		return geometry.MultiLineString, nil
	case *geom.MultiPolygon:
		for i := range g.NumPolygons() {
			addPolygon(c, g.Polygon(i))
		}
		return geometry.MultiPolygon, nil
	case *geom.GeometryCollection:
		for i := range g.NumGeoms() {
			if _, err := addGeom(c, g.Geom(i)); err != nil {
				return geometry.Unknown, err
			}
		}
		return geometry.GeometryCollection, nil
	default:
		return geometry.Unknown, fmt.Errorf("%w: %T", ErrUnsupportedType, t)
	}
}

func addPolygon(c *geometry.Collection, g *geom.Polygon) {
	n := g.NumLinearRings()
	if n == 0 {
		return
	}
	p := c.AddPolygon(g.LinearRing(0).NumCoords(), n-1)
	addSequence(&p.Exterior.Coords, g.LinearRing(0).FlatCoords(), g.Layout())
	for i := 1; i < n; i++ {
		r := g.LinearRing(i)
		addSequence(&p.AddInteriorRing(i-1, r.NumCoords()).Coords, r.FlatCoords(), g.Layout())
	}
}

func addSequence(dst *geometry.Coords, flat []float64, layout geom.Layout) {
	for i := range dst.NumPoints() {
		dst.SetVertex(i, vertexAt(flat, layout, i))
	}
}

func vertexAt(flat []float64, layout geom.Layout, i int) geometry.Vertex {
	base := i * layout.Stride()
	v := geometry.Vertex{X: flat[base], Y: flat[base+1]}
	if zi := layout.ZIndex(); zi != -1 {
		v.Z = flat[base+zi]
	}
	if mi := layout.MIndex(); mi != -1 {
		v.M = flat[base+mi]
	}
	return v
}
