package interop

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/hangxie/spatialite-go/geometry"
)

// ToOrb projects c onto the XY plane as an orb geometry. Z and M are
// dropped. It returns nil for an empty collection.
func ToOrb(c *geometry.Collection) orb.Geometry {
	switch c.GeometryType() {
	case geometry.Unknown:
		return nil
	case geometry.Point:
		return pointToOrb(c.Points[0])
	case geometry.LineString:
		return lineToOrb(&c.LineStrings[0].Coords)
	case geometry.Polygon:
		return polygonToOrb(c.Polygons[0])
	case geometry.MultiPoint:
		mp := make(orb.MultiPoint, 0, len(c.Points))
		for _, p := range c.Points {
			mp = append(mp, pointToOrb(p))
		}
		return mp
	case geometry.MultiLineString:
		ml := make(orb.MultiLineString, 0, len(c.LineStrings))
		for _, l := range c.LineStrings {
			ml = append(ml, lineToOrb(&l.Coords))
		}
		return ml
	case geometry.MultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(c.Polygons))
		for _, p := range c.Polygons {
			mp = append(mp, polygonToOrb(p))
		}
		return mp
	default:
		gc := make(orb.Collection, 0, c.NumPoints()+c.NumLineStrings()+c.NumPolygons())
		for _, p := range c.Points {
			gc = append(gc, pointToOrb(p))
		}
		for _, l := range c.LineStrings {
			gc = append(gc, lineToOrb(&l.Coords))
		}
		for _, p := range c.Polygons {
			gc = append(gc, polygonToOrb(p))
		}
		return gc
	}
}

func pointToOrb(p *geometry.PointGeom) orb.Point {
	return orb.Point{p.X, p.Y}
}

func lineToOrb(c *geometry.Coords) orb.LineString {
	ls := make(orb.LineString, c.NumPoints())
	for i := range ls {
		v := c.Vertex(i)
		ls[i] = orb.Point{v.X, v.Y}
	}
	return ls
}

func polygonToOrb(p *geometry.PolygonGeom) orb.Polygon {
	poly := make(orb.Polygon, p.NumRings())
	for i := range poly {
		poly[i] = orb.Ring(lineToOrb(&p.Ring(i).Coords))
	}
	return poly
}

// FromOrb builds an XY collection from g. Rings become single-ring polygons
// and bounds become their rectangle polygon.
func FromOrb(g orb.Geometry, srid int32) (*geometry.Collection, error) {
	c := geometry.NewCollection(geometry.XY)
	c.SRID = srid
	declared, err := addOrb(c, g)
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

func addOrb(c *geometry.Collection, g orb.Geometry) (geometry.GeometryType, error) {
	switch g := g.(type) {
	case orb.Point:
		c.AddPoint(g.X(), g.Y())
		return geometry.Point, nil
	case orb.MultiPoint:
		for _, p := range g {
			c.AddPoint(p.X(), p.Y())
		}
		return geometry.MultiPoint, nil
	case orb.LineString:
		addOrbSequence(&c.AddLineString(len(g)).Coords, g)
		return geometry.LineString, nil
	case orb.MultiLineString:
		for _, l := range g {
			addOrbSequence(&c.AddLineString(len(l)).Coords, l)
		}
		return geometry.MultiLineString, nil
	case orb.Ring:
		addOrbPolygon(c, orb.Polygon{g})
		return geometry.Polygon, nil
	case orb.Bound:
		addOrbPolygon(c, g.ToPolygon())
		return geometry.Polygon, nil
	case orb.Polygon:
		addOrbPolygon(c, g)
		return geometry.Polygon, nil
	case orb.MultiPolygon:
		for _, p := range g {
			addOrbPolygon(c, p)
		}
		return geometry.MultiPolygon, nil
	case orb.Collection:
		for _, sub := range g {
			if _, err := addOrb(c, sub); err != nil {
				return geometry.Unknown, err
			}
		}
		return geometry.GeometryCollection, nil
	default:
		return geometry.Unknown, fmt.Errorf("%w: %T", ErrUnsupportedType, g)
	}
}

func addOrbPolygon(c *geometry.Collection, p orb.Polygon) {
	if len(p) == 0 {
		return
	}
	poly := c.AddPolygon(len(p[0]), len(p)-1)
	addOrbSequence(&poly.Exterior.Coords, p[0])
	for i, r := range p[1:] {
		addOrbSequence(&poly.AddInteriorRing(i, len(r)).Coords, r)
	}
}

func addOrbSequence(dst *geometry.Coords, pts []orb.Point) {
	for i, p := range pts {
		dst.SetXY(i, p.X(), p.Y())
	}
}
