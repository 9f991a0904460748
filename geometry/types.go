// Package geometry holds the in-memory geometry model shared by the blob
// codec and its consumers: a Collection owning points, line-strings and
// polygons that all carry the same set of coordinate channels.
package geometry

import "fmt"

// DimensionModel selects the coordinate channels carried by every vertex of a
// collection.
type DimensionModel int

const (
	XY   DimensionModel = 0
	XYZ  DimensionModel = 1
	XYM  DimensionModel = 2
	XYZM DimensionModel = 3
)

// HasZ reports whether vertices carry a Z channel.
func (d DimensionModel) HasZ() bool { return d == XYZ || d == XYZM }

// HasM reports whether vertices carry an M channel.
func (d DimensionModel) HasM() bool { return d == XYM || d == XYZM }

// Stride is the number of float64 values stored per vertex.
func (d DimensionModel) Stride() int {
	switch d {
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	default:
		return 2
	}
}

// Valid reports whether d is one of the four known models.
func (d DimensionModel) Valid() bool { return d >= XY && d <= XYZM }

func (d DimensionModel) String() string {
	switch d {
	case XY:
		return "XY"
	case XYZ:
		return "XYZ"
	case XYM:
		return "XYM"
	case XYZM:
		return "XYZM"
	default:
		return fmt.Sprintf("DimensionModel(%d)", int(d))
	}
}

// Suffix is the WKT-style dimension suffix: "", " Z", " M" or " ZM".
func (d DimensionModel) Suffix() string {
	switch d {
	case XYZ:
		return " Z"
	case XYM:
		return " M"
	case XYZM:
		return " ZM"
	default:
		return ""
	}
}

// GeometryType is the logical geometry class, independent of dimensions and
// compression.
type GeometryType int

const (
	Unknown            GeometryType = 0
	Point              GeometryType = 1
	LineString         GeometryType = 2
	Polygon            GeometryType = 3
	MultiPoint         GeometryType = 4
	MultiLineString    GeometryType = 5
	MultiPolygon       GeometryType = 6
	GeometryCollection GeometryType = 7
)

func (t GeometryType) String() string {
	switch t {
	case Point:
		return "POINT"
	case LineString:
		return "LINESTRING"
	case Polygon:
		return "POLYGON"
	case MultiPoint:
		return "MULTIPOINT"
	case MultiLineString:
		return "MULTILINESTRING"
	case MultiPolygon:
		return "MULTIPOLYGON"
	case GeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return "UNKNOWN"
	}
}

// IsMulti reports whether t is one of the Multi* classes or GeometryCollection.
func (t GeometryType) IsMulti() bool {
	return t >= MultiPoint && t <= GeometryCollection
}

// Vertex is a channel-neutral coordinate. Channels absent from the owning
// collection's dimension model are ignored on write and zero on read.
type Vertex struct {
	X, Y, Z, M float64
}

// PointGeom is a single point owned by a Collection.
type PointGeom struct {
	X, Y, Z, M float64
}

// Vertex returns the point's coordinates as a Vertex.
func (p *PointGeom) Vertex() Vertex {
	return Vertex{X: p.X, Y: p.Y, Z: p.Z, M: p.M}
}
