package blob

import (
	"fmt"

	"github.com/hangxie/spatialite-go/geometry"
)

// Elementary and collection class tags. The Z, M and ZM variants add
// OffsetZ, OffsetM and OffsetZM; the compressed line-string and polygon
// variants add OffsetCompressed on top of that.
const (
	TagPoint              int32 = 1
	TagLineString         int32 = 2
	TagPolygon            int32 = 3
	TagMultiPoint         int32 = 4
	TagMultiLineString    int32 = 5
	TagMultiPolygon       int32 = 6
	TagGeometryCollection int32 = 7

	OffsetZ          int32 = 1000
	OffsetM          int32 = 2000
	OffsetZM         int32 = 3000
	OffsetCompressed int32 = 1000000

	TagCompressedLineString = OffsetCompressed + TagLineString
	TagCompressedPolygon    = OffsetCompressed + TagPolygon
)

// Class is the decoded meaning of a class tag.
type Class struct {
	Kind       geometry.GeometryType
	Dims       geometry.DimensionModel
	Compressed bool
}

// Tag returns the wire tag for c.
func (c Class) Tag() int32 {
	t := int32(c.Kind) + 1000*int32(c.Dims)
	if c.Compressed {
		t += OffsetCompressed
	}
	return t
}

// Elementary reports whether the class carries a single entity with no
// per-entity header.
func (c Class) Elementary() bool {
	return c.Kind == geometry.Point || c.Kind == geometry.LineString || c.Kind == geometry.Polygon
}

// TypeName is the SQL-facing name, e.g. "MULTIPOLYGON ZM".
func (c Class) TypeName() string {
	return c.Kind.String() + c.Dims.Suffix()
}

func (c Class) String() string {
	if c.Compressed {
		return "COMPRESSED " + c.TypeName()
	}
	return c.TypeName()
}

// ParseClass maps a wire tag to its class.
func ParseClass(tag int32) (Class, error) {
	t := tag
	compressed := false
	if t >= OffsetCompressed {
		compressed = true
		t -= OffsetCompressed
	}
	if t <= 0 {
		return Class{}, fmt.Errorf("%w: %d", ErrUnknownClass, tag)
	}
	kind := geometry.GeometryType(t % 1000)
	dims := geometry.DimensionModel(t / 1000)
	if kind < geometry.Point || kind > geometry.GeometryCollection || !dims.Valid() {
		return Class{}, fmt.Errorf("%w: %d", ErrUnknownClass, tag)
	}
	if compressed && kind != geometry.LineString && kind != geometry.Polygon {
		return Class{}, fmt.Errorf("%w: %d", ErrUnknownClass, tag)
	}
	return Class{Kind: kind, Dims: dims, Compressed: compressed}, nil
}

// ClassOf returns the outer class the encoder emits for c. Points never
// compress; collections stay plain and compress their entities instead.
func ClassOf(c *geometry.Collection, compress bool) Class {
	kind := c.GeometryType()
	return Class{
		Kind:       kind,
		Dims:       c.DimensionModel(),
		Compressed: compress && (kind == geometry.LineString || kind == geometry.Polygon),
	}
}

// entityKind is the elementary kind every entity of a Multi* wrapper must
// have; Unknown means any elementary kind is accepted.
func entityKind(outer geometry.GeometryType) geometry.GeometryType {
	switch outer {
	case geometry.MultiPoint:
		return geometry.Point
	case geometry.MultiLineString:
		return geometry.LineString
	case geometry.MultiPolygon:
		return geometry.Polygon
	default:
		return geometry.Unknown
	}
}
