package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/spatialite-go/geometry"
)

func Test_Decode_EnvelopeRejection(t *testing.T) {
	valid, err := Encode(mixedCollection(geometry.XY), false)
	require.NoError(t, err)

	corrupt := func(off int, b byte) []byte {
		out := append([]byte(nil), valid...)
		out[off] = b
		return out
	}
	tests := []struct {
		name string
		buf  []byte
	}{
		{"nil", nil},
		{"short", valid[:44]},
		{"start-marker", corrupt(0, 0x01)},
		{"end-marker", corrupt(len(valid)-1, 0x00)},
		{"mbr-marker", corrupt(38, 0x00)},
		{"byte-order", corrupt(1, 0x02)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.buf)
			require.ErrorIs(t, err, ErrMalformedEnvelope)
			require.False(t, IsWellFormed(tc.buf))
		})
	}
}

func Test_Decode_Truncation(t *testing.T) {
	for _, compress := range []bool{false, true} {
		valid, err := Encode(mixedCollection(geometry.XYZM), compress)
		require.NoError(t, err)
		for cut := 0; cut < len(valid)-1; cut++ {
			buf := append(append([]byte(nil), valid[:cut]...), MarkerEnd)
			c, err := Decode(buf)
			require.Error(t, err, "cut at %d", cut)
			require.Nil(t, c)
			require.False(t, IsWellFormed(buf))
		}
	}
}

func Test_Decode_TruncatedCounts(t *testing.T) {
	tests := []struct {
		name    string
		tag     int32
		payload func(r *rawWriter)
	}{
		{"point", TagPoint, func(r *rawWriter) { r.f64(1) }},
		{"line-count", TagLineString, func(r *rawWriter) { r.u8(3) }},
		{"line-vertices", TagLineString, func(r *rawWriter) { r.i32(3).f64(1, 2, 3, 4) }},
		{"huge-line", TagLineString, func(r *rawWriter) { r.i32(1<<30).f64(1, 2) }},
		{"polygon-rings", TagPolygon, func(r *rawWriter) { r.i32(2).i32(1).f64(0, 0) }},
		{"compressed-line", TagCompressedLineString, func(r *rawWriter) { r.i32(3).f64(0, 0).f32(1) }},
		{"collection-entities", TagMultiPoint, func(r *rawWriter) { r.i32(2).u8(MarkerEntity).i32(TagPoint).f64(1, 2) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := rawBlob(true, tc.tag, tc.payload)
			_, err := Decode(buf)
			require.ErrorIs(t, err, ErrTruncated)
			require.False(t, IsWellFormed(buf))
		})
	}
}

func Test_Decode_InvalidStructure(t *testing.T) {
	tests := []struct {
		name    string
		tag     int32
		payload func(r *rawWriter)
		err     error
	}{
		{"unknown-tag", 8, func(r *rawWriter) { r.f64(1, 2) }, ErrUnknownClass},
		{"compressed-point-tag", OffsetCompressed + TagPoint, func(r *rawWriter) { r.f64(1, 2) }, ErrUnknownClass},
		{"negative-count", TagLineString, func(r *rawWriter) { r.i32(-1) }, ErrInvalidEntity},
		{"polygon-without-rings", TagPolygon, func(r *rawWriter) { r.i32(0) }, ErrInvalidEntity},
		{"bad-entity-marker", TagMultiPoint, func(r *rawWriter) { r.i32(1).u8(0x42).i32(TagPoint).f64(1, 2) }, ErrInvalidEntity},
		{"entity-kind-mismatch", TagMultiPoint, func(r *rawWriter) { r.i32(1).u8(MarkerEntity).i32(TagLineString).i32(0) }, ErrInvalidEntity},
		{"entity-dims-mismatch", TagMultiPoint, func(r *rawWriter) { r.i32(1).u8(MarkerEntity).i32(TagPoint+OffsetZ).f64(1, 2, 3) }, ErrInvalidEntity},
		{"nested-collection", TagGeometryCollection, func(r *rawWriter) { r.i32(1).u8(MarkerEntity).i32(TagMultiPoint).i32(0) }, ErrInvalidEntity},
		{"entity-unknown-tag", TagGeometryCollection, func(r *rawWriter) { r.i32(1).u8(MarkerEntity).i32(99).f64(1, 2) }, ErrUnknownClass},
		{"trailing-bytes", TagPoint, func(r *rawWriter) { r.f64(1, 2).u8(0) }, ErrTrailingBytes},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := rawBlob(true, tc.tag, tc.payload)
			c, err := Decode(buf)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, c)
			require.ErrorIs(t, Validate(buf), tc.err)
		})
	}
}

func Test_Decode_BigEndianCompressed(t *testing.T) {
	buf := newRaw(false).
		envelope(32632, TagCompressedLineString+OffsetZM, geometry.BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}).
		i32(4).
		f64(0, 0, 0, 10).
		f32(1.5).f32(2.5).f32(0.5).f64(11).
		f32(1.5).f32(2.5).f32(0.5).f64(12).
		f64(10, 10, 10, 13).
		end()

	c, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, int32(32632), c.SRID)
	require.Equal(t, geometry.LineString, c.DeclaredType)
	require.Equal(t, geometry.XYZM, c.DimensionModel())
	require.Equal(t, geometry.BoundingBox{MaxX: 10, MaxY: 10}, c.BoundingBox)

	l := c.LineStrings[0]
	require.Equal(t, geometry.Vertex{X: 0, Y: 0, Z: 0, M: 10}, l.Vertex(0))
	require.Equal(t, geometry.Vertex{X: 1.5, Y: 2.5, Z: 0.5, M: 11}, l.Vertex(1))
	// deltas accumulate on the previously decoded vertex
	require.Equal(t, geometry.Vertex{X: 3, Y: 5, Z: 1, M: 12}, l.Vertex(2))
	require.Equal(t, geometry.Vertex{X: 10, Y: 10, Z: 10, M: 13}, l.Vertex(3))
}

func Test_Decode_TrustsStoredBoundingBox(t *testing.T) {
	box := geometry.BoundingBox{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4}
	buf := newRaw(true).envelope(0, TagPoint, box).f64(100, 200).end()
	c, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, box, c.BoundingBox)
}

func Test_ValidatorDecoderAgreement(t *testing.T) {
	seeds := [][]byte{}
	for _, dims := range allDims {
		for _, compress := range []bool{false, true} {
			buf, err := Encode(mixedCollection(dims), compress)
			require.NoError(t, err)
			seeds = append(seeds, buf)
		}
	}
	for _, seed := range seeds {
		for off := range seed {
			for _, b := range []byte{0x00, 0x01, 0x69, 0x7C, 0xFE, 0xFF} {
				buf := append([]byte(nil), seed...)
				buf[off] = b
				_, err := Decode(buf)
				require.Equal(t, err == nil, IsWellFormed(buf), "offset %d byte 0x%02x", off, b)
			}
		}
	}
}

func Test_DecodeWithOptions_DefaultsToNative(t *testing.T) {
	buf, err := Encode(mixedCollection(geometry.XY), false)
	require.NoError(t, err)

	c, err := DecodeWithOptions(buf, DecodeOptions{AllowGeoPackage: true})
	require.NoError(t, err)
	require.Equal(t, 1, c.NumPolygons())

	_, err = DecodeWithOptions(buf, DecodeOptions{RequireGeoPackage: true})
	require.ErrorIs(t, err, ErrNotGeoPackage)
}
