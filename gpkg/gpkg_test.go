package gpkg

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/spatialite-go/geometry"
)

func f64le(v float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
}

// wkbPointLE is little-endian ISO WKB for POINT(x y)
func wkbPointLE(x, y float64) []byte {
	buf := []byte{1, 1, 0, 0, 0}
	buf = append(buf, f64le(x)...)
	return append(buf, f64le(y)...)
}

func header(flags byte, srid int32, envelope ...float64) []byte {
	buf := []byte{Magic1, Magic2, Version, flags}
	if flags&flagLittleEndian != 0 {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(srid))
		for _, v := range envelope {
			buf = append(buf, f64le(v)...)
		}
		return buf
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(srid))
	for _, v := range envelope {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

func Test_ParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		expected Header
	}{
		{
			name:     "no-envelope",
			buf:      header(0x01, 4326),
			expected: Header{LittleEndian: true, SRID: 4326},
		},
		{
			name: "xy-envelope-big-endian",
			buf:  header(0x02, 3857, 1, 2, 3, 4),
			expected: Header{
				SRID: 3857, EnvelopeCode: 1,
				Envelope: Envelope{MinX: 1, MaxX: 2, MinY: 3, MaxY: 4},
			},
		},
		{
			name: "xyz-envelope",
			buf:  header(0x05, 1, 1, 2, 3, 4, 5, 6),
			expected: Header{
				LittleEndian: true, SRID: 1, EnvelopeCode: 2,
				Envelope: Envelope{MinX: 1, MaxX: 2, MinY: 3, MaxY: 4, HasZ: true, MinZ: 5, MaxZ: 6},
			},
		},
		{
			name: "xym-envelope",
			buf:  header(0x07, 1, 1, 2, 3, 4, 5, 6),
			expected: Header{
				LittleEndian: true, SRID: 1, EnvelopeCode: 3,
				Envelope: Envelope{MinX: 1, MaxX: 2, MinY: 3, MaxY: 4, HasM: true, MinM: 5, MaxM: 6},
			},
		},
		{
			name: "xyzm-envelope-empty",
			buf:  header(0x19, 1, 1, 2, 3, 4, 5, 6, 7, 8),
			expected: Header{
				LittleEndian: true, Empty: true, SRID: 1, EnvelopeCode: 4,
				Envelope: Envelope{
					MinX: 1, MaxX: 2, MinY: 3, MaxY: 4,
					HasZ: true, MinZ: 5, MaxZ: 6, HasM: true, MinM: 7, MaxM: 8,
				},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ParseHeader(tc.buf)
			require.NoError(t, err)
			require.Equal(t, tc.expected, h)
			require.Equal(t, len(tc.buf), h.Size())
			require.True(t, IsValid(tc.buf))
		})
	}
}

func Test_ParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		err  error
	}{
		{"short", []byte{'G', 'P', 0}, ErrInvalidHeader},
		{"magic", []byte{'G', 'X', 0, 1, 0, 0, 0, 0}, ErrInvalidHeader},
		{"version", []byte{'G', 'P', 1, 1, 0, 0, 0, 0}, ErrInvalidHeader},
		{"envelope-indicator", header(0x0B, 0), ErrInvalidHeader},
		{"extended", header(0x21, 0), ErrExtendedType},
		{"missing-envelope", header(0x03, 0, 1, 2), ErrInvalidHeader},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHeader(tc.buf)
			require.ErrorIs(t, err, tc.err)
			require.False(t, IsValid(tc.buf))
			_, err = SRID(tc.buf)
			require.Error(t, err)
		})
	}
}

func Test_Decode_Point(t *testing.T) {
	buf := append(header(0x03, 4326, 10, 10, 20, 20), wkbPointLE(10, 20)...)
	c, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, int32(4326), c.SRID)
	require.Equal(t, geometry.Point, c.DeclaredType)
	require.Equal(t, geometry.Vertex{X: 10, Y: 20}, c.Points[0].Vertex())
	require.Equal(t, geometry.BoundingBox{MinX: 10, MinY: 20, MaxX: 10, MaxY: 20}, c.BoundingBox)

	srid, err := SRID(buf)
	require.NoError(t, err)
	require.Equal(t, int32(4326), srid)

	env, ok, err := ReadEnvelope(buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Envelope{MinX: 10, MaxX: 10, MinY: 20, MaxY: 20}, env)
}

func Test_Decode_BadBody(t *testing.T) {
	_, err := Decode(append(header(0x01, 0), 1, 1, 0))
	require.ErrorContains(t, err, "failed to decode WKB body")

	_, err = Decode([]byte("nope"))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func Test_EncodeDecode(t *testing.T) {
	for _, dims := range []geometry.DimensionModel{geometry.XY, geometry.XYZ, geometry.XYM, geometry.XYZM} {
		t.Run(dims.String(), func(t *testing.T) {
			c := geometry.NewCollection(dims)
			c.SRID = 2056
			c.DeclaredType = geometry.GeometryCollection
			c.AddPointVertex(geometry.Vertex{X: 1, Y: 2, Z: 3, M: 4})
			l := c.AddLineString(2)
			l.SetVertex(0, geometry.Vertex{X: -1, Y: -1, Z: 1, M: 1})
			l.SetVertex(1, geometry.Vertex{X: 5, Y: 6, Z: 7, M: 8})

			buf, err := Encode(c)
			require.NoError(t, err)
			require.Equal(t, []byte{'G', 'P', 0, 0x03}, buf[:4])

			env, ok, err := ReadEnvelope(buf)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, Envelope{MinX: -1, MaxX: 5, MinY: -1, MaxY: 6}, env)

			d, err := Codec{}.Decode(buf)
			require.NoError(t, err)
			require.Equal(t, c, d)
			require.True(t, Codec{}.IsValid(buf))
		})
	}
}

func Test_Encode_Empty(t *testing.T) {
	_, err := Codec{}.Encode(geometry.NewCollection(geometry.XY))
	require.ErrorIs(t, err, ErrEmptyGeometry)
}
