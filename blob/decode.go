package blob

import (
	"github.com/hangxie/spatialite-go/geometry"
	"github.com/hangxie/spatialite-go/gpkg"
)

// Container is an alternate self-describing geometry format the decoder may
// delegate to before trying the native layout.
type Container interface {
	IsValid(buf []byte) bool
	Decode(buf []byte) (*geometry.Collection, error)
}

// DecodeOptions controls DecodeWithOptions.
type DecodeOptions struct {
	// AllowGeoPackage delegates buffers recognised by Container to it.
	AllowGeoPackage bool
	// RequireGeoPackage rejects anything Container does not recognise.
	RequireGeoPackage bool
	// Container defaults to gpkg.Codec.
	Container Container
}

// Decode parses a native geometry blob. On any error no collection is
// returned.
func Decode(buf []byte) (*geometry.Collection, error) {
	coll, _, err := walk(buf, true)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

// DecodeWithOptions parses buf, consulting the alternate container first when
// the options ask for it.
func DecodeWithOptions(buf []byte, opts DecodeOptions) (*geometry.Collection, error) {
	if opts.AllowGeoPackage || opts.RequireGeoPackage {
		container := opts.Container
		if container == nil {
			container = gpkg.Codec{}
		}
		if container.IsValid(buf) {
			return container.Decode(buf)
		}
		if opts.RequireGeoPackage {
			return nil, ErrNotGeoPackage
		}
	}
	return Decode(buf)
}

// IsWellFormed runs the decoder's structural walk without building geometry.
func IsWellFormed(buf []byte) bool {
	_, _, err := walk(buf, false)
	return err == nil
}

// Validate is IsWellFormed returning the reason for rejection.
func Validate(buf []byte) error {
	_, _, err := walk(buf, false)
	return err
}

// IsCompressed reports whether any line-string or ring in buf is stored with
// delta compression.
func IsCompressed(buf []byte) (bool, error) {
	_, w, err := walk(buf, false)
	if err != nil {
		return false, err
	}
	return w.sawCompressed, nil
}
