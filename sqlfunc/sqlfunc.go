// Package sqlfunc exposes the geometry blob codec as SQL scalar functions of
// the pure Go SQLite driver. Importing the package does not register
// anything; call Register before opening connections.
//
// Every function returns NULL for NULL input and for input that is not a
// well-formed blob. IsValidGeometryBlob is the exception and returns 0.
package sqlfunc

import (
	"database/sql/driver"
	"fmt"
	"log/slog"
	"sync"

	"modernc.org/sqlite"

	"github.com/hangxie/spatialite-go/blob"
	"github.com/hangxie/spatialite-go/gpkg"
)

type scalar func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error)

type function struct {
	name  string
	nArgs int32
	impl  scalar
}

var functions = []function{
	{"IsValidGeometryBlob", 1, isValidGeometryBlob},
	{"GeometryBlobSRID", 1, onBlob(geometryBlobSRID)},
	{"MbrMinX", 1, onBlob(mbr(blob.MbrMinX))},
	{"MbrMinY", 1, onBlob(mbr(blob.MbrMinY))},
	{"MbrMaxX", 1, onBlob(mbr(blob.MbrMaxX))},
	{"MbrMaxY", 1, onBlob(mbr(blob.MbrMaxY))},
	{"GeometryType", 1, onBlob(geometryType)},
	{"NumGeometries", 1, onBlob(numGeometries)},
	{"CompressGeometry", 1, onBlob(rewrite(blob.Compress))},
	{"UncompressGeometry", 1, onBlob(rewrite(blob.Uncompress))},
	{"SetGeometrySRID", 2, onBlob(setGeometrySRID)},
	{"AsGPB", 1, onBlob(asGPB)},
	{"GeomFromGPB", 1, onBlob(geomFromGPB)},
	{"BuildMbrBlob", 1, onBlob(buildMbrBlob)},
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the geometry functions to the driver. It is safe to call
// more than once; only the first call registers.
func Register() error {
	registerOnce.Do(func() {
		for _, f := range functions {
			if err := sqlite.RegisterDeterministicScalarFunction(f.name, f.nArgs, f.impl); err != nil {
				registerErr = fmt.Errorf("register %s: %w", f.name, err)
				return
			}
		}
	})
	return registerErr
}

// Names lists the registered function names in registration order.
func Names() []string {
	names := make([]string, len(functions))
	for i, f := range functions {
		names[i] = f.name
	}
	return names
}

// onBlob unwraps the first argument as a blob. NULL and non-blob values
// yield NULL without calling f.
func onBlob(f func(buf []byte, args []driver.Value) (driver.Value, error)) scalar {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		buf, ok := args[0].([]byte)
		if !ok {
			return nil, nil
		}
		v, err := f(buf, args[1:])
		if err != nil {
			slog.Debug("geometry function returned NULL", "size", len(buf), "error", err)
			return nil, nil
		}
		return v, nil
	}
}

func isValidGeometryBlob(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case []byte:
		if err := blob.Validate(v); err != nil {
			slog.Debug("invalid geometry blob", "size", len(v), "error", err)
			return int64(0), nil
		}
		return int64(1), nil
	}
	return int64(0), nil
}

func geometryBlobSRID(buf []byte, _ []driver.Value) (driver.Value, error) {
	if err := blob.Validate(buf); err != nil {
		return nil, err
	}
	env, err := blob.ReadEnvelope(buf)
	if err != nil {
		return nil, err
	}
	return int64(env.SRID), nil
}

// mbr reads straight from the envelope, as the MBR readers never walk the
// payload.
func mbr(read func([]byte) (float64, bool)) func([]byte, []driver.Value) (driver.Value, error) {
	return func(buf []byte, _ []driver.Value) (driver.Value, error) {
		v, ok := read(buf)
		if !ok {
			return nil, blob.ErrMalformedEnvelope
		}
		return v, nil
	}
}

func geometryType(buf []byte, _ []driver.Value) (driver.Value, error) {
	if err := blob.Validate(buf); err != nil {
		return nil, err
	}
	class, err := blob.ClassFromBlob(buf)
	if err != nil {
		return nil, err
	}
	return class.TypeName(), nil
}

func numGeometries(buf []byte, _ []driver.Value) (driver.Value, error) {
	c, err := blob.Decode(buf)
	if err != nil {
		return nil, err
	}
	return int64(c.NumPoints() + c.NumLineStrings() + c.NumPolygons()), nil
}

func rewrite(f func([]byte) ([]byte, error)) func([]byte, []driver.Value) (driver.Value, error) {
	return func(buf []byte, _ []driver.Value) (driver.Value, error) {
		return f(buf)
	}
}

func setGeometrySRID(buf []byte, args []driver.Value) (driver.Value, error) {
	srid, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("srid must be an integer, got %T", args[0])
	}
	return blob.SetSRID(buf, int32(srid))
}

func asGPB(buf []byte, _ []driver.Value) (driver.Value, error) {
	c, err := blob.Decode(buf)
	if err != nil {
		return nil, err
	}
	return gpkg.Encode(c)
}

func geomFromGPB(buf []byte, _ []driver.Value) (driver.Value, error) {
	c, err := blob.DecodeWithOptions(buf, blob.DecodeOptions{RequireGeoPackage: true})
	if err != nil {
		return nil, err
	}
	return blob.Encode(c, false)
}

func buildMbrBlob(buf []byte, _ []driver.Value) (driver.Value, error) {
	if err := blob.Validate(buf); err != nil {
		return nil, err
	}
	c, err := blob.DecodeMBR(buf)
	if err != nil {
		return nil, err
	}
	return blob.Encode(c, false)
}
