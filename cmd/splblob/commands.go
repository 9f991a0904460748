package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hangxie/spatialite-go/archive"
	"github.com/hangxie/spatialite-go/blob"
	"github.com/hangxie/spatialite-go/compress"
	"github.com/hangxie/spatialite-go/geometry"
	"github.com/hangxie/spatialite-go/gpkg"
	"github.com/hangxie/spatialite-go/source"
	"github.com/hangxie/spatialite-go/sqlfunc"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary is what inspect prints.
type Summary struct {
	Format      string               `json:"format"`
	Size        int                  `json:"size"`
	Class       string               `json:"class"`
	SRID        int32                `json:"srid"`
	Dimensions  string               `json:"dimensions"`
	Compressed  bool                 `json:"compressed"`
	Points      int                  `json:"points"`
	LineStrings int                  `json:"linestrings"`
	Polygons    int                  `json:"polygons"`
	BoundingBox geometry.BoundingBox `json:"bbox"`
	ZRange      *Range               `json:"z_range,omitempty"`
	MRange      *Range               `json:"m_range,omitempty"`
}

type InspectCmd struct {
	File string `arg:"" help:"Blob file, native or GeoPackage binary (- for stdin)"`
}

func (c *InspectCmd) Run(g *Globals) error {
	buf, err := readFile(c.File)
	if err != nil {
		return err
	}
	summary, err := inspect(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	g.Logger.Debug("inspected blob", "file", c.File, "class", summary.Class)

	enc := json.NewEncoder(g.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func inspect(buf []byte) (*Summary, error) {
	coll, err := blob.DecodeWithOptions(buf, blob.DecodeOptions{AllowGeoPackage: true})
	if err != nil {
		return nil, err
	}
	s := &Summary{
		Format:      "spatialite",
		Size:        len(buf),
		Class:       coll.GeometryType().String() + coll.DimensionModel().Suffix(),
		SRID:        coll.SRID,
		Dimensions:  coll.DimensionModel().String(),
		Points:      coll.NumPoints(),
		LineStrings: coll.NumLineStrings(),
		Polygons:    coll.NumPolygons(),
		BoundingBox: coll.BoundingBox,
	}
	if gpkg.IsValid(buf) {
		s.Format = "gpkg"
	} else {
		if s.Compressed, err = blob.IsCompressed(buf); err != nil {
			return nil, err
		}
		class, err := blob.ClassFromBlob(buf)
		if err != nil {
			return nil, err
		}
		s.Class = class.TypeName()
	}
	if lo, hi, ok := coll.ZRange(); ok {
		s.ZRange = &Range{Min: lo, Max: hi}
	}
	if lo, hi, ok := coll.MRange(); ok {
		s.MRange = &Range{Min: lo, Max: hi}
	}
	return s, nil
}

type ValidateCmd struct {
	Files []string `arg:"" help:"Blob files to check"`
}

var errInvalid = errors.New("invalid blobs found")

func (c *ValidateCmd) Run(g *Globals) error {
	bad := 0
	for _, file := range c.Files {
		buf, err := readFile(file)
		if err == nil {
			err = blob.Validate(buf)
		}
		if err != nil {
			bad++
			g.Logger.Warn("invalid blob", "file", file, "error", err)
			fmt.Fprintf(g.Out, "INVALID %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(g.Out, "OK %s\n", file)
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, bad, len(c.Files))
	}
	return nil
}

// rewriteFile reads in, applies f and writes the result to out.
func rewriteFile(g *Globals, op, in, out string, f func([]byte) ([]byte, error)) error {
	buf, err := readFile(in)
	if err != nil {
		return err
	}
	res, err := f(buf)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, in, err)
	}
	if err := writeFile(out, res); err != nil {
		return err
	}
	g.Logger.Info(op, "in", in, "out", out, "in_size", len(buf), "out_size", len(res))
	return nil
}

type CompressCmd struct {
	In  string `arg:"" help:"Input blob"`
	Out string `arg:"" help:"Output blob"`
}

func (c *CompressCmd) Run(g *Globals) error {
	return rewriteFile(g, "compress", c.In, c.Out, blob.Compress)
}

type UncompressCmd struct {
	In  string `arg:"" help:"Input blob"`
	Out string `arg:"" help:"Output blob"`
}

func (c *UncompressCmd) Run(g *Globals) error {
	return rewriteFile(g, "uncompress", c.In, c.Out, blob.Uncompress)
}

type SetSRIDCmd struct {
	In   string `arg:"" help:"Input blob"`
	Out  string `arg:"" help:"Output blob"`
	SRID int32  `required:"" name:"srid" help:"New SRID"`
}

func (c *SetSRIDCmd) Run(g *Globals) error {
	return rewriteFile(g, "set-srid", c.In, c.Out, func(buf []byte) ([]byte, error) {
		return blob.SetSRID(buf, c.SRID)
	})
}

type ToGpkgCmd struct {
	In  string `arg:"" help:"Input blob"`
	Out string `arg:"" help:"Output GeoPackage binary"`
}

func (c *ToGpkgCmd) Run(g *Globals) error {
	return rewriteFile(g, "to-gpkg", c.In, c.Out, func(buf []byte) ([]byte, error) {
		coll, err := blob.Decode(buf)
		if err != nil {
			return nil, err
		}
		return gpkg.Encode(coll)
	})
}

type FromGpkgCmd struct {
	In        string `arg:"" help:"Input GeoPackage binary"`
	Out       string `arg:"" help:"Output blob"`
	Compress  bool   `help:"Compress lines and rings (also encode.compress)"`
	BigEndian bool   `help:"Write big-endian (also encode.big_endian)"`
}

func (c *FromGpkgCmd) Run(g *Globals) error {
	opts := blob.EncodeOptions{
		Compress:  c.Compress || g.Config.Encode.Compress,
		BigEndian: c.BigEndian || g.Config.Encode.BigEndian,
	}
	return rewriteFile(g, "from-gpkg", c.In, c.Out, func(buf []byte) ([]byte, error) {
		coll, err := blob.DecodeWithOptions(buf, blob.DecodeOptions{RequireGeoPackage: true})
		if err != nil {
			return nil, err
		}
		return blob.EncodeWithOptions(coll, opts)
	})
}

// TableFlags are shared by export and import; empty values fall back to the
// sqlite section of the config.
type TableFlags struct {
	DB     string `required:"" name:"db" help:"SQLite database file"`
	Table  string `help:"Table name"`
	Column string `help:"Geometry column name"`
}

func (t TableFlags) resolve(cfg *Config) (table, column string) {
	table, column = t.Table, t.Column
	if table == "" {
		table = cfg.SQLite.Table
	}
	if column == "" {
		column = cfg.SQLite.Column
	}
	return quoteIdent(table), quoteIdent(column)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func openDB(path string) (*sql.DB, error) {
	if err := sqlfunc.Register(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

type ExportCmd struct {
	TableFlags `embed:""`
	Out        string `required:"" help:"Archive file to write"`
	Codec      string `help:"Compression codec (default from config)"`
}

func (c *ExportCmd) Run(g *Globals) error {
	name := c.Codec
	if name == "" {
		name = g.Config.Archive.Codec
	}
	codec, err := compress.ParseCodec(name)
	if err != nil {
		return err
	}
	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	table, column := c.resolve(g.Config)

	var skipped int
	if err := db.QueryRow(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s IS NOT NULL AND IsValidGeometryBlob(%s) = 0", table, column, column,
	)).Scan(&skipped); err != nil {
		return fmt.Errorf("count invalid rows: %w", err)
	}
	if skipped > 0 {
		g.Logger.Warn("skipping invalid blobs", "table", table, "count", skipped)
	}

	rows, err := db.Query(fmt.Sprintf(
		"SELECT %s FROM %s WHERE IsValidGeometryBlob(%s) = 1 ORDER BY rowid", column, table, column,
	))
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	fw, err := createFile(c.Out)
	if err != nil {
		return err
	}
	w, err := archive.NewWriter(fw, codec)
	if err != nil {
		_ = fw.Close()
		return err
	}
	for rows.Next() {
		var buf []byte
		if err := rows.Scan(&buf); err != nil {
			_ = fw.Close()
			return err
		}
		if err := w.Append(buf); err != nil {
			_ = fw.Close()
			return err
		}
	}
	if err := rows.Err(); err != nil {
		_ = fw.Close()
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}
	g.Logger.Info("export", "table", table, "out", c.Out, "codec", codec, "records", w.Count(), "skipped", skipped)
	if c.Out != stdio {
		fmt.Fprintf(g.Out, "exported %d blobs to %s\n", w.Count(), c.Out)
	}
	return nil
}

type ImportCmd struct {
	TableFlags `embed:""`
	In         string `required:"" help:"Archive file to read"`
}

func (c *ImportCmd) Run(g *Globals) error {
	fr, err := openFile(c.In)
	if err != nil {
		return err
	}
	defer func() {
		_ = fr.Close()
	}()
	br, err := source.NewBufferedReader(fr, 0)
	if err != nil {
		return err
	}
	r, err := archive.NewReader(br)
	if err != nil {
		return fmt.Errorf("%s: %w", c.In, err)
	}

	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	table, column := c.resolve(g.Config)

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err := tx.Exec(fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, %s BLOB)", table, column,
	)); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", table, column))
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	count := 0
	for {
		buf, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", c.In, err)
		}
		if _, err := stmt.Exec(buf); err != nil {
			return err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	g.Logger.Info("import", "in", c.In, "table", table, "codec", r.Codec(), "records", count)
	fmt.Fprintf(g.Out, "imported %d blobs into %s\n", count, table)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Out, "splblob %s\n", version)
	fmt.Fprintf(g.Out, "codecs: %v\n", compress.Codecs())
	return nil
}
