// Command splblob inspects, validates and converts SpatiaLite geometry blobs
// and moves them between SQLite tables and blob archives.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/hangxie/spatialite-go/compress"
	"github.com/hangxie/spatialite-go/internal/logging"
)

var version = "dev"

// Globals is bound into every command's Run method.
type Globals struct {
	Config *Config
	Out    io.Writer
	Logger *slog.Logger
}

type CLI struct {
	ConfigFile string `name:"config" short:"c" help:"Configuration file (default: ./splblob.yaml)" type:"path"`
	LogLevel   string `help:"Log level: debug, info, warn or error"`
	LogFormat  string `help:"Log format: text or json"`

	Inspect    InspectCmd    `cmd:"" help:"Print a JSON summary of a blob"`
	Validate   ValidateCmd   `cmd:"" help:"Check that blobs are well formed"`
	Compress   CompressCmd   `cmd:"" help:"Re-encode a blob with compressed lines and rings"`
	Uncompress UncompressCmd `cmd:"" help:"Re-encode a blob with every vertex in full"`
	SetSRID    SetSRIDCmd    `cmd:"" name:"set-srid" help:"Change the SRID stored in a blob"`
	ToGpkg     ToGpkgCmd     `cmd:"" name:"to-gpkg" help:"Convert a blob to GeoPackage binary"`
	FromGpkg   FromGpkgCmd   `cmd:"" name:"from-gpkg" help:"Convert GeoPackage binary to a blob"`
	Export     ExportCmd     `cmd:"" help:"Copy a SQLite geometry column into an archive"`
	Import     ImportCmd     `cmd:"" help:"Load an archive into a SQLite geometry column"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// globals loads configuration and applies the logging flags on top of it.
func (c *CLI) globals(out, logOut io.Writer) (*Globals, error) {
	cfg, err := LoadConfig(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	compress.SetMaxDecompressedSize(cfg.Limits.MaxDecompressedSize)
	return &Globals{Config: cfg, Out: out, Logger: logger}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("splblob"),
		kong.Description("SpatiaLite geometry blob tool"),
		kong.UsageOnError(),
	)
	g, err := cli.globals(os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(g))
}
