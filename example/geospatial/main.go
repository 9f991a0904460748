//go:build example

package main

import (
	"fmt"
	"io"
	"log"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/hangxie/spatialite-go/archive"
	"github.com/hangxie/spatialite-go/blob"
	"github.com/hangxie/spatialite-go/compress"
	"github.com/hangxie/spatialite-go/interop"
	"github.com/hangxie/spatialite-go/source"
	"github.com/hangxie/spatialite-go/source/local"
)

func main() {
	shapes := []orb.Geometry{
		orb.Point{1, 2},
		orb.LineString{{-122.4, 37.8}, {-122.41, 37.81}, {-122.43, 37.8}},
		orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, {{2, 2}, {4, 2}, {4, 4}, {2, 2}}},
		orb.MultiPoint{{10, 20}, {30, 40}},
		orb.Collection{orb.Point{0, 0}, orb.LineString{{1, 1}, {2, 2}}},
	}

	// Write every shape, compressed where possible, into an archive
	fw, err := local.NewLocalFileWriter("/tmp/geospatial.spla")
	if err != nil {
		log.Fatal(err)
	}
	aw, err := archive.NewWriter(fw, compress.Zstd)
	if err != nil {
		log.Fatal(err)
	}
	for _, shape := range shapes {
		c, err := interop.FromOrb(shape, 4326)
		if err != nil {
			log.Fatal(err)
		}
		if err := aw.AppendCollection(c, blob.EncodeOptions{Compress: true}); err != nil {
			log.Fatal(err)
		}
	}
	if err := fw.Close(); err != nil {
		log.Fatal(err)
	}

	// Read them back and print class, bounding box and WKT
	fr, err := local.NewLocalFileReader("/tmp/geospatial.spla")
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = fr.Close()
	}()
	br, err := source.NewBufferedReader(fr, 0)
	if err != nil {
		log.Fatal(err)
	}
	ar, err := archive.NewReader(br)
	if err != nil {
		log.Fatal(err)
	}
	for {
		buf, err := ar.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		env, err := blob.ReadEnvelope(buf)
		if err != nil {
			log.Fatal(err)
		}
		c, err := blob.Decode(buf)
		if err != nil {
			log.Fatal(err)
		}
		g, err := interop.ToGeom(c)
		if err != nil {
			log.Fatal(err)
		}
		text, err := wkt.Marshal(g)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-20s %3d bytes  X[%.2f, %.2f] Y[%.2f, %.2f]  %s\n",
			env.Class, len(buf),
			env.BoundingBox.MinX, env.BoundingBox.MaxX,
			env.BoundingBox.MinY, env.BoundingBox.MaxY,
			text)
	}
}
