package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/hangxie/spatialite-go/compress"
	"github.com/hangxie/spatialite-go/source"
	"github.com/hangxie/spatialite-go/source/buffer"
	"github.com/hangxie/spatialite-go/source/gocloud"
	"github.com/hangxie/spatialite-go/source/local"
	"github.com/hangxie/spatialite-go/source/mem"
	"github.com/hangxie/spatialite-go/source/writerfile"
)

// mem:// is served from the process-wide afero filesystem, not a Go CDK
// bucket; other bucket URLs go through gocloud.
const (
	memScheme = "mem://"
	stdio     = "-"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func openFile(path string) (source.FileReader, error) {
	if path == stdio {
		return buffer.NewBufferReader(stdin)
	}
	if name, ok := strings.CutPrefix(path, memScheme); ok {
		return mem.NewMemFileReader(name)
	}
	if gocloud.IsURL(path) {
		return gocloud.NewURLReader(context.Background(), path)
	}
	return local.NewLocalFileReader(path)
}

func createFile(path string) (source.FileWriter, error) {
	if path == stdio {
		return writerfile.NewWriterFile(bufio.NewWriter(stdout)), nil
	}
	if name, ok := strings.CutPrefix(path, memScheme); ok {
		return mem.NewMemFileWriter(name, nil)
	}
	if gocloud.IsURL(path) {
		return gocloud.NewURLWriter(context.Background(), path)
	}
	return local.NewLocalFileWriter(path)
}

func readFile(path string) ([]byte, error) {
	r, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	return source.ReadFile(r, compress.GetMaxDecompressedSize())
}

func writeFile(path string, buf []byte) error {
	w, err := createFile(path)
	if err != nil {
		return err
	}
	return source.WriteFile(w, buf)
}
