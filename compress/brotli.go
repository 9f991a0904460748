//go:build !no_brotli
// +build !no_brotli

package compress

import (
	"bytes"
	"sync"

	"github.com/andybalholm/brotli"
)

var brotliWriterPool = sync.Pool{
	New: func() any {
		return brotli.NewWriterLevel(nil, brotli.DefaultCompression)
	},
}

func init() {
	compressors[Brotli] = &Compressor{
		Compress: func(buf []byte) []byte {
			res := new(bytes.Buffer)
			w := brotliWriterPool.Get().(*brotli.Writer)
			defer brotliWriterPool.Put(w)
			w.Reset(res)
			if _, err := w.Write(buf); err != nil {
				return nil
			}
			if err := w.Close(); err != nil {
				return nil
			}
			return res.Bytes()
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			return LimitedReadAll(brotli.NewReader(bytes.NewReader(buf)), GetMaxDecompressedSize())
		},
	}
}
