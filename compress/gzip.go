//go:build !no_gzip
// +build !no_gzip

package compress

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// geometry blobs are small; favour speed over ratio
const gzipLevel = gzip.BestSpeed

var (
	gzipWriterPool = sync.Pool{
		New: func() any {
			w, _ := gzip.NewWriterLevel(nil, gzipLevel)
			return w
		},
	}
	gzipReaderPool sync.Pool
)

func init() {
	compressors[Gzip] = &Compressor{
		Compress: func(buf []byte) []byte {
			res := new(bytes.Buffer)
			w := gzipWriterPool.Get().(*gzip.Writer)
			defer gzipWriterPool.Put(w)
			w.Reset(res)
			if _, err := w.Write(buf); err != nil {
				return nil
			}
			if err := w.Close(); err != nil {
				return nil
			}
			w.Reset(nil)
			return res.Bytes()
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			rbuf := bytes.NewReader(buf)
			r, ok := gzipReaderPool.Get().(*gzip.Reader)
			if ok {
				if err := r.Reset(rbuf); err != nil {
					return nil, err
				}
			} else {
				var err error
				if r, err = gzip.NewReader(rbuf); err != nil {
					return nil, err
				}
			}
			defer func() {
				_ = r.Close()
				gzipReaderPool.Put(r)
			}()
			return LimitedReadAll(r, GetMaxDecompressedSize())
		},
	}
}
