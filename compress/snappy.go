//go:build !no_snappy
// +build !no_snappy

package compress

import (
	"fmt"

	"github.com/klauspost/compress/snappy"
)

func init() {
	compressors[Snappy] = &Compressor{
		Compress: func(buf []byte) []byte {
			return snappy.Encode(nil, buf)
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			n, err := snappy.DecodedLen(buf)
			if err != nil {
				return nil, err
			}
			if maxSize := GetMaxDecompressedSize(); maxSize > 0 && int64(n) > maxSize {
				return nil, fmt.Errorf("snappy decoded length %d exceeds maximum size %d", n, maxSize)
			}
			return snappy.Decode(nil, buf)
		},
	}
}
