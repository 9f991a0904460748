//go:build !no_lz4raw
// +build !no_lz4raw

package compress

import (
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

func init() {
	compressors[LZ4Raw] = &Compressor{
		Compress: func(buf []byte) []byte {
			lz4hc := lz4.CompressorHC{Level: lz4.Level9}
			res := make([]byte, lz4.CompressBlockBound(len(buf)))
			count, err := lz4hc.CompressBlock(buf, res)
			if err != nil {
				return nil
			}
			return res[:count]
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			maxSize := GetMaxDecompressedSize()

			// raw blocks carry no size; grow the buffer until it fits
			size := max(int64(len(buf))*4, 256)
			if maxSize > 0 {
				size = min(size, maxSize)
			}
			for {
				res := make([]byte, size)
				count, err := lz4.UncompressBlock(buf, res)
				switch {
				case err == nil:
					return res[:count], nil
				case !errors.Is(err, lz4.ErrInvalidSourceShortBuffer):
					return nil, err
				case maxSize > 0 && size >= maxSize:
					return nil, fmt.Errorf("lz4 decompression would exceed maximum size %d", maxSize)
				}
				size *= 2
				if maxSize > 0 {
					size = min(size, maxSize)
				}
			}
		},
	}
}
