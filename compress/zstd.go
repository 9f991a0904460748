//go:build !no_zstd
// +build !no_zstd

package compress

import (
	"github.com/klauspost/compress/zstd"
)

// EncodeAll and DecodeAll are safe for concurrent use, so one of each is shared.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

func init() {
	compressors[Zstd] = &Compressor{
		Compress: func(buf []byte) []byte {
			return zstdEncoder.EncodeAll(buf, nil)
		},
		Uncompress: func(buf []byte) ([]byte, error) {
			return zstdDecoder.DecodeAll(buf, nil)
		},
	}
}
