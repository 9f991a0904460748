package compress

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync/atomic"
)

// Codec identifies a block compression method. The numeric values are
// persisted in archive headers and must not change.
type Codec uint8

const (
	Uncompressed Codec = 0
	Snappy       Codec = 1
	Gzip         Codec = 2
	Brotli       Codec = 4
	Zstd         Codec = 6
	LZ4Raw       Codec = 7
)

var codecNames = map[Codec]string{
	Uncompressed: "uncompressed",
	Snappy:       "snappy",
	Gzip:         "gzip",
	Brotli:       "brotli",
	Zstd:         "zstd",
	LZ4Raw:       "lz4raw",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// ParseCodec maps a case-insensitive codec name to its Codec. "none" is
// accepted for Uncompressed.
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" || name == "" {
		return Uncompressed, nil
	}
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown compress method: %q", name)
}

// Codecs lists the codecs compiled into this binary, in ascending order.
func Codecs() []Codec {
	out := make([]Codec, 0, len(compressors))
	for c := range compressors {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// LimitedReadAll reads from r until EOF or until maxSize bytes have been read.
// It returns an error if the data would exceed maxSize.
func LimitedReadAll(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}

	// Read up to maxSize+1 bytes to detect if we exceed the limit
	limited := io.LimitReader(r, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("decompressed data exceeds maximum size %d", maxSize)
	}

	return data, nil
}

// DefaultMaxDecompressedSize is the default maximum size for decompressed data (256 MB).
const DefaultMaxDecompressedSize = 256 * 1024 * 1024

// MaxDecompressionRatio is the maximum allowed ratio of decompressed to compressed size.
const MaxDecompressionRatio = 1000

var maxDecompressedSize int64 = DefaultMaxDecompressedSize

// SetMaxDecompressedSize sets the maximum allowed size for decompressed data.
// Set to 0 to disable the limit.
func SetMaxDecompressedSize(size int64) {
	atomic.StoreInt64(&maxDecompressedSize, size)
}

// GetMaxDecompressedSize returns the current maximum decompressed size limit.
func GetMaxDecompressedSize() int64 {
	return atomic.LoadInt64(&maxDecompressedSize)
}

type Compressor struct {
	Compress   func(buf []byte) []byte
	Uncompress func(buf []byte) ([]byte, error)
}

var compressors = map[Codec]*Compressor{}

// Uncompress decompresses data using the specified compression method and
// checks the output against the size and ratio limits.
func Uncompress(buf []byte, codec Codec) ([]byte, error) {
	c, ok := compressors[codec]
	if !ok {
		return nil, fmt.Errorf("unsupported compress method: %v", codec)
	}

	result, err := c.Uncompress(buf)
	if err != nil {
		return nil, err
	}

	maxSize := GetMaxDecompressedSize()
	if maxSize > 0 && int64(len(result)) > maxSize {
		return nil, fmt.Errorf("decompressed size %d exceeds maximum allowed size %d", len(result), maxSize)
	}

	if len(buf) > 0 {
		ratio := int64(len(result)) / int64(len(buf))
		if ratio > MaxDecompressionRatio {
			return nil, fmt.Errorf("decompression ratio %d:1 exceeds maximum allowed ratio %d:1", ratio, MaxDecompressionRatio)
		}
	}

	return result, nil
}

// UncompressWithExpectedSize decompresses data and validates that the result
// matches the expected size recorded next to it.
func UncompressWithExpectedSize(buf []byte, codec Codec, expectedSize int64) ([]byte, error) {
	c, ok := compressors[codec]
	if !ok {
		return nil, fmt.Errorf("unsupported compress method: %v", codec)
	}

	maxSize := GetMaxDecompressedSize()
	if maxSize > 0 && expectedSize > maxSize {
		return nil, fmt.Errorf("expected decompressed size %d exceeds maximum allowed size %d", expectedSize, maxSize)
	}

	if len(buf) > 0 && expectedSize/int64(len(buf)) > MaxDecompressionRatio {
		return nil, fmt.Errorf("expected decompression ratio exceeds maximum allowed ratio %d:1", MaxDecompressionRatio)
	}

	result, err := c.Uncompress(buf)
	if err != nil {
		return nil, err
	}

	if int64(len(result)) != expectedSize {
		return nil, fmt.Errorf("decompressed size %d does not match expected size %d", len(result), expectedSize)
	}

	return result, nil
}

// Compress returns nil for an unsupported codec.
func Compress(buf []byte, codec Codec) []byte {
	c, ok := compressors[codec]
	if !ok {
		return nil
	}
	return c.Compress(buf)
}

// CompressWithError is Compress reporting unsupported codecs and codec
// failures as errors.
func CompressWithError(buf []byte, codec Codec) ([]byte, error) {
	c, ok := compressors[codec]
	if !ok {
		return nil, fmt.Errorf("unsupported compress method: %v", codec)
	}
	res := c.Compress(buf)
	if res == nil && len(buf) > 0 {
		return nil, fmt.Errorf("failed to compress %d bytes with %v", len(buf), codec)
	}
	return res, nil
}
