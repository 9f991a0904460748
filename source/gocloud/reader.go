package gocloud

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"

	"github.com/hangxie/spatialite-go/source"
)

var _ source.FileReader = (*blobReader)(nil)

// blobReader keeps one range reader open across sequential reads and only
// reopens it after a Seek moves the offset.
type blobReader struct {
	blobFile
	offset int64
	reader *blob.Reader
}

func NewBlobReader(ctx context.Context, b *blob.Bucket, name string) (source.FileReader, error) {
	bf := &blobReader{blobFile: blobFile{ctx: ctx, bucket: b}}
	return bf.Open(name)
}

// NewURLReader opens the bucket named by rawURL; closing the reader closes
// the bucket.
func NewURLReader(ctx context.Context, rawURL string) (source.FileReader, error) {
	b, key, err := openBucket(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	r, err := NewBlobReader(ctx, b, key)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	r.(*blobReader).ownsBucket = true
	return r, nil
}

func (b *blobReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += b.offset
	case io.SeekEnd:
		offset += b.size
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid offset %d", offset)
	}
	if offset != b.offset {
		b.dropReader()
		b.offset = offset
	}
	return b.offset, nil
}

func (b *blobReader) dropReader() {
	if b.reader != nil {
		_ = b.reader.Close()
		b.reader = nil
	}
}

func (b *blobReader) Read(p []byte) (int, error) {
	if b.offset >= b.size {
		return 0, io.EOF
	}
	if b.reader == nil {
		r, err := b.bucket.NewRangeReader(b.ctx, b.key, b.offset, -1, nil)
		if err != nil {
			return 0, fmt.Errorf("open reader key=%s offset=%d: %w", b.key, b.offset, err)
		}
		b.reader = r
	}
	n, err := b.reader.Read(p)
	b.offset += int64(n)
	return n, err
}

func (b *blobReader) Close() error {
	b.dropReader()
	return b.closeBucket()
}

func (b *blobReader) Open(name string) (source.FileReader, error) {
	attrs, err := b.bucket.Attributes(b.ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get attributes for blob %s: %w", name, err)
	}
	return &blobReader{
		blobFile: blobFile{ctx: b.ctx, bucket: b.bucket, key: name, size: attrs.Size},
	}, nil
}

// Clone shares the bucket and known size and starts at offset 0.
func (b *blobReader) Clone() (source.FileReader, error) {
	return &blobReader{
		blobFile: blobFile{ctx: b.ctx, bucket: b.bucket, key: b.key, size: b.size},
	}, nil
}
