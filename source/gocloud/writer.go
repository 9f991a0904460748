package gocloud

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/blob"

	"github.com/hangxie/spatialite-go/source"
)

var _ source.FileWriter = (*blobWriter)(nil)

type blobWriter struct {
	blobFile
	writer *blob.Writer
}

func NewBlobWriter(ctx context.Context, b *blob.Bucket, name string) (source.FileWriter, error) {
	bf := &blobWriter{blobFile: blobFile{ctx: ctx, bucket: b}}
	return bf.Create(name)
}

// NewURLWriter opens the bucket named by rawURL; closing the writer closes
// the bucket.
func NewURLWriter(ctx context.Context, rawURL string) (source.FileWriter, error) {
	b, key, err := openBucket(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	w, err := NewBlobWriter(ctx, b, key)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	w.(*blobWriter).ownsBucket = true
	return w, nil
}

// Write replaces any existing object. Nothing is guaranteed to be stored
// until Close succeeds.
func (b *blobWriter) Write(p []byte) (int, error) {
	if b.writer == nil {
		return 0, errors.New("writer not created")
	}
	n, err := b.writer.Write(p)
	b.size += int64(n)
	return n, err
}

func (b *blobWriter) Close() error {
	var err error
	if b.writer != nil {
		err = b.writer.Close()
		b.writer = nil
	}
	return errors.Join(err, b.closeBucket())
}

func (b *blobWriter) Create(name string) (source.FileWriter, error) {
	if name == "" {
		return nil, errors.New("file name empty")
	}
	w, err := b.bucket.NewWriter(b.ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob writer %s: %w", name, err)
	}
	return &blobWriter{
		blobFile: blobFile{ctx: b.ctx, bucket: b.bucket, key: name},
		writer:   w,
	}, nil
}
