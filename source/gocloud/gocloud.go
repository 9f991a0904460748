// Package gocloud reads and writes objects in any bucket supported by the Go
// CDK: s3://, gs://, file:// and mem:// URLs work out of the box.
package gocloud

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

var schemes = []string{"s3", "gs", "file", "mem"}

type blobFile struct {
	ctx    context.Context
	bucket *blob.Bucket
	key    string
	size   int64

	// set when the bucket was opened from a URL and belongs to this file
	ownsBucket bool
}

func (b *blobFile) closeBucket() error {
	if b.ownsBucket {
		b.ownsBucket = false
		return b.bucket.Close()
	}
	return nil
}

// IsURL reports whether path names an object this package can open.
func IsURL(path string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(path, s+"://") {
			return true
		}
	}
	return false
}

// SplitURL separates an object URL into its bucket URL and key, e.g.
// "s3://bucket/dir/a.spla?region=eu-west-1" gives
// "s3://bucket?region=eu-west-1" and "dir/a.spla". file:// URLs use the
// parent directory as the bucket.
func SplitURL(rawURL string) (bucketURL, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %w", rawURL, err)
	}
	if u.Scheme == "file" {
		i := strings.LastIndex(u.Path, "/")
		if i < 0 || i == len(u.Path)-1 {
			return "", "", fmt.Errorf("no object key in %s", rawURL)
		}
		key = u.Path[i+1:]
		u.Path = u.Path[:i]
		if u.Path == "" {
			u.Path = "/"
		}
		return u.String(), key, nil
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("no object key in %s", rawURL)
	}
	u.Path = ""
	return u.String(), key, nil
}

func openBucket(ctx context.Context, rawURL string) (*blob.Bucket, string, error) {
	bucketURL, key, err := SplitURL(rawURL)
	if err != nil {
		return nil, "", err
	}
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, "", fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	return b, key, nil
}
