package storage

import (
	"fmt"
	"strings"
)

// MinIOConfig holds the S3-compatible endpoint used by the object export sink.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Enabled reports whether an endpoint was configured.
func (c *MinIOConfig) Enabled() bool {
	return c != nil && c.Endpoint != ""
}

// Scheme prefixes destinations handled by the object store.
const Scheme = "s3://"

// ObjectRef names an object as bucket + key.
type ObjectRef struct {
	Bucket string
	Key    string
}

func (o ObjectRef) String() string {
	return Scheme + o.Bucket + "/" + o.Key
}

// IsObjectURL reports whether dest uses the s3:// scheme.
func IsObjectURL(dest string) bool {
	return strings.HasPrefix(dest, Scheme)
}

// ParseObjectURL splits s3://bucket/key. An empty key, or one ending in "/",
// gets defaultName appended.
func ParseObjectURL(dest, defaultName string) (ObjectRef, error) {
	if !IsObjectURL(dest) {
		return ObjectRef{}, fmt.Errorf("not an object url: %q", dest)
	}
	rest := strings.TrimPrefix(dest, Scheme)
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return ObjectRef{}, fmt.Errorf("object url %q has no bucket", dest)
	}
	key = strings.TrimLeft(key, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += defaultName
	}
	return ObjectRef{Bucket: bucket, Key: key}, nil
}
