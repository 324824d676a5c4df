// Package objectstore defines the flat key/value object storage the content
// layer is built on. Swap implementations by changing the driver selected at
// startup: the MinIO implementation works with any S3-compatible provider, the
// S3 implementation uses the AWS SDK, and the memory implementation backs tests
// and local sandboxes.
package objectstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no object exists at a key.
var ErrNotFound = errors.New("object not found")

// ErrPreconditionFailed is returned by PutIfAbsent when the key already exists.
var ErrPreconditionFailed = errors.New("object already exists")

// ErrConditionalUnsupported is returned by PutIfAbsent on stores configured
// without conditional writes.
var ErrConditionalUnsupported = errors.New("conditional writes are not supported")

// ErrInvalidToken is returned by List when the continuation token was not
// issued by the store.
var ErrInvalidToken = errors.New("invalid continuation token")

// DefaultPageSize bounds a single List call when ListOptions.Limit is zero.
const DefaultPageSize = 1000

// ListOptions selects one page of keys.
type ListOptions struct {
	Prefix string
	// Token is the continuation token returned by the previous page; empty
	// starts from the beginning. It is opaque to callers.
	Token string
	// Delimiter groups keys sharing a prefix up to the delimiter into Page.Prefixes.
	Delimiter string
	Limit     int
}

// Page is one page of a listing.
type Page struct {
	Keys      []string
	Prefixes  []string
	NextToken string
}

// Store is the subset of object-storage operations the service relies on.
type Store interface {
	// Bucket returns the name of the backing bucket.
	Bucket() string
	// CreateBucket creates the backing bucket.
	CreateBucket(ctx context.Context) error
	// SetBucketPolicy replaces the bucket access policy document.
	SetBucketPolicy(ctx context.Context, policy string) error
	// Get returns the object stored at key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Put stores data at key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte) error
	// PutIfAbsent stores data at key only if nothing is stored there yet.
	PutIfAbsent(ctx context.Context, key string, data []byte) error
	// ConditionalWrites reports whether PutIfAbsent is available.
	ConditionalWrites() bool
	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns one page of keys in lexicographic order.
	List(ctx context.Context, opts ListOptions) (Page, error)
}

// Options configures the network-backed drivers.
type Options struct {
	Endpoint          string
	AccessKey         string
	SecretKey         string
	Region            string
	Bucket            string
	UseSSL            bool
	ConditionalWrites bool
}

func pageSize(limit int) int {
	if limit <= 0 || limit > DefaultPageSize {
		return DefaultPageSize
	}
	return limit
}

func notFound(op, key string) error {
	return fmt.Errorf("%s %q: %w", op, key, ErrNotFound)
}
