package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
// Listing goes through minio.Core so the backend's own continuation tokens
// are handed to callers unchanged.
type MinioStore struct {
	client      *minio.Client
	core        *minio.Core
	bucket      string
	region      string
	conditional bool
}

// NewMinioStore creates a MinIO client for opts. It performs no network I/O;
// bucket creation is left to the provisioner.
func NewMinioStore(opts Options) (*MinioStore, error) {
	core, err := minio.NewCore(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioStore{
		client:      core.Client,
		core:        core,
		bucket:      opts.Bucket,
		region:      opts.Region,
		conditional: opts.ConditionalWrites,
	}, nil
}

func (s *MinioStore) Bucket() string { return s.bucket }

func (s *MinioStore) ConditionalWrites() bool { return s.conditional }

// CreateBucket creates the configured bucket in the configured region.
func (s *MinioStore) CreateBucket(ctx context.Context) error {
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// SetBucketPolicy installs policy on the configured bucket.
func (s *MinioStore) SetBucketPolicy(ctx context.Context, policy string) error {
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	return nil
}

func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return nil, notFound("get object", key)
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key only surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isMinioNotFound(err) {
			return nil, notFound("get object", key)
		}
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", key, err)
	}
	return true, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// PutIfAbsent sends If-None-Match: * so the backend rejects the write when
// the key already exists.
func (s *MinioStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	if !s.conditional {
		return ErrConditionalUnsupported
	}

	opts := minio.PutObjectOptions{ContentType: "application/json"}
	opts.SetMatchETagExcept("*")

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "PreconditionFailed" || errResp.StatusCode == http.StatusPreconditionFailed {
			return fmt.Errorf("put object %q: %w", key, ErrPreconditionFailed)
		}
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMinioNotFound(err) {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// List issues a single ListObjectsV2 request. Core does not take a context,
// so cancellation is checked before the call.
func (s *MinioStore) List(ctx context.Context, opts ListOptions) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	res, err := s.core.ListObjectsV2(s.bucket, opts.Prefix, "", opts.Token, opts.Delimiter, pageSize(opts.Limit))
	if err != nil {
		if opts.Token != "" && minio.ToErrorResponse(err).Code == "InvalidArgument" {
			return Page{}, fmt.Errorf("list objects %q: %w: %v", opts.Prefix, ErrInvalidToken, err)
		}
		return Page{}, fmt.Errorf("list objects %q: %w", opts.Prefix, err)
	}

	page := Page{Keys: make([]string, 0, len(res.Contents))}
	for _, obj := range res.Contents {
		page.Keys = append(page.Keys, obj.Key)
	}
	for _, p := range res.CommonPrefixes {
		page.Prefixes = append(page.Prefixes, p.Prefix)
	}
	if res.IsTruncated {
		page.NextToken = res.NextContinuationToken
	}
	return page, nil
}

func isMinioNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}
