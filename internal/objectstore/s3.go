package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by S3Store. *s3.Client satisfies
// it; tests inject a mock.
type S3Client interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ S3Client = (*s3.Client)(nil)

// S3Store implements Store for AWS S3 through the AWS SDK.
type S3Store struct {
	client      S3Client
	bucket      string
	region      string
	conditional bool
}

// NewS3Store wraps an existing S3 client.
func NewS3Store(client S3Client, opts Options) *S3Store {
	return &S3Store{
		client:      client,
		bucket:      opts.Bucket,
		region:      opts.Region,
		conditional: opts.ConditionalWrites,
	}
}

// OpenS3 builds an S3 client from opts. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies. A custom
// endpoint switches to path-style addressing for S3-compatible services.
func OpenS3(ctx context.Context, opts Options) (*S3Store, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			scheme := "http://"
			if opts.UseSSL {
				scheme = "https://"
			}
			o.BaseEndpoint = aws.String(scheme + opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Store(client, opts), nil
}

func (s *S3Store) Bucket() string { return s.bucket }

func (s *S3Store) ConditionalWrites() bool { return s.conditional }

// CreateBucket creates the configured bucket. us-east-1 must not carry a
// location constraint.
func (s *S3Store) CreateBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) SetBucketPolicy(ctx context.Context, policy string) error {
	_, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.bucket),
		Policy: aws.String(policy),
	})
	if err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, notFound("get object", key)
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %q: %w", key, err)
	}
	return true, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// PutIfAbsent uses S3 conditional writes (If-None-Match: *).
func (s *S3Store) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	if !s.conditional {
		return ErrConditionalUnsupported
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		// S3 returns PreconditionFailed when the key exists and
		// ConditionalRequestConflict when a concurrent conditional write won.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			code := apiErr.ErrorCode()
			if code == "PreconditionFailed" || code == "ConditionalRequestConflict" {
				return fmt.Errorf("put object %q: %w", key, ErrPreconditionFailed)
			}
		}
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isS3NotFound(err) {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, opts ListOptions) (Page, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(opts.Prefix),
		MaxKeys: aws.Int32(int32(pageSize(opts.Limit))),
	}
	if opts.Token != "" {
		input.ContinuationToken = aws.String(opts.Token)
	}
	if opts.Delimiter != "" {
		input.Delimiter = aws.String(opts.Delimiter)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if opts.Token != "" && errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidArgument" {
			return Page{}, fmt.Errorf("list objects %q: %w: %v", opts.Prefix, ErrInvalidToken, err)
		}
		return Page{}, fmt.Errorf("list objects %q: %w", opts.Prefix, err)
	}

	page := Page{Keys: make([]string, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Keys = append(page.Keys, aws.ToString(obj.Key))
	}
	for _, p := range out.CommonPrefixes {
		page.Prefixes = append(page.Prefixes, aws.ToString(p.Prefix))
	}
	if aws.ToBool(out.IsTruncated) {
		page.NextToken = aws.ToString(out.NextContinuationToken)
	}
	return page, nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	return errors.As(err, &nf)
}
