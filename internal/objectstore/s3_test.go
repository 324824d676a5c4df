package objectstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.CreateBucketOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, _ ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutBucketPolicyOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.DeleteObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func newTestS3Store(client S3Client) *S3Store {
	return NewS3Store(client, Options{Bucket: "cms", Region: "eu-west-1", ConditionalWrites: true})
}

func TestS3Store_Get(t *testing.T) {
	client := new(mockS3Client)
	store := newTestS3Store(client)

	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == "cms" && *in.Key == "items/posts/foo.json"
	})).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(`{"itemName":"Foo"}`)),
	}, nil).Once()
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == "items/posts/missing.json"
	})).Return(nil, &types.NoSuchKey{}).Once()

	data, err := store.Get(context.Background(), "items/posts/foo.json")
	require.NoError(t, err)
	assert.Equal(t, `{"itemName":"Foo"}`, string(data))

	_, err = store.Get(context.Background(), "items/posts/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
	client.AssertExpectations(t)
}

func TestS3Store_Exists(t *testing.T) {
	client := new(mockS3Client)
	store := newTestS3Store(client)

	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "present"
	})).Return(&s3.HeadObjectOutput{}, nil).Once()
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "absent"
	})).Return(nil, &types.NotFound{}).Once()

	ok, err := store.Exists(context.Background(), "present")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3Store_PutIfAbsent(t *testing.T) {
	client := new(mockS3Client)
	store := newTestS3Store(client)

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Key == "new" && aws.ToString(in.IfNoneMatch) == "*"
	})).Return(&s3.PutObjectOutput{}, nil).Once()
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Key == "taken"
	})).Return(nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}).Once()

	require.NoError(t, store.PutIfAbsent(context.Background(), "new", []byte("{}")))
	assert.ErrorIs(t, store.PutIfAbsent(context.Background(), "taken", []byte("{}")), ErrPreconditionFailed)
	client.AssertExpectations(t)
}

func TestS3Store_List(t *testing.T) {
	client := new(mockS3Client)
	store := newTestS3Store(client)

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil && *in.Prefix == "items/posts/" && aws.ToInt32(in.MaxKeys) == 2
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("opaque-token"),
		Contents:              []types.Object{{Key: aws.String("items/posts/a.json")}, {Key: aws.String("items/posts/b.json")}},
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "opaque-token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("items/posts/c.json")}},
	}, nil).Once()

	page, err := store.List(context.Background(), ListOptions{Prefix: "items/posts/", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"items/posts/a.json", "items/posts/b.json"}, page.Keys)
	assert.Equal(t, "opaque-token", page.NextToken)

	page, err = store.List(context.Background(), ListOptions{Prefix: "items/posts/", Limit: 2, Token: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"items/posts/c.json"}, page.Keys)
	assert.Empty(t, page.NextToken)
}

func TestS3Store_CreateBucketAndPolicy(t *testing.T) {
	client := new(mockS3Client)
	store := newTestS3Store(client)

	client.On("CreateBucket", mock.Anything, mock.MatchedBy(func(in *s3.CreateBucketInput) bool {
		return *in.Bucket == "cms" &&
			in.CreateBucketConfiguration != nil &&
			in.CreateBucketConfiguration.LocationConstraint == types.BucketLocationConstraint("eu-west-1")
	})).Return(&s3.CreateBucketOutput{}, nil).Once()
	client.On("PutBucketPolicy", mock.Anything, mock.MatchedBy(func(in *s3.PutBucketPolicyInput) bool {
		return *in.Bucket == "cms" && strings.Contains(*in.Policy, "s3:GetObject")
	})).Return(&s3.PutBucketPolicyOutput{}, nil).Once()

	require.NoError(t, store.CreateBucket(context.Background()))
	require.NoError(t, store.SetBucketPolicy(context.Background(), PublicReadPolicy("cms")))
	client.AssertExpectations(t)
}
