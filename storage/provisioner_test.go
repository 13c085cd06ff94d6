package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

// fakeS3 implements Client in memory and counts every backend call.
type fakeS3 struct {
	buckets []string

	listErr   error
	createErr error
	policyErr error
	putErr    error

	listCalls   int
	createCalls int
	policyCalls int
	putCalls    int

	lastPut *s3.PutObjectInput
}

func (f *fakeS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListBucketsOutput{}
	for _, name := range f.buckets {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.buckets = append(f.buckets, aws.ToString(params.Bucket))
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error) {
	f.policyCalls++
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return &s3.PutBucketPolicyOutput{}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putCalls++
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.lastPut = params
	return &s3.PutObjectOutput{}, nil
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket is a no-op", func(t *testing.T) {
		fake := &fakeS3{buckets: []string{"projects"}}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.NoError(t, err)
		assert.Equal(t, 0, fake.createCalls)
		assert.Equal(t, 0, fake.policyCalls)
	})

	t.Run("creates missing bucket with policy", func(t *testing.T) {
		fake := &fakeS3{}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.NoError(t, err)
		assert.Equal(t, 1, fake.createCalls)
		assert.Equal(t, 1, fake.policyCalls)
		assert.Contains(t, fake.buckets, "projects")
	})

	t.Run("idempotent across two calls", func(t *testing.T) {
		fake := &fakeS3{}
		p := NewProvisioner(fake)

		assert.NoError(t, p.EnsureBucket(ctx, "avatars", true))
		assert.NoError(t, p.EnsureBucket(ctx, "avatars", true))

		assert.Equal(t, 1, fake.createCalls)
	})

	t.Run("private bucket gets no policy", func(t *testing.T) {
		fake := &fakeS3{}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "internal", false)

		assert.NoError(t, err)
		assert.Equal(t, 1, fake.createCalls)
		assert.Equal(t, 0, fake.policyCalls)
	})

	t.Run("policy failure is swallowed", func(t *testing.T) {
		fake := &fakeS3{policyErr: errors.New("policy API not supported")}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.NoError(t, err)
		assert.Equal(t, 1, fake.createCalls)
		assert.Contains(t, fake.buckets, "projects")
	})

	t.Run("creation conflict counts as success when bucket exists", func(t *testing.T) {
		// First list sees nothing, create loses the race, recheck sees
		// the winner's bucket.
		fake := &fakeS3{createErr: &s3types.BucketAlreadyOwnedByYou{}}
		race := &racingS3{fakeS3: fake, appearAfter: 1, name: "projects"}
		p := NewProvisioner(race)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.NoError(t, err)
		assert.Equal(t, 1, fake.createCalls)
	})

	t.Run("creation conflict still fails when bucket never appears", func(t *testing.T) {
		fake := &fakeS3{createErr: &s3types.BucketAlreadyExists{}}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.Error(t, err)
		assert.True(t, errs.IsStorageUnavailableError(err))
	})

	t.Run("unreachable backend surfaces as unavailable", func(t *testing.T) {
		fake := &fakeS3{listErr: errors.New("connection refused")}
		p := NewProvisioner(fake)

		err := p.EnsureBucket(ctx, "projects", true)

		assert.True(t, errs.IsStorageUnavailableError(err))
	})
}

// racingS3 makes a bucket visible only from the Nth ListBuckets call,
// mimicking a concurrent provisioner winning the create race.
type racingS3 struct {
	*fakeS3
	appearAfter int
	name        string
}

func (r *racingS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	out, err := r.fakeS3.ListBuckets(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	if r.fakeS3.listCalls > r.appearAfter {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: &r.name})
	}
	return out, nil
}
