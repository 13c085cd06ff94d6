package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

// Provisioner ensures buckets exist before objects land in them.
// EnsureBucket is idempotent and tolerates races with concurrent callers.
type Provisioner struct {
	client Client
	logger zerolog.Logger
}

func NewProvisioner(client Client) *Provisioner {
	logger := log.With().Str("component", "storageProvisioner").Logger()
	return &Provisioner{
		client: client,
		logger: logger,
	}
}

// EnsureBucket makes sure the named bucket exists. An existing bucket is a
// no-op; its policy is not re-verified on the fast path. A creation conflict
// from a concurrent provisioner counts as success once the bucket exists.
func (p *Provisioner) EnsureBucket(ctx context.Context, name string, public bool) error {
	exists, err := p.bucketExists(ctx, name)
	if err != nil {
		return errs.NewStorageUnavailableError(err)
	}
	if exists {
		return nil
	}

	p.logger.Info().Str("bucket", name).Bool("public", public).Msg("Creating bucket")

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if public {
		input.ACL = s3types.BucketCannedACLPublicRead
	}

	if _, err := p.client.CreateBucket(ctx, input); err != nil {
		if !isBucketConflict(err) {
			return errs.NewStorageUnavailableError(err)
		}

		// Lost the race to another provisioner. Success as long as the
		// bucket is actually there now.
		exists, recheckErr := p.bucketExists(ctx, name)
		if recheckErr != nil {
			return errs.NewStorageUnavailableError(recheckErr)
		}
		if !exists {
			return errs.NewStorageUnavailableError(err)
		}
		return nil
	}

	if public {
		p.attachPublicReadPolicy(ctx, name)
	}

	return nil
}

func (p *Provisioner) bucketExists(ctx context.Context, name string) (bool, error) {
	output, err := p.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return false, err
	}
	for _, bucket := range output.Buckets {
		if aws.ToString(bucket.Name) == name {
			return true, nil
		}
	}
	return false, nil
}

// attachPublicReadPolicy is best-effort: a failure leaves the bucket
// readable through signed access only, which is logged and swallowed rather
// than failing the upload that triggered provisioning.
func (p *Provisioner) attachPublicReadPolicy(ctx context.Context, name string) {
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Sid": "PublicRead",
			"Effect": "Allow",
			"Principal": "*",
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, name)

	_, err := p.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(name),
		Policy: aws.String(policy),
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("bucket", name).Msg("Failed to attach public-read policy, continuing")
	}
}

func isBucketConflict(err error) bool {
	var owned *s3types.BucketAlreadyOwnedByYou
	var taken *s3types.BucketAlreadyExists
	return errors.As(err, &owned) || errors.As(err, &taken)
}
