package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

// DefaultMaxUploadBytes caps uploads at 5 MiB unless configured otherwise.
const DefaultMaxUploadBytes = 5 * 1024 * 1024

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Incoming describes one file arriving through the upload endpoint.
type Incoming struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader validates incoming files, provisions the destination bucket and
// stores the blob under a timestamp-derived key. It returns the public URL;
// persisting that URL onto an entity is the caller's job.
type Uploader struct {
	client        Client
	provisioner   *Provisioner
	publicBaseURL string
	maxBytes      int64
	logger        zerolog.Logger

	// injectable clock, keys are derived from it
	now func() time.Time
}

func NewUploader(client Client, provisioner *Provisioner, publicBaseURL string, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	logger := log.With().Str("component", "uploader").Logger()
	return &Uploader{
		client:        client,
		provisioner:   provisioner,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		logger:        logger,
		now:           time.Now,
	}
}

// MaxBytes returns the configured upload size limit.
func (u *Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Upload stores a file and returns its public URL. Validation happens
// before any backend call; re-uploading to an already-used key overwrites
// silently, which is what the "replace image" workflow relies on.
func (u *Uploader) Upload(ctx context.Context, bucket, pathPrefix string, file Incoming) (string, error) {
	if file.Size == 0 {
		return "", errs.NewNoFileProvidedError()
	}
	if file.Size > u.maxBytes {
		return "", errs.NewFileTooLargeError(file.Size, u.maxBytes)
	}

	key := u.deriveKey(pathPrefix, file.Name)

	if err := u.provisioner.EnsureBucket(ctx, bucket, true); err != nil {
		return "", err
	}

	u.logger.Info().Str("bucket", bucket).Str("key", key).Int64("size", file.Size).Msg("Uploading object")

	input := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         file.Body,
		CacheControl: aws.String("max-age=3600"),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", errs.NewBackendRejectedError(err.Error(), err)
	}

	return u.PublicURL(bucket, key), nil
}

// PublicURL resolves the public address of a stored object.
func (u *Uploader) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, bucket, key)
}

// deriveKey builds `{prefix}/{unixMilli}.{ext}`. The millisecond timestamp
// gives practical uniqueness without a coordination service; two uploads in
// the same millisecond collide, which is accepted.
func (u *Uploader) deriveKey(pathPrefix, originalName string) string {
	stamp := fmt.Sprintf("%d", u.now().UnixMilli())

	name := stamp
	if ext := fileExtension(originalName); ext != "" {
		name = stamp + "." + ext
	}

	if pathPrefix == "" {
		return name
	}
	return strings.Trim(pathPrefix, "/") + "/" + name
}

// fileExtension extracts the extension from a sanitized copy of the
// original filename. Sanitizing first keeps path separators and other
// special characters out of storage keys.
func fileExtension(originalName string) string {
	safe := unsafeFilenameChars.ReplaceAllString(originalName, "")
	ext := strings.TrimPrefix(path.Ext(safe), ".")
	return ext
}
