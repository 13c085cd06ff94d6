package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

func newTestUploader(fake *fakeS3) *Uploader {
	u := NewUploader(fake, NewProvisioner(fake), "https://cdn.example.com", 0)
	u.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return u
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores blob and returns public URL", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		url, err := u.Upload(ctx, "projects", "screenshots", Incoming{
			Name:        "hero.png",
			ContentType: "image/png",
			Size:        1024,
			Body:        strings.NewReader("pngbytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/projects/screenshots/1700000000123.png", url)
		require.NotNil(t, fake.lastPut)
		assert.Equal(t, "projects", aws.ToString(fake.lastPut.Bucket))
		assert.Equal(t, "screenshots/1700000000123.png", aws.ToString(fake.lastPut.Key))
		assert.Equal(t, "image/png", aws.ToString(fake.lastPut.ContentType))
		assert.Equal(t, "max-age=3600", aws.ToString(fake.lastPut.CacheControl))
	})

	t.Run("no path prefix", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		url, err := u.Upload(ctx, "avatars", "", Incoming{
			Name: "me.jpg",
			Size: 10,
			Body: strings.NewReader("jpgbytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/avatars/1700000000123.jpg", url)
	})

	t.Run("sanitizes hostile filenames", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		_, err := u.Upload(ctx, "projects", "shots", Incoming{
			Name: "../../etc/pass wd!.PNG",
			Size: 10,
			Body: strings.NewReader("x"),
		})

		require.NoError(t, err)
		key := aws.ToString(fake.lastPut.Key)
		assert.Equal(t, "shots/1700000000123.PNG", key)
		assert.NotContains(t, strings.TrimPrefix(key, "shots/"), "/")
	})

	t.Run("empty file rejected before any backend call", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		_, err := u.Upload(ctx, "projects", "", Incoming{Name: "x.png", Size: 0})

		assert.True(t, errs.IsNoFileProvidedError(err))
		assert.Equal(t, 0, fake.listCalls)
		assert.Equal(t, 0, fake.putCalls)
	})

	t.Run("oversize file rejected before any backend call", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		_, err := u.Upload(ctx, "projects", "", Incoming{
			Name: "big.png",
			Size: u.MaxBytes() + 1,
			Body: strings.NewReader("x"),
		})

		assert.True(t, errs.IsFileTooLargeError(err))
		assert.Equal(t, 0, fake.listCalls)
		assert.Equal(t, 0, fake.createCalls)
		assert.Equal(t, 0, fake.putCalls)
	})

	t.Run("provisioning failure aborts upload", func(t *testing.T) {
		fake := &fakeS3{listErr: errors.New("connection refused")}
		u := newTestUploader(fake)

		_, err := u.Upload(ctx, "projects", "", Incoming{
			Name: "x.png",
			Size: 10,
			Body: strings.NewReader("x"),
		})

		assert.True(t, errs.IsStorageUnavailableError(err))
		assert.Equal(t, 0, fake.putCalls)
	})

	t.Run("backend rejection propagates", func(t *testing.T) {
		fake := &fakeS3{putErr: errors.New("quota exceeded")}
		u := newTestUploader(fake)

		_, err := u.Upload(ctx, "projects", "", Incoming{
			Name: "x.png",
			Size: 10,
			Body: strings.NewReader("x"),
		})

		assert.True(t, errs.IsBackendRejectedError(err))
	})

	t.Run("re-upload to the same key overwrites silently", func(t *testing.T) {
		fake := &fakeS3{}
		u := newTestUploader(fake)

		in := Incoming{Name: "x.png", Size: 10, Body: strings.NewReader("first")}
		_, err := u.Upload(ctx, "projects", "shots", in)
		require.NoError(t, err)

		in = Incoming{Name: "x.png", Size: 10, Body: strings.NewReader("second")}
		_, err = u.Upload(ctx, "projects", "shots", in)

		require.NoError(t, err)
		assert.Equal(t, 2, fake.putCalls)
	})
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "png", fileExtension("photo.png"))
	assert.Equal(t, "jpg", fileExtension("my photo (1).jpg"))
	assert.Equal(t, "", fileExtension("noextension"))
	assert.Equal(t, "txt", fileExtension("../secret.txt"))
}

func TestDefaultMaxBytes(t *testing.T) {
	u := NewUploader(&fakeS3{}, NewProvisioner(&fakeS3{}), "https://cdn", -1)
	assert.Equal(t, int64(DefaultMaxUploadBytes), u.MaxBytes())
}
