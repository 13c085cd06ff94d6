package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkobayashi-dev/portfolio-site-backend/auth"
	"github.com/mkobayashi-dev/portfolio-site-backend/cache"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/models"
	"github.com/mkobayashi-dev/portfolio-site-backend/storage"
)

const testMaxUploadBytes = 1024

// fakeStorageClient implements storage.Client in memory and counts calls,
// so tests can assert that nothing touched the backend.
type fakeStorageClient struct {
	buckets     []string
	listCalls   int
	createCalls int
	policyCalls int
	putCalls    int
	lastPut     *s3api.PutObjectInput
}

func (f *fakeStorageClient) ListBuckets(ctx context.Context, params *s3api.ListBucketsInput, optFns ...func(*s3api.Options)) (*s3api.ListBucketsOutput, error) {
	f.listCalls++
	out := &s3api.ListBucketsOutput{}
	for _, name := range f.buckets {
		out.Buckets = append(out.Buckets, s3types.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

func (f *fakeStorageClient) CreateBucket(ctx context.Context, params *s3api.CreateBucketInput, optFns ...func(*s3api.Options)) (*s3api.CreateBucketOutput, error) {
	f.createCalls++
	f.buckets = append(f.buckets, aws.ToString(params.Bucket))
	return &s3api.CreateBucketOutput{}, nil
}

func (f *fakeStorageClient) PutBucketPolicy(ctx context.Context, params *s3api.PutBucketPolicyInput, optFns ...func(*s3api.Options)) (*s3api.PutBucketPolicyOutput, error) {
	f.policyCalls++
	return &s3api.PutBucketPolicyOutput{}, nil
}

func (f *fakeStorageClient) PutObject(ctx context.Context, params *s3api.PutObjectInput, optFns ...func(*s3api.Options)) (*s3api.PutObjectOutput, error) {
	f.putCalls++
	f.lastPut = params
	return &s3api.PutObjectOutput{}, nil
}

type testAPI struct {
	router  *chi.Mux
	db      database.Database
	views   *cache.Views
	storage *fakeStorageClient
	token   string
	userID  uuid.UUID
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, database.AutoMigrate(gdb), "failed to migrate database")
	db := database.New(gdb)

	issuer := auth.NewTokenIssuer("test-secret")
	views := cache.NewViews()

	fake := &fakeStorageClient{}
	uploader := storage.NewUploader(fake, storage.NewProvisioner(fake), "https://cdn.example.com", testMaxUploadBytes)

	handlers := initializeHandlers(db, views, uploader, issuer, time.Now())

	router := chi.NewRouter()
	setupRoutes(router, handlers, newAuthMiddleware(issuer, db.UserRepo()))

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	admin := models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: hash,
	}
	require.NoError(t, db.UserRepo().Add(&admin))

	token, err := issuer.Generate(admin.ID, admin.Email)
	require.NoError(t, err)

	return &testAPI{
		router:  router,
		db:      db,
		views:   views,
		storage: fake,
		token:   token,
		userID:  admin.ID,
	}
}

// do performs an authenticated JSON request when token is non-empty.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), "body: %s", recorder.Body.String())
	return body
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data field: %v", body)
	return data
}
