package minio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/astrocat/blobstore"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockClient) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (*minio.Object, error) {
	args := m.Called(ctx, bucket, key)
	obj, _ := args.Get(0).(*minio.Object)
	return obj, args.Error(1)
}

func (m *mockClient) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucket, opts.Prefix)
	return args.Get(0).(<-chan minio.ObjectInfo)
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestStore_Open(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "catalogs", "release/")
	ctx := context.Background()

	client.On("StatObject", mock.Anything, "catalogs", "release/missing.yaml").
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}).Once()
	_, err := store.Open(ctx, "missing.yaml")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	client.On("StatObject", mock.Anything, "catalogs", "release/stars.yaml").
		Return(minio.ObjectInfo{Key: "release/stars.yaml", Size: 42}, nil).Once()
	blob, err := store.Open(ctx, "stars.yaml")
	require.NoError(t, err)
	assert.EqualValues(t, 42, blob.Size())

	n, err := blob.ReadAt(ctx, make([]byte, 4), 42)
	assert.Zero(t, n)
	assert.Error(t, err)
	require.NoError(t, blob.Close())

	boom := errors.New("connection reset")
	client.On("StatObject", mock.Anything, "catalogs", "release/flaky.yaml").
		Return(minio.ObjectInfo{}, boom).Once()
	_, err = store.Open(ctx, "flaky.yaml")
	assert.ErrorIs(t, err, boom)

	client.AssertExpectations(t)
}

func TestStore_Fetch_NotFound(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "catalogs", "")

	client.On("GetObject", mock.Anything, "catalogs", "gone.yaml").
		Return(nil, minio.ErrorResponse{Code: "NotFound"}).Once()

	_, err := store.Fetch(context.Background(), "gone.yaml")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "catalogs", "release/")

	client.On("ListObjects", mock.Anything, "catalogs", "release/stars/").Return(objects(
		minio.ObjectInfo{Key: "release/stars/hip.yaml"},
		minio.ObjectInfo{Key: "release/stars/extra.yaml.lz4"},
	)).Once()

	names, err := store.List(context.Background(), "stars/")
	require.NoError(t, err)
	assert.Equal(t, []string{"stars/extra.yaml.lz4", "stars/hip.yaml"}, names)

	listErr := errors.New("access denied")
	client.On("ListObjects", mock.Anything, "catalogs", "release/").Return(objects(
		minio.ObjectInfo{Key: "release/a.yaml"},
		minio.ObjectInfo{Err: listErr},
	)).Once()

	_, err = store.List(context.Background(), "")
	assert.ErrorIs(t, err, listErr)

	client.AssertExpectations(t)
}

// TestStore_Integration requires a running MinIO instance.
func TestStore_Integration(t *testing.T) {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-astrocat"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := "- Index: 32349\n  Name: Sirius\n"
	_, err = client.PutObject(ctx, bucket, "it/stars.yaml", strings.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	defer func() { _ = client.RemoveObject(ctx, bucket, "it/stars.yaml", minio.RemoveObjectOptions{}) }()

	store := NewStore(client, bucket, "it/")

	got, err := blobstore.Fetch(ctx, store, "stars.yaml")
	require.NoError(t, err)
	assert.Equal(t, data, string(got))

	blob, err := store.Open(ctx, "stars.yaml")
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = blob.ReadAt(ctx, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "Index", string(buf))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "stars.yaml")
}
