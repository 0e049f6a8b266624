package blob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store implementation must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "missing blob should map to ErrNotFound, got %v", err)

	require.NoError(t, s.Put(ctx, "users.csv", []byte("id,name\n1,Alice\n")))
	data, err := s.Get(ctx, "users.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Alice\n", string(data))

	require.NoError(t, s.Put(ctx, "users.csv", []byte("id,name\n")))
	data, err = s.Get(ctx, "users.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n", string(data), "put must replace the whole blob")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, s.Put(ctx, "x", buf))
	buf[0] = 'z'

	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLocalStore(t *testing.T) {
	exerciseStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	s := NewLocalStore(dir)

	require.NoError(t, s.Put(context.Background(), "products.csv", []byte("id,name,price,description\n")))

	data, err := os.ReadFile(filepath.Join(dir, "products.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,price,description\n", string(data))
}

func TestLocalStore_NameCannotEscapeDir(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(filepath.Join(root, "db"))

	require.NoError(t, s.Put(context.Background(), "../escape.csv", []byte("x")))

	_, err := os.Stat(filepath.Join(root, "escape.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "blob must stay inside the store directory")
	_, err = os.Stat(filepath.Join(root, "db", "escape.csv"))
	assert.NoError(t, err)
}

func TestLocalStore_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	// A directory where a file is expected cannot be read as a blob.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "users.csv"), 0o755))

	_, err := NewLocalStore(dir).Get(context.Background(), "users.csv")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

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

	const bucket = "test-catalog"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	exerciseStore(t, NewMinioStore(client, bucket, "test-prefix/"))
}
