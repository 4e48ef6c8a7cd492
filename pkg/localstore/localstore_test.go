package localstore

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

var _ unicloud.ObjectStore = (*Store)(nil)
var _ unicloud.Bucket = (*Bucket)(nil)

type testEnv struct {
	bucket  unicloud.Bucket
	store   *Store
	scratch string
}

func newTestEnv(t *testing.T) (*testEnv, func()) {
	root, err := ioutil.TempDir("", "unicloud-store")
	if err != nil {
		t.Fatalf("Test setup failed: %v\n", err)
	}
	scratch, err := ioutil.TempDir("", "unicloud-scratch")
	if err != nil {
		os.RemoveAll(root)
		t.Fatalf("Test setup failed: %v\n", err)
	}

	store, err := NewStore(root, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v\n", err)
	}

	ctx := context.Background()
	if err := store.CreateBucket(ctx, "test-bucket"); err != nil {
		t.Fatalf("Failed to create bucket: %v\n", err)
	}
	bucket, err := store.GetBucket(ctx, "test-bucket")
	if err != nil {
		t.Fatalf("Failed to get bucket: %v\n", err)
	}

	env := &testEnv{bucket: bucket, store: store, scratch: scratch}
	return env, func() {
		os.RemoveAll(root)
		os.RemoveAll(scratch)
	}
}

// localFile writes content to a file under the scratch dir and returns its path.
func (e *testEnv) localFile(t *testing.T, name, content string) string {
	p := filepath.Join(e.scratch, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatalf("Test setup failed: %v\n", err)
	}
	if err := ioutil.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("Test setup failed: %v\n", err)
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	src := env.localFile(t, "hello.txt", "hi")
	assert.Nil(t, env.bucket.Upload(ctx, src, "dir/hello.txt", false))

	dst := filepath.Join(env.scratch, "downloaded", "hello.txt")
	assert.Nil(t, env.bucket.Download(ctx, "dir/hello.txt", dst))

	content, err := ioutil.ReadFile(dst)
	assert.Nil(t, err)
	assert.Equal(t, "hi", string(content))
}

func TestDownloadMissing(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	err := env.bucket.Download(context.Background(), "missing-key",
		filepath.Join(env.scratch, "out"))
	assert.NotNil(t, err)
	assert.True(t, unicloud.IsNotFound(err))
}

func TestUploadMissingLocalFile(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	err := env.bucket.Upload(context.Background(),
		filepath.Join(env.scratch, "no-such-file"), "key", false)
	assert.NotNil(t, err)
	assert.False(t, unicloud.IsNotFound(err)) // local problem, not a remote NotFound
}

func TestUploadNoOverwrite(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	src := env.localFile(t, "f.txt", "v1")
	assert.Nil(t, env.bucket.Upload(ctx, src, "f.txt", false))

	src2 := env.localFile(t, "f2.txt", "v2")
	assert.NotNil(t, env.bucket.Upload(ctx, src2, "f.txt", false))
	assert.Nil(t, env.bucket.Upload(ctx, src2, "f.txt", true))

	dst := filepath.Join(env.scratch, "out.txt")
	assert.Nil(t, env.bucket.Download(ctx, "f.txt", dst))
	content, _ := ioutil.ReadFile(dst)
	assert.Equal(t, "v2", string(content))
}

func TestRenameThenList(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	src := env.localFile(t, "a.txt", "payload")
	assert.Nil(t, env.bucket.Upload(ctx, src, "a.txt", false))
	assert.Nil(t, env.bucket.Rename(ctx, "a.txt", "b.txt"))

	keys, err := env.bucket.List(ctx, "")
	assert.Nil(t, err)
	assert.Contains(t, keys, "b.txt")
	assert.NotContains(t, keys, "a.txt")

	// Renaming a missing key reports NotFound.
	err = env.bucket.Rename(ctx, "a.txt", "c.txt")
	assert.True(t, unicloud.IsNotFound(err))
}

func TestDeleteThenList(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	src := env.localFile(t, "k.txt", "x")
	assert.Nil(t, env.bucket.Upload(ctx, src, "sub/k.txt", false))
	assert.Nil(t, env.bucket.Delete(ctx, "sub/k.txt"))

	keys, err := env.bucket.List(ctx, "")
	assert.Nil(t, err)
	assert.NotContains(t, keys, "sub/k.txt")

	// Deleting a missing key is an error, not a no-op.
	err = env.bucket.Delete(ctx, "sub/k.txt")
	assert.True(t, unicloud.IsNotFound(err))
}

func TestDeletePrefix(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	for _, k := range []string{"logs/1.log", "logs/2.log", "keep.txt"} {
		src := env.localFile(t, filepath.Base(k), k)
		assert.Nil(t, env.bucket.Upload(ctx, src, k, false))
	}

	assert.Nil(t, env.bucket.Delete(ctx, "logs/"))

	keys, err := env.bucket.List(ctx, "")
	assert.Nil(t, err)
	assert.Equal(t, []string{"keep.txt"}, keys)

	// The prefix is now empty.
	err = env.bucket.Delete(ctx, "logs/")
	assert.True(t, unicloud.IsNotFound(err))
}

func TestListPrefix(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	for _, k := range []string{"data/a.json", "data/b.json", "other/c.json"} {
		src := env.localFile(t, filepath.Base(k)+".src", k)
		assert.Nil(t, env.bucket.Upload(ctx, src, k, false))
	}

	keys, err := env.bucket.List(ctx, "data/")
	assert.Nil(t, err)
	assert.Equal(t, []string{"data/a.json", "data/b.json"}, keys)

	all, err := env.bucket.List(ctx, "")
	assert.Nil(t, err)
	assert.Len(t, all, 3)
}

func TestExists(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	ok, err := env.bucket.Exists(ctx, "f.txt")
	assert.Nil(t, err)
	assert.False(t, ok)

	src := env.localFile(t, "f.txt", "x")
	assert.Nil(t, env.bucket.Upload(ctx, src, "f.txt", false))

	ok, err = env.bucket.Exists(ctx, "f.txt")
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestSearch(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	for _, k := range []string{"data/a.txt", "data/b.json", "c.txt"} {
		src := env.localFile(t, filepath.Base(k)+".src", k)
		assert.Nil(t, env.bucket.Upload(ctx, src, k, false))
	}

	matches, err := env.bucket.Search(ctx, "*.txt", "data/")
	assert.Nil(t, err)
	assert.Equal(t, []string{"data/a.txt"}, matches)

	matches, err = env.bucket.Search(ctx, "*.txt", "")
	assert.Nil(t, err)
	assert.Equal(t, []string{"c.txt"}, matches)
}

func TestDirectoryUploadDownload(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	env.localFile(t, "tree/one.txt", "1")
	env.localFile(t, "tree/sub/two.txt", "2")

	assert.Nil(t, env.bucket.Upload(ctx, filepath.Join(env.scratch, "tree"), "backup/", false))

	keys, err := env.bucket.List(ctx, "backup/")
	assert.Nil(t, err)
	assert.Equal(t, []string{"backup/one.txt", "backup/sub/two.txt"}, keys)

	out := filepath.Join(env.scratch, "restored")
	assert.Nil(t, env.bucket.Download(ctx, "backup/", out))

	content, err := ioutil.ReadFile(filepath.Join(out, "sub", "two.txt"))
	assert.Nil(t, err)
	assert.Equal(t, "2", string(content))
}

func TestGetBucket(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	_, err := env.store.GetBucket(ctx, "no-such-bucket")
	assert.NotNil(t, err)
	assert.True(t, unicloud.IsNotFound(err))

	names, err := env.store.ListBuckets(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"test-bucket"}, names)
}
