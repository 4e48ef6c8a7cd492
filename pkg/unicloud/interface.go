// Standard interfaces and datatypes for the unicloud project.
// Terms:
//   "object store" : One authenticated connection to a storage service
//                    (e.g. AWS S3, Google Cloud Storage, local filesystem)
//   "bucket"       : A named container of objects within an object store.
//                    Buckets are obtained from an ObjectStore and stay bound
//                    to one container name for their entire lifetime.
package unicloud

import "context"

// A provider aggregates the services offered by one backend. Today that is
// only object storage, but the struct leaves room for additional services
// without breaking callers.
type Provider struct {
	ObjStore ObjectStore
}

// ObjectStore is the uniform client surface. Implementations are expected to
// be immutable after construction and safe for concurrent use to the extent
// the underlying SDK is.
type ObjectStore interface {
	// Retrieve a handle for the named bucket. Backends that can check cheaply
	// should fail with a NotFound error when the bucket does not exist;
	// others may succeed lazily and surface NotFound on first use.
	GetBucket(ctx context.Context, name string) (Bucket, error)

	// Names of all buckets visible to the authenticated account or project.
	ListBuckets(ctx context.Context) ([]string, error)

	// Release the underlying transport. Callers must not use the store or
	// any bucket obtained from it afterwards.
	Close() error
}

// Bucket is the uniform per-container surface. Every call is one synchronous
// remote round trip; there is no batching, retrying, or caching at this
// layer. A key ending in "/" is treated as a directory prefix by Upload,
// Download and Delete.
type Bucket interface {
	Name() string

	// Upload a local file, or a whole directory tree when localPath is a
	// directory, to key. With overwrite false an existing remote object is an
	// error rather than silently replaced.
	Upload(ctx context.Context, localPath, key string, overwrite bool) error

	// Download key to localPath, overwriting it unconditionally. A key
	// ending in "/" downloads every object under that prefix, preserving the
	// tree below localPath.
	Download(ctx context.Context, key, localPath string) error

	// Delete key, or every object under it when key ends in "/". Deleting a
	// missing object is an error (NotFound), not a no-op.
	Delete(ctx context.Context, key string) error

	// Rename is copy-then-delete on backends without a native rename. It is
	// not atomic: a failure between the copy and the delete can leave both
	// keys present.
	Rename(ctx context.Context, oldKey, newKey string) error

	// List all object keys, optionally restricted to those starting with
	// prefix. Ordering is whatever the backend returns (typically
	// lexicographic) and not stable across calls while the bucket mutates.
	List(ctx context.Context, prefix string) ([]string, error)

	Exists(ctx context.Context, key string) (bool, error)

	// Search returns the keys under dir (the whole bucket when dir is empty)
	// whose names match the glob pattern, e.g. Search(ctx, "*.txt", "data/").
	Search(ctx context.Context, pattern, dir string) ([]string, error)
}
