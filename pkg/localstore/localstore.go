// Local filesystem object storage. Implements the unicloud.ObjectStore
// interface against a root directory. Intended for development and tests
// where no cloud credentials are available; buckets are directories and
// objects are files underneath them.

package localstore

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

type Store struct {
	root string
	log  logrus.FieldLogger
}

func NewStore(root string, logger logrus.FieldLogger) (*Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if root == "" {
		return nil, errors.New("localstore root directory is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(err, "cannot create localstore root "+root)
	}
	return &Store{root: root, log: logger}, nil
}

// CreateBucket makes the bucket directory. Not part of the ObjectStore
// interface; the cloud backends expect buckets to be provisioned out of
// band, but local tests need a way to make them.
func (s *Store) CreateBucket(ctx context.Context, name string) error {
	return errors.Wrap(os.MkdirAll(filepath.Join(s.root, name), 0755),
		"cannot create bucket "+name)
}

func (s *Store) GetBucket(ctx context.Context, name string) (unicloud.Bucket, error) {
	dir := filepath.Join(s.root, name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, unicloud.WrapError(unicloud.ErrNotFound, err, "bucket "+name+" not found")
		}
		return nil, errors.Wrap(err, "cannot stat bucket "+name)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s exists but is not a bucket directory", dir)
	}
	return &Bucket{dir: dir, name: name, log: s.log}, nil
}

func (s *Store) ListBuckets(ctx context.Context) ([]string, error) {
	entries, err := ioutil.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read localstore root "+s.root)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) Close() error {
	return nil
}

// Bucket is a directory under the store root.
type Bucket struct {
	dir  string
	name string
	log  logrus.FieldLogger
}

func (b *Bucket) Name() string {
	return b.name
}

func (b *Bucket) objectPath(key string) string {
	return filepath.Join(b.dir, filepath.FromSlash(key))
}

func (b *Bucket) Upload(ctx context.Context, localPath, key string, overwrite bool) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return errors.Wrap(err, "cannot read local path "+localPath)
	}

	if info.IsDir() {
		files, err := unicloud.LocalFiles(localPath)
		if err != nil {
			return errors.Wrap(err, "failed to walk "+localPath)
		}
		for _, rel := range files {
			fileKey := unicloud.JoinKey(key, rel)
			if err := b.uploadFile(filepath.Join(localPath, rel), fileKey, overwrite); err != nil {
				return err
			}
		}
		return nil
	}

	return b.uploadFile(localPath, key, overwrite)
}

func (b *Bucket) uploadFile(localPath, key string, overwrite bool) error {
	dst := b.objectPath(key)
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return errors.Errorf("object %s already exists in bucket %s", key, b.name)
		}
	}
	if err := unicloud.CopyFile(localPath, dst); err != nil {
		return errors.Wrap(err, "upload "+key+" failed")
	}
	b.log.Infof("File %s uploaded to %s/%s", localPath, b.name, key)
	return nil
}

func (b *Bucket) Download(ctx context.Context, key, localPath string) error {
	if unicloud.IsDirKey(key) {
		keys, err := b.List(ctx, key)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return unicloud.NewError(unicloud.ErrNotFound,
				"no objects under "+b.name+"/"+key)
		}
		for _, k := range keys {
			rel := k[len(key):]
			if err := b.Download(ctx, k, filepath.Join(localPath, filepath.FromSlash(rel))); err != nil {
				return err
			}
		}
		return nil
	}

	src := b.objectPath(key)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return unicloud.WrapError(unicloud.ErrNotFound, err,
				"object "+key+" not found in bucket "+b.name)
		}
		return errors.Wrap(err, "cannot stat "+src)
	}
	if err := unicloud.CopyFile(src, localPath); err != nil {
		return errors.Wrap(err, "download "+key+" failed")
	}
	b.log.Infof("File %s/%s downloaded to %s", b.name, key, localPath)
	return nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	if unicloud.IsDirKey(key) {
		keys, err := b.List(ctx, key)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return unicloud.NewError(unicloud.ErrNotFound,
				"no objects under "+b.name+"/"+key)
		}
		for _, k := range keys {
			if err := b.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	}

	objPath := b.objectPath(key)
	if err := os.Remove(objPath); err != nil {
		if os.IsNotExist(err) {
			return unicloud.WrapError(unicloud.ErrNotFound, err,
				"object "+key+" not found in bucket "+b.name)
		}
		return errors.Wrap(err, "delete "+key+" failed")
	}
	b.log.Infof("Deleted %s/%s", b.name, key)
	// Clean up directories left empty by the removal. Cloud buckets have no
	// real directories, so empty ones must not show up in listings.
	for dir := filepath.Dir(objPath); dir != b.dir; dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

func (b *Bucket) Rename(ctx context.Context, oldKey, newKey string) error {
	// Copy-then-delete rather than os.Rename, to match the failure contract
	// of the cloud backends.
	src := b.objectPath(oldKey)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return unicloud.WrapError(unicloud.ErrNotFound, err,
				"object "+oldKey+" not found in bucket "+b.name)
		}
		return errors.Wrap(err, "cannot stat "+src)
	}
	if err := unicloud.CopyFile(src, b.objectPath(newKey)); err != nil {
		return errors.Wrap(err, "copy "+oldKey+" failed")
	}
	if err := b.Delete(ctx, oldKey); err != nil {
		return errors.Wrap(err, "copied "+oldKey+" to "+newKey+" but failed to delete the original")
	}
	b.log.Infof("Renamed %s/%s to %s", b.name, oldKey, newKey)
	return nil
}

func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	files, err := unicloud.LocalFiles(b.dir)
	if err != nil {
		return nil, errors.Wrap(err, "list "+b.name+" failed")
	}
	var keys []string
	for _, rel := range files {
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(b.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "cannot stat "+key)
	}
	return true, nil
}

func (b *Bucket) Search(ctx context.Context, pattern, dir string) ([]string, error) {
	if dir != "" && !unicloud.IsDirKey(dir) {
		dir += "/"
	}
	keys, err := b.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, key := range keys {
		ok, err := path.Match(dir+pattern, key)
		if err != nil {
			return nil, errors.Wrap(err, "bad search pattern "+pattern)
		}
		if ok {
			matches = append(matches, key)
		}
	}
	return matches, nil
}
