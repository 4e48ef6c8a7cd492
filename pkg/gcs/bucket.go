package gcs

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

// Bucket is a GCS bucket handle bound to one bucket name.
type Bucket struct {
	handle *storage.BucketHandle
	name   string
	log    logrus.FieldLogger
}

func (b *Bucket) Name() string {
	return b.name
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
			if err := b.uploadFile(ctx, filepath.Join(localPath, rel), fileKey, overwrite); err != nil {
				return err
			}
		}
		return nil
	}

	return b.uploadFile(ctx, localPath, key, overwrite)
}

func (b *Bucket) uploadFile(ctx context.Context, localPath, key string, overwrite bool) error {
	if !overwrite {
		exists, err := b.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return errors.Errorf("object %s already exists in bucket %s", key, b.name)
		}
	}

	f, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "cannot open local file "+localPath)
	}
	defer f.Close()

	w := b.handle.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		b.log.Errorf("Upload of %s to %s/%s failed: %v", localPath, b.name, key, err)
		return translate(err, "upload "+key)
	}
	// The write is committed by Close; most failures surface here.
	if err := w.Close(); err != nil {
		b.log.Errorf("Upload of %s to %s/%s failed: %v", localPath, b.name, key, err)
		return translate(err, "upload "+key)
	}
	b.log.Infof("File %s uploaded to %s/%s", localPath, b.name, key)
	return nil
}

func (b *Bucket) Download(ctx context.Context, key, localPath string) error {
	if unicloud.IsDirKey(key) {
		return b.downloadPrefix(ctx, key, localPath)
	}

	r, err := b.handle.Object(key).NewReader(ctx)
	if err != nil {
		b.log.Errorf("Download of %s/%s failed: %v", b.name, key, err)
		return translate(err, "download "+key)
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return errors.Wrap(err, "cannot create directory for "+localPath)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return errors.Wrap(err, "cannot create local file "+localPath)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return translate(err, "download "+key)
	}
	b.log.Infof("File %s/%s downloaded to %s", b.name, key, localPath)
	return nil
}

func (b *Bucket) downloadPrefix(ctx context.Context, prefix, localDir string) error {
	keys, err := b.List(ctx, prefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return unicloud.NewError(unicloud.ErrNotFound,
			"no objects under "+b.name+"/"+prefix)
	}
	for _, key := range keys {
		if unicloud.IsDirKey(key) {
			// Placeholder objects some tools create for "folders".
			continue
		}
		rel := key[len(prefix):]
		if err := b.Download(ctx, key, filepath.Join(localDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one object, or everything under the prefix when key ends in
// "/". GCS reports deletes of missing objects natively, so no extra
// existence round trip is needed here.
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
			if err := b.deleteObject(ctx, k); err != nil {
				return err
			}
		}
		return nil
	}
	return b.deleteObject(ctx, key)
}

func (b *Bucket) deleteObject(ctx context.Context, key string) error {
	if err := b.handle.Object(key).Delete(ctx); err != nil {
		b.log.Errorf("Delete of %s/%s failed: %v", b.name, key, err)
		return translate(err, "delete "+key)
	}
	b.log.Infof("Deleted %s/%s", b.name, key)
	return nil
}

// Rename is copy-then-delete; a failure after the copy leaves both keys
// present.
func (b *Bucket) Rename(ctx context.Context, oldKey, newKey string) error {
	src := b.handle.Object(oldKey)
	dst := b.handle.Object(newKey)
	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		b.log.Errorf("Copy of %s/%s to %s failed: %v", b.name, oldKey, newKey, err)
		return translate(err, "copy "+oldKey)
	}
	if err := b.deleteObject(ctx, oldKey); err != nil {
		return errors.Wrap(err, "copied "+oldKey+" to "+newKey+" but failed to delete the original")
	}
	b.log.Infof("Renamed %s/%s to %s", b.name, oldKey, newKey)
	return nil
}

func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	it := b.handle.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			b.log.Errorf("Listing %s with prefix %q failed: %v", b.name, prefix, err)
			return nil, translate(err, "list "+b.name)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.handle.Object(key).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, translate(err, "stat "+key)
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
