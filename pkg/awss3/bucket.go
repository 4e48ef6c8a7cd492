package awss3

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

// Bucket is an S3 bucket handle. It borrows the client's transport and stays
// bound to one bucket name.
type Bucket struct {
	client *Client
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

	_, err = b.client.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
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

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return errors.Wrap(err, "cannot create directory for "+localPath)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return errors.Wrap(err, "cannot create local file "+localPath)
	}
	defer f.Close()

	_, err = b.client.downloader.DownloadWithContext(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		b.log.Errorf("Download of %s/%s failed: %v", b.name, key, err)
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
// "/". A missing object is a NotFound error, not a silent no-op, because S3
// itself reports success for deletes of nonexistent keys and callers have no
// other way to notice a typo'd key.
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

	exists, err := b.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return unicloud.NewError(unicloud.ErrNotFound,
			"object "+key+" not found in bucket "+b.name)
	}
	return b.deleteObject(ctx, key)
}

func (b *Bucket) deleteObject(ctx context.Context, key string) error {
	_, err := b.client.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		b.log.Errorf("Delete of %s/%s failed: %v", b.name, key, err)
		return translate(err, "delete "+key)
	}
	b.log.Infof("Deleted %s/%s", b.name, key)
	return nil
}

// Rename is copy-then-delete; S3 has no native rename. A failure after the
// copy leaves both keys present.
func (b *Bucket) Rename(ctx context.Context, oldKey, newKey string) error {
	_, err := b.client.api.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.name),
		CopySource: aws.String(url.PathEscape(b.name + "/" + oldKey)),
		Key:        aws.String(newKey),
	})
	if err != nil {
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
	err := b.client.api.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, aws.StringValue(obj.Key))
		}
		return true
	})
	if err != nil {
		b.log.Errorf("Listing %s with prefix %q failed: %v", b.name, prefix, err)
		return nil, translate(err, "list "+b.name)
	}
	return keys, nil
}

func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.client.api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundCode(err) {
			return false, nil
		}
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
