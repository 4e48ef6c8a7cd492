// Google Cloud Storage. Implements the unicloud.ObjectStore interface.

package gcs

import (
	"context"
	"os"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

type Config struct {
	ProjectID string

	// Path to a service-account key file. When empty, ServiceKeyJSON and
	// then application default credentials (GOOGLE_APPLICATION_CREDENTIALS)
	// are tried in that order.
	ServiceKeyFile string

	// Raw service-account key document, typically decoded from the
	// SERVICE_KEY_CONTENT environment variable with DecodeServiceKey.
	ServiceKeyJSON []byte
}

type Client struct {
	api       *storage.Client
	projectID string
	log       logrus.FieldLogger
}

func NewClient(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.ProjectID == "" {
		return nil, unicloud.NewError(unicloud.ErrAuthentication, "gcs project id is required")
	}

	var opts []option.ClientOption
	switch {
	case cfg.ServiceKeyFile != "":
		if _, err := os.Stat(cfg.ServiceKeyFile); err != nil {
			return nil, errors.Wrap(err, "service key file "+cfg.ServiceKeyFile)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceKeyFile))
	case len(cfg.ServiceKeyJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.ServiceKeyJSON))
	}
	// With no explicit key the SDK falls back to application default
	// credentials, which covers GOOGLE_APPLICATION_CREDENTIALS and
	// metadata-server identities on GCP machines.

	api, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, unicloud.WrapError(unicloud.ErrAuthentication, err,
			"failed to create gcs client for project "+cfg.ProjectID)
	}

	return &Client{api: api, projectID: cfg.ProjectID, log: logger}, nil
}

// GetBucket checks that the bucket exists and returns a handle bound to it.
func (c *Client) GetBucket(ctx context.Context, name string) (unicloud.Bucket, error) {
	handle := c.api.Bucket(name)
	if _, err := handle.Attrs(ctx); err != nil {
		c.log.Errorf("Bucket lookup failed for %s: %v", name, err)
		return nil, translate(err, "bucket "+name)
	}
	return &Bucket{handle: handle, name: name, log: c.log}, nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	var names []string
	it := c.api.Buckets(ctx, c.projectID)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			c.log.Errorf("Listing buckets in %s failed: %v", c.projectID, err)
			return nil, translate(err, "list buckets")
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (c *Client) Close() error {
	return c.api.Close()
}

// Upload a local file to "bucket-name/object/path" without going through a
// bucket handle.
func (c *Client) Upload(ctx context.Context, localPath, remotePath string) error {
	bucket, key, err := unicloud.SplitRemotePath(remotePath)
	if err != nil {
		return err
	}
	b := &Bucket{handle: c.api.Bucket(bucket), name: bucket, log: c.log}
	return b.Upload(ctx, localPath, key, true)
}

// Download "bucket-name/object/path" to a local file.
func (c *Client) Download(ctx context.Context, remotePath, localPath string) error {
	bucket, key, err := unicloud.SplitRemotePath(remotePath)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.Errorf("remote path %s names no object", remotePath)
	}
	b := &Bucket{handle: c.api.Bucket(bucket), name: bucket, log: c.log}
	return b.Download(ctx, key, localPath)
}
