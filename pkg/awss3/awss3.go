// AWS S3 object storage. Implements the unicloud.ObjectStore interface.

package awss3

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	// Optional, the SDK default applies when empty.
	Region string
}

type Client struct {
	api        *s3.S3
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
	log        logrus.FieldLogger
}

// NewClient builds an authenticated S3 client from static credentials.
// Credential resolution (environment variables, config files) happens at the
// process boundary, not here: an empty key pair is an authentication error.
func NewClient(cfg Config, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, unicloud.NewError(unicloud.ErrAuthentication,
			"aws access key id and secret access key are required")
	}

	awsCfg := &aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, unicloud.WrapError(unicloud.ErrAuthentication, err,
			"failed to create aws session")
	}

	return &Client{
		api:        s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
		log:        logger,
	}, nil
}

// GetBucket checks that the bucket exists (HeadBucket is one cheap round
// trip) and returns a handle bound to it.
func (c *Client) GetBucket(ctx context.Context, name string) (unicloud.Bucket, error) {
	_, err := c.api.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		c.log.Errorf("Bucket lookup failed for %s: %v", name, err)
		return nil, translate(err, "bucket "+name)
	}
	return &Bucket{client: c, name: name, log: c.log}, nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := c.api.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		c.log.Errorf("Listing buckets failed: %v", err)
		return nil, translate(err, "list buckets")
	}
	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.StringValue(b.Name))
	}
	return names, nil
}

// Close is a no-op: the SDK holds no resources that outlive its HTTP client.
func (c *Client) Close() error {
	return nil
}

// Upload a local file to "bucket-name/object/path" without going through a
// bucket handle. Mirrors Bucket.Upload for the single-file case.
func (c *Client) Upload(ctx context.Context, localPath, remotePath string) error {
	bucket, key, err := unicloud.SplitRemotePath(remotePath)
	if err != nil {
		return err
	}
	b := &Bucket{client: c, name: bucket, log: c.log}
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
	b := &Bucket{client: c, name: bucket, log: c.log}
	return b.Download(ctx, key, localPath)
}
