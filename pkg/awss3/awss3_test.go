package awss3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

var _ unicloud.ObjectStore = (*Client)(nil)
var _ unicloud.Bucket = (*Bucket)(nil)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	assert.NotNil(t, err)
	assert.True(t, unicloud.IsAuthentication(err))

	// A key id alone is not enough either.
	_, err = NewClient(Config{AccessKeyID: "AKIAEXAMPLE", Region: "us-west-2"}, nil)
	assert.NotNil(t, err)
	assert.True(t, unicloud.IsAuthentication(err))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-west-2",
	}, nil)
	assert.Nil(t, err)
	assert.NotNil(t, client)
	assert.Nil(t, client.Close())
}

func TestTranslate(t *testing.T) {
	notFound := translate(awserr.New("NoSuchKey", "the specified key does not exist", nil), "download k")
	assert.True(t, unicloud.IsNotFound(notFound))

	noBucket := translate(awserr.New("NoSuchBucket", "the specified bucket does not exist", nil), "list b")
	assert.True(t, unicloud.IsNotFound(noBucket))

	badKey := translate(awserr.New("InvalidAccessKeyId", "the key id is malformed", nil), "upload k")
	assert.True(t, unicloud.IsAuthentication(badKey))

	// Anything unrecognized during a transfer is a transfer failure.
	throttled := translate(awserr.New("SlowDown", "reduce your request rate", nil), "upload k")
	assert.True(t, unicloud.IsTransfer(throttled))
}

func TestIsNotFoundCode(t *testing.T) {
	assert.True(t, isNotFoundCode(awserr.New("NotFound", "not found", nil)))
	assert.True(t, isNotFoundCode(awserr.New("NoSuchKey", "no such key", nil)))
	assert.False(t, isNotFoundCode(awserr.New("AccessDenied", "access denied", nil)))
}
