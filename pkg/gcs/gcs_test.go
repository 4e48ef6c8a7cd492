package gcs

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

var _ unicloud.ObjectStore = (*Client)(nil)
var _ unicloud.Bucket = (*Bucket)(nil)

const sampleKey = `{
	"type": "service_account",
	"project_id": "example-project-id",
	"client_email": "svc@example-project-id.iam.gserviceaccount.com"
}`

func TestEncodeDecodeServiceKey(t *testing.T) {
	encoded, err := EncodeServiceKey([]byte(sampleKey))
	assert.Nil(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := DecodeServiceKey(encoded)
	assert.Nil(t, err)
	// Encoding compacts the document, so compare through a re-encode rather
	// than byte-for-byte.
	reencoded, err := EncodeServiceKey(decoded)
	assert.Nil(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestEncodeServiceKeyRejectsGarbage(t *testing.T) {
	_, err := EncodeServiceKey([]byte("not json"))
	assert.NotNil(t, err)
}

func TestDecodeServiceKeyRejectsGarbage(t *testing.T) {
	_, err := DecodeServiceKey("%%% not base64 %%%")
	assert.NotNil(t, err)

	// Valid base64, invalid payload.
	_, err = DecodeServiceKey("bm90IGpzb24=")
	assert.NotNil(t, err)
}

func TestEncodeServiceKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "unicloud-gcs")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	keyPath := filepath.Join(dir, "key.json")
	assert.Nil(t, ioutil.WriteFile(keyPath, []byte(sampleKey), 0600))

	encoded, err := EncodeServiceKeyFile(keyPath)
	assert.Nil(t, err)

	direct, err := EncodeServiceKey([]byte(sampleKey))
	assert.Nil(t, err)
	assert.Equal(t, direct, encoded)

	_, err = EncodeServiceKeyFile(filepath.Join(dir, "missing.json"))
	assert.NotNil(t, err)
}

func TestNewClientValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, Config{}, nil)
	assert.NotNil(t, err)
	assert.True(t, unicloud.IsAuthentication(err))

	// A configured key file that doesn't exist fails before any network use.
	_, err = NewClient(ctx, Config{
		ProjectID:      "example-project-id",
		ServiceKeyFile: "/no/such/key.json",
	}, nil)
	assert.NotNil(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
