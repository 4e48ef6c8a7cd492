package ucmgr

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unicloudio/unicloud/pkg/localstore"
)

func writeConfig(t *testing.T, dir, content string) string {
	cfgPath := filepath.Join(dir, "unicloud.yaml")
	if err := ioutil.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Test setup failed: %v\n", err)
	}
	return cfgPath
}

func TestManagerLocalProvider(t *testing.T) {
	dir, err := ioutil.TempDir("", "unicloud-mgr")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	cfgPath := writeConfig(t, dir, fmt.Sprintf(`
default-provider: dev
providers:
  dev:
    objstore: local
service:
  objstore:
    local:
      root: %s
`, filepath.Join(dir, "objects")))

	mgr, err := NewManager(map[string]interface{}{"config-file": cfgPath})
	assert.Nil(t, err)
	defer mgr.Destroy()

	store, ok := mgr.Provider.ObjStore.(*localstore.Store)
	assert.True(t, ok)

	ctx := context.Background()
	assert.Nil(t, store.CreateBucket(ctx, "b1"))

	bucket, err := mgr.Provider.ObjStore.GetBucket(ctx, "b1")
	assert.Nil(t, err)
	assert.Equal(t, "b1", bucket.Name())
}

func TestManagerNoDefaultProvider(t *testing.T) {
	dir, err := ioutil.TempDir("", "unicloud-mgr")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	cfgPath := writeConfig(t, dir, "providers:\n  dev:\n    objstore: local\n")

	_, err = NewManager(map[string]interface{}{"config-file": cfgPath})
	assert.NotNil(t, err)
}

func TestManagerUnknownService(t *testing.T) {
	dir, err := ioutil.TempDir("", "unicloud-mgr")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	cfgPath := writeConfig(t, dir, `
default-provider: dev
providers:
  dev:
    objstore: tapeArchive
`)

	_, err = NewManager(map[string]interface{}{"config-file": cfgPath})
	assert.NotNil(t, err)
}

func TestManagerBadOptionTypes(t *testing.T) {
	_, err := NewManager(map[string]interface{}{"config-file": 42})
	assert.NotNil(t, err)
}
