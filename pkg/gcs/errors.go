package gcs

import (
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

// translate maps an SDK error onto the unicloud error taxonomy. The original
// error stays available through the cause chain.
func translate(err error, op string) error {
	kind := unicloud.ErrTransfer

	switch {
	case err == storage.ErrObjectNotExist, err == storage.ErrBucketNotExist:
		kind = unicloud.ErrNotFound
	default:
		if gerr, ok := err.(*googleapi.Error); ok {
			switch gerr.Code {
			case http.StatusNotFound:
				kind = unicloud.ErrNotFound
			case http.StatusUnauthorized:
				kind = unicloud.ErrAuthentication
			}
			// 403 stays a transfer error: the credentials were accepted but
			// this operation was refused.
		}
	}

	return unicloud.WrapError(kind, err, op+" failed")
}
