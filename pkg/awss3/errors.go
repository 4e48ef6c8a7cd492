package awss3

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

// translate maps an SDK error onto the unicloud error taxonomy. The original
// awserr stays available through the cause chain.
func translate(err error, op string) error {
	kind := unicloud.ErrTransfer

	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			kind = unicloud.ErrNotFound
		case "InvalidAccessKeyId", "SignatureDoesNotMatch",
			"ExpiredToken", "NoCredentialProviders", "MissingAuthenticationToken":
			kind = unicloud.ErrAuthentication
		}
	}

	return unicloud.WrapError(kind, err, op+" failed")
}

func isNotFoundCode(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}
