package gcs

// Helpers for shipping a service-account key through the environment.
// Containerized deployments often can't mount a key file, so the key
// document travels base64-encoded in the SERVICE_KEY_CONTENT environment
// variable instead and is decoded back into Config.ServiceKeyJSON at
// startup.

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// EncodeServiceKey validates and compacts a service-account JSON document
// and returns it base64-encoded, ready for an environment variable.
func EncodeServiceKey(key []byte) (string, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, key); err != nil {
		return "", errors.Wrap(err, "service key is not valid JSON")
	}
	return base64.StdEncoding.EncodeToString(compact.Bytes()), nil
}

// EncodeServiceKeyFile reads a service-account key file and encodes it.
func EncodeServiceKeyFile(path string) (string, error) {
	key, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "cannot read service key "+path)
	}
	return EncodeServiceKey(key)
}

// DecodeServiceKey reverses EncodeServiceKey, returning the original
// service-account JSON document.
func DecodeServiceKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "service key content is not valid base64")
	}
	if !json.Valid(key) {
		return nil, errors.New("decoded service key is not valid JSON")
	}
	return key, nil
}
