package unicloud

// Utility functions common to all unicloud backends

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Split a combined "bucket-name/object/path" address into its bucket and key
// parts. The key may be empty ("my-bucket" addresses the bucket itself).
func SplitRemotePath(remote string) (bucket, key string, err error) {
	remote = strings.TrimPrefix(remote, "/")
	if remote == "" {
		return "", "", fmt.Errorf("empty remote path")
	}
	parts := strings.SplitN(remote, "/", 2)
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

// A key ending in "/" addresses a directory prefix rather than one object.
func IsDirKey(key string) bool {
	return strings.HasSuffix(key, "/")
}

// JoinKey joins a directory prefix and a relative path with forward slashes,
// regardless of the local path separator.
func JoinKey(prefix, rel string) string {
	rel = filepath.ToSlash(rel)
	if prefix == "" {
		return rel
	}
	return strings.TrimSuffix(prefix, "/") + "/" + rel
}

// LocalFiles lists every regular file under root, as paths relative to root.
// Used by the backends to turn a directory upload into per-file uploads.
func LocalFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Copy a file from src to dst (basically the posix 'cp' command)
// Src and dst represent paths to regular files (not directories)
func CopyFile(src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	from, err := os.Open(src)
	if err != nil {
		return err
	}
	defer from.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	to, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, sourceFileStat.Mode().Perm())
	if err != nil {
		return err
	}
	defer to.Close()

	_, err = io.Copy(to, from)
	if err != nil {
		return err
	}

	return nil
}
