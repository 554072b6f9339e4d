// Package storage holds avatar blob stores: a local directory served by the
// API itself, and an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage writes avatars into a directory that the router exposes under
// URLPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage creates dir if needed. urlPrefix is the public path the
// directory is served from, e.g. "/uploads".
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/") + "/"}, nil
}

// Dir is the directory avatars are written to.
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	name, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close avatar file: %w", err)
	}
	return s.urlPrefix + name, nil
}

// Delete removes the file behind ref. Missing files are not an error.
func (s *LocalStorage) Delete(_ context.Context, ref string) error {
	if !s.Owns(ref) {
		return fmt.Errorf("avatar %q is not stored locally", ref)
	}
	name, err := cleanKey(strings.TrimPrefix(ref, s.urlPrefix))
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove avatar file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Owns(ref string) bool {
	return strings.HasPrefix(ref, s.urlPrefix)
}

// cleanKey rejects anything that is not a plain file name.
func cleanKey(key string) (string, error) {
	name := path.Base(key)
	if name != key || name == "." || name == ".." || name == "/" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid avatar key %q", key)
	}
	return name, nil
}
