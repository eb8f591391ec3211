// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filestore keeps the raw resource documents of each harvest on the
local filesystem, one JSON file per language and date:

	{root}/{date}/{code}.json

The harvest row stores the path relative to the root, so the repository folder
can move between hosts without rewriting the catalog.
*/
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taibuivan/langdata/pkg/canon"
)

// ErrNotExist is returned by [Store.Read] when no document is stored at the path.
var ErrNotExist = errors.New("filestore: document does not exist")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store is a resource repository rooted at a directory.
type Store struct {
	Root string
}

// New returns a store rooted at root, creating the directory when missing.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("filestore: failed to create root %s: %w", root, err)
	}
	return &Store{Root: root}, nil
}

// Path returns the relative path of the document for code harvested at date.
func (store *Store) Path(date, code string) (string, error) {
	if !canon.IsFileSafe(date) || !canon.IsFileSafe(code) {
		return "", fmt.Errorf("filestore: unsafe path element in %q/%q", date, code)
	}
	return filepath.Join(date, code+".json"), nil
}

// Write stores data at path, creating the date folder when missing.
// The document is written to a temporary file first and renamed into place.
func (store *Store) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := store.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("filestore: failed to create folder for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("filestore: failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("filestore: failed to move %s into place: %w", path, err)
	}

	return nil
}

// Read returns the document stored at path, or [ErrNotExist].
func (store *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrNotExist
	}

	data, err := os.ReadFile(store.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: failed to read %s: %w", path, err)
	}
	return data, nil
}

// Remove deletes the document at path. A missing document is not an error.
func (store *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(store.resolve(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: failed to remove %s: %w", path, err)
	}
	return nil
}

// resolve maps a stored path onto the filesystem. Absolute paths written by
// older deployments are used as they are.
func (store *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(store.Root, path)
}
