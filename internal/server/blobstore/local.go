package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/google/uuid"
)

const filePerm = 0o640

// LocalStore keeps blobs as files in a single directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := filex.EnsureDir(s.root); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, uuid.NewString())
	if err := s.Put(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *LocalStore) Put(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return filex.WriteFileAtomic(path, data, filePerm)
}

func (s *LocalStore) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, common.ErrorNotFound)
		}
		return nil, err
	}
	return data, nil
}

func (s *LocalStore) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
