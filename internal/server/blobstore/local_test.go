package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveCreatesRootAndUniqueNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files_manager")
	s := NewLocalStore(root)
	ctx := context.Background()

	p1, err := s.Save(ctx, []byte("hello"))
	require.NoError(t, err)
	p2, err := s.Save(ctx, []byte("hello"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	assert.Equal(t, root, filepath.Dir(p1))
	_, err = uuid.Parse(filepath.Base(p1))
	assert.NoError(t, err, "blob name must be a uuid")

	got, err := s.Get(ctx, p1)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestLocalStore_SaveEmptyPayload(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	p, err := s.Save(context.Background(), []byte{})
	require.NoError(t, err)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestLocalStore_PutOverwrites(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx := context.Background()

	p, err := s.Save(ctx, []byte("orig"))
	require.NoError(t, err)

	thumb := p + "_100"
	require.NoError(t, s.Put(ctx, thumb, []byte("a")))
	require.NoError(t, s.Put(ctx, thumb, []byte("b")))

	got, err := s.Get(ctx, thumb)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func TestLocalStore_GetMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	_, err := s.Get(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLocalStore_Remove(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx := context.Background()

	p, err := s.Save(ctx, []byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Remove(ctx, p))
}

func TestLocalStore_CanceledContext(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
