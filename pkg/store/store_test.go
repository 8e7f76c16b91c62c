package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/storacha/ramd/pkg/config"
)

func TestOptions(t *testing.T) {
	o := Options(config.StorageConfig{NoSync: true, BlockCacheMiB: 8, WriteBufferMiB: 4})
	require.True(t, o.NoSync)
	require.Equal(t, 8*opt.MiB, o.BlockCacheCapacity)
	require.Equal(t, 4*opt.MiB, o.WriteBuffer)

	o = Options(config.StorageConfig{})
	require.Zero(t, o.BlockCacheCapacity)
	require.Zero(t, o.WriteBuffer)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultStorageConfig(t.TempDir())
	cfg.Path = filepath.Join(cfg.Path, "nested")

	ds, err := Open(cfg)
	require.NoError(t, err)

	key := datastore.NewKey("/greeting")
	require.NoError(t, ds.Put(ctx, key, []byte("hello")))
	require.NoError(t, ds.Close())

	// reopen and find the value persisted
	ds, err = Open(cfg)
	require.NoError(t, err)
	defer ds.Close()

	got, err := ds.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(config.StorageConfig{})
	require.Error(t, err)
}

func TestNewMemory(t *testing.T) {
	ctx := context.Background()
	ds := NewMemory()

	_, err := ds.Get(ctx, datastore.NewKey("missing"))
	require.ErrorIs(t, err, datastore.ErrNotFound)
}
