// Package store opens the key/value datastore shared by the node and the RPC
// server.
package store

import (
	"fmt"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	leveldb "github.com/ipfs/go-ds-leveldb"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/afero"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/storacha/ramd/pkg/config"
	"github.com/storacha/ramd/pkg/fsutil"
)

var log = logging.Logger("store")

// Open opens (or creates) the LevelDB datastore at cfg.Path.
func Open(cfg config.StorageConfig) (datastore.Batching, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("no data dir provided for storage")
	}
	if err := fsutil.EnsureDirAll(afero.NewOsFs(), cfg.Path); err != nil {
		return nil, fmt.Errorf("creating leveldb for store at path %s: %w", cfg.Path, err)
	}

	ds, err := leveldb.NewDatastore(cfg.Path, Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening leveldb at %s: %w", cfg.Path, err)
	}
	log.Infow("opened datastore", "path", cfg.Path, "no_sync", cfg.NoSync)
	return ds, nil
}

// Options maps the storage section onto LevelDB options. Zero sizes leave the
// LevelDB defaults in place.
func Options(cfg config.StorageConfig) *leveldb.Options {
	return &leveldb.Options{
		NoSync:             cfg.NoSync,
		BlockCacheCapacity: cfg.BlockCacheMiB * opt.MiB,
		WriteBuffer:        cfg.WriteBufferMiB * opt.MiB,
	}
}

// NewMemory returns a thread safe in-memory datastore.
func NewMemory() datastore.Batching {
	return dssync.MutexWrap(datastore.NewMapDatastore())
}
