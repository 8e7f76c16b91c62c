// Package node holds the node identity and the key/value API served over RPC.
package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/spf13/afero"

	"github.com/storacha/ramd/pkg/config"
)

var log = logging.Logger("node")

var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid key")
)

var kvPrefix = datastore.NewKey("/kv")

// Info describes a running node.
type Info struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"public_key"`
	StartedAt time.Time `json:"started_at"`
}

type Node struct {
	name    string
	key     crypto.PrivKey
	id      peer.ID
	kv      datastore.Datastore
	started time.Time
}

// New builds a node from its config section and the shared datastore. The
// identity key at cfg.ConfigPath is created on first use.
func New(cfg config.NodeConfig, ds datastore.Batching) (*Node, error) {
	return NewWithFs(afero.NewOsFs(), cfg, ds)
}

func NewWithFs(fsys afero.Fs, cfg config.NodeConfig, ds datastore.Batching) (*Node, error) {
	if ds == nil {
		return nil, fmt.Errorf("node requires a datastore")
	}
	sk, err := LoadOrCreateIdentity(fsys, cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	id, err := peer.IDFromPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("deriving peer id: %w", err)
	}
	log.Infow("node ready", "name", cfg.Name, "id", id.String())
	return &Node{
		name:    cfg.Name,
		key:     sk,
		id:      id,
		kv:      namespace.Wrap(ds, kvPrefix),
		started: time.Now().UTC(),
	}, nil
}

func (n *Node) ID() peer.ID {
	return n.id
}

func (n *Node) PublicKey() crypto.PubKey {
	return n.key.GetPublic()
}

func (n *Node) Info() Info {
	pub, err := crypto.MarshalPublicKey(n.key.GetPublic())
	if err != nil {
		log.Warnf("marshaling public key: %s", err)
	}
	return Info{
		ID:        n.id.String(),
		Name:      n.name,
		PublicKey: crypto.ConfigEncodeKey(pub),
		StartedAt: n.started,
	}
}

func (n *Node) Get(ctx context.Context, key string) ([]byte, error) {
	k, err := toKey(key)
	if err != nil {
		return nil, err
	}
	v, err := n.kv.Get(ctx, k)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return v, nil
}

func (n *Node) Put(ctx context.Context, key string, value []byte) error {
	k, err := toKey(key)
	if err != nil {
		return err
	}
	if err := n.kv.Put(ctx, k, value); err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}
	return nil
}

func (n *Node) Has(ctx context.Context, key string) (bool, error) {
	k, err := toKey(key)
	if err != nil {
		return false, err
	}
	ok, err := n.kv.Has(ctx, k)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	return ok, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (n *Node) Delete(ctx context.Context, key string) error {
	k, err := toKey(key)
	if err != nil {
		return err
	}
	if err := n.kv.Delete(ctx, k); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// toKey maps key to its datastore key. Keys must already be in clean form
// (no leading or trailing "/", no empty, "." or ".." segments) so that
// distinct keys never share a stored entry.
func toKey(key string) (datastore.Key, error) {
	if key == "" {
		return datastore.Key{}, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	k := datastore.NewKey(key)
	if k.String() != "/"+key {
		return datastore.Key{}, fmt.Errorf("%w: %q is not a clean path", ErrInvalidKey, key)
	}
	return k, nil
}
