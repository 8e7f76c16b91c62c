package app

import (
	"context"
	"net"

	"github.com/ipfs/go-datastore"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/storacha/ramd/pkg/config"
	echofx "github.com/storacha/ramd/pkg/fx/echo"
	"github.com/storacha/ramd/pkg/node"
	"github.com/storacha/ramd/pkg/p2p"
	"github.com/storacha/ramd/pkg/rpc"
	"github.com/storacha/ramd/pkg/store"
	"github.com/storacha/ramd/pkg/tracing"
)

// Node is the node handle shared with RPC and p2p.
type Node interface {
	rpc.Node
	ID() peer.ID
}

// RPCHandle refers to a launched RPC server.
type RPCHandle interface {
	Stopped() <-chan struct{}
	Err() error
	Addr() net.Addr
}

// Collaborators are the subsystem constructors the node is assembled from.
// Each one receives only its own config section.
type Collaborators struct {
	InitTracing func(config.TracingConfig)
	NewStorage  func(config.StorageConfig) (datastore.Batching, error)
	NewNode     func(config.NodeConfig, datastore.Batching) (Node, error)
	LaunchRPC   func(context.Context, config.RPCConfig, rpc.Node, ...echofx.RouteRegistrar) (RPCHandle, error)
	NewP2P      func(config.P2PConfig, peer.ID) (*p2p.Server, error)
}

// DefaultCollaborators wires the real subsystems.
func DefaultCollaborators() Collaborators {
	return Collaborators{
		InitTracing: tracing.Init,
		NewStorage:  store.Open,
		NewNode: func(cfg config.NodeConfig, ds datastore.Batching) (Node, error) {
			n, err := node.New(cfg, ds)
			if err != nil {
				return nil, err
			}
			return n, nil
		},
		LaunchRPC: func(ctx context.Context, cfg config.RPCConfig, n rpc.Node, registrars ...echofx.RouteRegistrar) (RPCHandle, error) {
			h, err := rpc.Launch(ctx, cfg, n, registrars...)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
		NewP2P: p2p.New,
	}
}
