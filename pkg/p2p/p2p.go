// Package p2p describes the node's peer-to-peer endpoint. The server is
// constructed from config but no transport is started.
package p2p

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/storacha/ramd/pkg/config"
)

var log = logging.Logger("p2p")

type Server struct {
	id         peer.ID
	listenAddr multiaddr.Multiaddr
	dataDir    string
	maxPeers   int
}

// New validates cfg and returns a server for the node identified by id.
func New(cfg config.P2PConfig, id peer.ID) (*Server, error) {
	addr, err := multiaddr.NewMultiaddr(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("parsing p2p listen address %q: %w", cfg.ListenAddr, err)
	}
	if cfg.MaxPeers < 0 {
		return nil, fmt.Errorf("p2p max peers must not be negative, got %d", cfg.MaxPeers)
	}
	s := &Server{
		id:         id,
		listenAddr: addr,
		dataDir:    cfg.ConfigPath,
		maxPeers:   cfg.MaxPeers,
	}
	log.Debugw("p2p server configured", "addr", s.AddrInfo().String(), "max_peers", s.maxPeers)
	return s, nil
}

func (s *Server) ListenAddr() multiaddr.Multiaddr {
	return s.listenAddr
}

func (s *Server) DataDir() string {
	return s.dataDir
}

func (s *Server) MaxPeers() int {
	return s.maxPeers
}

// AddrInfo is the peer address this server would advertise.
func (s *Server) AddrInfo() peer.AddrInfo {
	return peer.AddrInfo{ID: s.id, Addrs: []multiaddr.Multiaddr{s.listenAddr}}
}
