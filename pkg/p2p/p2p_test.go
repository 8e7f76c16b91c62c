package p2p

import (
	"testing"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/require"

	"github.com/storacha/ramd/pkg/config"
)

func testPeerID(t *testing.T) peer.ID {
	t.Helper()
	sk, _, err := crypto.GenerateEd25519Key(nil)
	require.NoError(t, err)
	id, err := peer.IDFromPrivateKey(sk)
	require.NoError(t, err)
	return id
}

func TestNew(t *testing.T) {
	id := testPeerID(t)
	cfg := config.DefaultP2PConfig("/home/u/.ramd")

	s, err := New(cfg, id)
	require.NoError(t, err)
	require.Equal(t, cfg.ListenAddr, s.ListenAddr().String())
	require.Equal(t, "/home/u/.ramd/p2p", s.DataDir())
	require.Equal(t, cfg.MaxPeers, s.MaxPeers())

	info := s.AddrInfo()
	require.Equal(t, id, info.ID)
	require.Len(t, info.Addrs, 1)
}

func TestNewRejectsBadConfig(t *testing.T) {
	id := testPeerID(t)

	cfg := config.DefaultP2PConfig("/home/u/.ramd")
	cfg.ListenAddr = "0.0.0.0:9000"
	_, err := New(cfg, id)
	require.Error(t, err)

	cfg = config.DefaultP2PConfig("/home/u/.ramd")
	cfg.MaxPeers = -1
	_, err = New(cfg, id)
	require.Error(t, err)
}
