package node

import (
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/spf13/afero"

	"github.com/storacha/ramd/pkg/fsutil"
)

const (
	pemBlockType = "LIBP2P PRIVATE KEY"
	keyFilePerm  = 0o600
)

var ErrInvalidIdentity = errors.New("invalid node identity")

// LoadOrCreateIdentity reads the node key at path, generating and persisting a
// new Ed25519 key when the file does not exist.
func LoadOrCreateIdentity(fsys afero.Fs, path string) (crypto.PrivKey, error) {
	data, err := afero.ReadFile(fsys, path)
	if err == nil {
		return decodeIdentity(data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading identity %s: %w", path, err)
	}

	sk, _, err := crypto.GenerateEd25519Key(nil)
	if err != nil {
		return nil, fmt.Errorf("generating identity: %w", err)
	}
	data, err = encodeIdentity(sk)
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureParent(fsys, path); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fsys, path, data, keyFilePerm); err != nil {
		return nil, fmt.Errorf("writing identity %s: %w", path, err)
	}
	log.Infof("generated new node identity at %s", path)
	return sk, nil
}

func encodeIdentity(sk crypto.PrivKey) ([]byte, error) {
	raw, err := crypto.MarshalPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("marshaling identity: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemBlockType, Bytes: raw}), nil
}

func decodeIdentity(data []byte) (crypto.PrivKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemBlockType {
		return nil, fmt.Errorf("%w: expected a %q PEM block", ErrInvalidIdentity, pemBlockType)
	}
	sk, err := crypto.UnmarshalPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return sk, nil
}
