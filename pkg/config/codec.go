package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Encode serializes cfg as a TOML document.
func Encode(cfg RamdConfig) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Decode parses a TOML document over into. Fields missing from the document
// keep whatever value into already holds.
func Decode(data []byte, into *RamdConfig) error {
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(into); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// DecodeStrict parses a TOML document and rejects keys that are not part of
// the schema. Used to lint hand edited files.
func DecodeStrict(r io.Reader, into *RamdConfig) error {
	dec := gotoml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
