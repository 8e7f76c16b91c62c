package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/storacha/ramd/pkg/node"
)

const (
	MethodNodeInfo = "ramd_nodeInfo"
	MethodGet      = "ramd_get"
	MethodPut      = "ramd_put"
	MethodHas      = "ramd_has"
	MethodDelete   = "ramd_delete"
)

// Node is the part of the node served over RPC.
type Node interface {
	Info() node.Info
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Has(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Entry is a key and its value. Values are carried as strings.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Methods returns the ramd JSON-RPC method table backed by n.
func Methods(n Node) map[string]MethodFunc {
	return map[string]MethodFunc{
		MethodNodeInfo: func(ctx context.Context, params json.RawMessage) (any, error) {
			if err := decodeParams(params, nil); err != nil {
				return nil, err
			}
			return n.Info(), nil
		},
		MethodGet: func(ctx context.Context, params json.RawMessage) (any, error) {
			var key string
			if err := decodeParams(params, []string{"key"}, &key); err != nil {
				return nil, err
			}
			v, err := n.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			return Entry{Key: key, Value: string(v)}, nil
		},
		MethodPut: func(ctx context.Context, params json.RawMessage) (any, error) {
			var key, value string
			if err := decodeParams(params, []string{"key", "value"}, &key, &value); err != nil {
				return nil, err
			}
			if err := n.Put(ctx, key, []byte(value)); err != nil {
				return nil, err
			}
			return true, nil
		},
		MethodHas: func(ctx context.Context, params json.RawMessage) (any, error) {
			var key string
			if err := decodeParams(params, []string{"key"}, &key); err != nil {
				return nil, err
			}
			return n.Has(ctx, key)
		},
		MethodDelete: func(ctx context.Context, params json.RawMessage) (any, error) {
			var key string
			if err := decodeParams(params, []string{"key"}, &key); err != nil {
				return nil, err
			}
			if err := n.Delete(ctx, key); err != nil {
				return nil, err
			}
			return true, nil
		},
	}
}

// decodeParams fills into from positional (array) or named (object) params.
// names gives the object key for each target.
func decodeParams(params json.RawMessage, names []string, into ...any) error {
	params = bytes.TrimSpace(params)
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		if len(into) == 0 {
			return nil
		}
		return newError(CodeInvalidParams, "expected %d params", len(into))
	}

	switch params[0] {
	case '[':
		var args []json.RawMessage
		if err := json.Unmarshal(params, &args); err != nil {
			return newError(CodeInvalidParams, "invalid params: %s", err)
		}
		if len(args) != len(into) {
			return newError(CodeInvalidParams, "expected %d params, got %d", len(into), len(args))
		}
		for i, arg := range args {
			if err := json.Unmarshal(arg, into[i]); err != nil {
				return newError(CodeInvalidParams, "param %d: %s", i, err)
			}
		}
	case '{':
		var args map[string]json.RawMessage
		if err := json.Unmarshal(params, &args); err != nil {
			return newError(CodeInvalidParams, "invalid params: %s", err)
		}
		for i, name := range names {
			arg, ok := args[name]
			if !ok {
				return newError(CodeInvalidParams, "missing param %q", name)
			}
			if err := json.Unmarshal(arg, into[i]); err != nil {
				return newError(CodeInvalidParams, "param %q: %s", name, err)
			}
		}
	default:
		return newError(CodeInvalidParams, "params must be an array or an object")
	}
	return nil
}

func toError(err error) *Error {
	var rpcErr *Error
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, node.ErrNotFound):
		return newError(CodeNotFound, "%s", err)
	case errors.Is(err, node.ErrInvalidKey):
		return newError(CodeInvalidParams, "%s", err)
	default:
		return newError(CodeInternalError, "internal error")
	}
}
