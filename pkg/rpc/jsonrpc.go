package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	echofx "github.com/storacha/ramd/pkg/fx/echo"
)

const Version = "2.0"

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32001
)

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

func newError(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

func (r request) isNotification() bool {
	return len(r.ID) == 0
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// MethodFunc handles one JSON-RPC method. Returning an *Error sets the error
// code; any other error is reported as an internal error.
type MethodFunc func(ctx context.Context, params json.RawMessage) (any, error)

var _ echofx.RouteRegistrar = (*Handler)(nil)

// Handler serves JSON-RPC 2.0 requests, single or batched, on POST /.
type Handler struct {
	methods map[string]MethodFunc
	calls   metric.Int64Counter
}

func NewHandler(methods map[string]MethodFunc, meter metric.Meter) (*Handler, error) {
	calls, err := meter.Int64Counter("ramd.rpc.calls",
		metric.WithDescription("JSON-RPC calls by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rpc call counter: %w", err)
	}
	return &Handler{methods: methods, calls: calls}, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/", h.Serve)
}

func (h *Handler) Serve(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(body, &batch); err != nil {
			return c.JSON(http.StatusOK, errorResponse(nil, newError(CodeParseError, "parse error: %s", err)))
		}
		if len(batch) == 0 {
			return c.JSON(http.StatusOK, errorResponse(nil, newError(CodeInvalidRequest, "empty batch")))
		}
		out := make([]response, 0, len(batch))
		for _, raw := range batch {
			if resp, ok := h.handle(ctx, raw); ok {
				out = append(out, resp)
			}
		}
		if len(out) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, out)
	}

	resp, ok := h.handle(ctx, body)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, resp)
}

// handle processes one request. ok is false for notifications, which get no
// response.
func (h *Handler) handle(ctx context.Context, raw json.RawMessage) (resp response, ok bool) {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return errorResponse(nil, newError(CodeParseError, "parse error: %s", err)), true
		}
		return errorResponse(nil, newError(CodeInvalidRequest, "invalid request: %s", err)), true
	}
	if req.JSONRPC != Version || req.Method == "" {
		return errorResponse(req.ID, newError(CodeInvalidRequest, "invalid request")), true
	}

	result, rpcErr := h.call(ctx, req)
	if req.isNotification() {
		return response{}, false
	}
	if rpcErr != nil {
		return errorResponse(req.ID, rpcErr), true
	}
	return response{JSONRPC: Version, Result: result, ID: req.ID}, true
}

func (h *Handler) call(ctx context.Context, req request) (json.RawMessage, *Error) {
	fn, ok := h.methods[req.Method]
	if !ok {
		h.record(ctx, req.Method, "not_found")
		return nil, newError(CodeMethodNotFound, "method not found: %s", req.Method)
	}

	out, err := fn(ctx, req.Params)
	if err != nil {
		rpcErr := toError(err)
		h.record(ctx, req.Method, "error")
		if rpcErr.Code == CodeInternalError {
			log.Errorw("rpc call failed", "method", req.Method, "error", err)
		}
		return nil, rpcErr
	}

	result, err := json.Marshal(out)
	if err != nil {
		h.record(ctx, req.Method, "error")
		return nil, newError(CodeInternalError, "encoding result: %s", err)
	}
	h.record(ctx, req.Method, "ok")
	return result, nil
}

func (h *Handler) record(ctx context.Context, method, outcome string) {
	h.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
}

func errorResponse(id json.RawMessage, err *Error) response {
	return response{JSONRPC: Version, Error: err, ID: id}
}
