// Package rpc serves the node over JSON-RPC 2.0 on an echo HTTP server.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/storacha/ramd/pkg/config"
	echofx "github.com/storacha/ramd/pkg/fx/echo"
)

var log = logging.Logger("rpc")

const instrumentationName = "github.com/storacha/ramd/pkg/rpc"

var ErrLaunch = errors.New("launching rpc server")

// Handle refers to a running RPC server.
type Handle struct {
	echo    *echo.Echo
	addr    net.Addr
	stopped chan struct{}
	err     error
}

// Stopped is closed once the server has stopped serving.
func (h *Handle) Stopped() <-chan struct{} {
	return h.stopped
}

// Err returns the error that stopped the server, if any. It is nil while the
// server is running and after a clean shutdown.
func (h *Handle) Err() error {
	select {
	case <-h.stopped:
		return h.err
	default:
		return nil
	}
}

// Addr is the address the server is listening on.
func (h *Handle) Addr() net.Addr {
	return h.addr
}

// Shutdown stops the server and waits for it to exit.
func (h *Handle) Shutdown(ctx context.Context) error {
	if err := h.echo.Shutdown(ctx); err != nil {
		return err
	}
	select {
	case <-h.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Launch binds cfg.Addr() and starts serving n over JSON-RPC together with
// the routes of any extra registrars. It returns once the listener is bound;
// serving continues in the background until the returned handle stops.
func Launch(ctx context.Context, cfg config.RPCConfig, n Node, registrars ...echofx.RouteRegistrar) (*Handle, error) {
	handler, err := NewHandler(Methods(n), otel.Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLaunch, cfg.Addr(), err)
	}

	e := NewEcho(cfg)
	e.Listener = ln
	handler.RegisterRoutes(e)
	echofx.RegisterRoutes(e, registrars...)

	h := &Handle{
		echo:    e,
		addr:    ln.Addr(),
		stopped: make(chan struct{}),
	}
	go func() {
		defer close(h.stopped)
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("RPC server error: %v", err)
			h.err = err
		}
	}()

	log.Infof("RPC server listening on %s", h.addr)
	return h, nil
}

// NewEcho creates the echo instance serving RPC with its middleware stack.
func NewEcho(cfg config.RPCConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("ramd"))
	e.Use(echofx.RequestLogger(log))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	if cfg.RequestsPerSecond > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RequestsPerSecond))
		e.Use(middleware.RateLimiter(store))
	}
	e.Use(echofx.ErrorHandler(log))

	return e
}
