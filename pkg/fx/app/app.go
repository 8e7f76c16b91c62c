package app

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/storacha/ramd/pkg/admin"
	"github.com/storacha/ramd/pkg/config"
	echofx "github.com/storacha/ramd/pkg/fx/echo"
	"github.com/storacha/ramd/pkg/health"
)

var log = logging.Logger("fx/app")

var probeKey = datastore.NewKey("/health/probe")

// App is the assembled node. Constructors run when the App is built, in the
// order storage, node; RPC is launched and p2p constructed when it starts.
type App struct {
	fx      *fx.App
	opened  *closers
	rpc     *launched
	started bool
}

// launched records the address the RPC server bound to.
type launched struct {
	addr net.Addr
}

// New builds the node graph from cfg. Construction errors are reported by
// Err.
func New(cfg config.RamdConfig, c Collaborators, opts ...fx.Option) *App {
	opened := &closers{}
	rpc := &launched{}
	a := fx.New(
		// if a panic occurs during construction or startup, recover from it and report it as an error
		fx.RecoverFromPanics(),

		// fx events are logged at debug level, errors are still logged at error level.
		fx.WithLogger(func() fxevent.Logger {
			el := &fxevent.ZapLogger{Logger: log.Desugar()}
			el.UseLogLevel(zapcore.DebugLevel)
			return el
		}),

		module(cfg, c, opened, rpc),
		fx.Options(opts...),
	)
	return &App{fx: a, opened: opened, rpc: rpc}
}

func (a *App) Err() error {
	return a.fx.Err()
}

// Start launches RPC and constructs p2p. On failure every hook that already
// ran is rolled back.
func (a *App) Start(ctx context.Context) error {
	if err := a.fx.Start(ctx); err != nil {
		return err
	}
	a.started = true
	return nil
}

// RPCAddr is the address the RPC server is listening on, or nil before Start.
func (a *App) RPCAddr() net.Addr {
	return a.rpc.addr
}

// Stop runs the stop hooks of a started App.
func (a *App) Stop(ctx context.Context) error {
	if !a.started {
		return a.Close()
	}
	return a.fx.Stop(ctx)
}

// Close releases every handle opened so far. It is used when the App failed
// to build or start; closing twice is a no-op.
func (a *App) Close() error {
	return a.opened.Close()
}

// module supplies each config section separately and provides the storage
// and node handles. Consumers depend on the section they need, so storage is
// constructed before the node and the node before RPC is launched.
func module(cfg config.RamdConfig, c Collaborators, opened *closers, rpc *launched) fx.Option {
	return fx.Module("ramd",
		fx.Supply(cfg.Node),
		fx.Supply(cfg.Storage),
		fx.Supply(cfg.RPC),
		fx.Supply(cfg.P2P),
		fx.Supply(cfg.Tracing),

		fx.Provide(
			func(scfg config.StorageConfig, lc fx.Lifecycle) (datastore.Batching, error) {
				return newStorage(c, scfg, lc, opened)
			},
			func(ncfg config.NodeConfig, ds datastore.Batching) (Node, error) {
				n, err := c.NewNode(ncfg, ds)
				if err != nil {
					return nil, fmt.Errorf("creating node: %w", err)
				}
				return n, nil
			},
		),

		health.Module, // Provides the health checker and its routes
		admin.Module,  // Provides admin log level routes

		fx.Invoke(addStorageProbe),
		fx.Invoke(func(lc fx.Lifecycle, rcfg config.RPCConfig, n Node, checker *health.Checker, routes echofx.RouteParams) {
			launchRPC(lc, c, rcfg, n, checker, routes.Registrars, rpc)
		}),
		fx.Invoke(func(lc fx.Lifecycle, pcfg config.P2PConfig, n Node) {
			constructP2P(lc, c, pcfg, n)
		}),
	)
}

func newStorage(c Collaborators, cfg config.StorageConfig, lc fx.Lifecycle, opened *closers) (datastore.Batching, error) {
	ds, err := c.NewStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	closeDs := opened.add("storage", ds.Close)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closeDs()
		},
	})
	return ds, nil
}

func addStorageProbe(checker *health.Checker, ds datastore.Batching) {
	checker.AddProbe("storage", func(ctx context.Context) error {
		_, err := ds.Has(ctx, probeKey)
		return err
	})
}

func launchRPC(lc fx.Lifecycle, c Collaborators, cfg config.RPCConfig, n Node, checker *health.Checker, registrars []echofx.RouteRegistrar, rpc *launched) {
	var h RPCHandle
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			h, err = c.LaunchRPC(ctx, cfg, n, registrars...)
			if err != nil {
				return fmt.Errorf("launching rpc: %w", err)
			}
			rpc.addr = h.Addr()
			checker.SetReady(true)
			log.Infow("rpc launched", "addr", rpc.addr.String())

			// the stopped signal is observed and dropped
			go func(h RPCHandle) {
				<-h.Stopped()
				checker.SetReady(false)
				if err := h.Err(); err != nil {
					log.Errorw("rpc server stopped", "error", err)
					return
				}
				log.Info("rpc server stopped")
			}(h)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s, ok := h.(interface{ Shutdown(context.Context) error }); ok {
				return s.Shutdown(ctx)
			}
			return nil
		},
	})
}

func constructP2P(lc fx.Lifecycle, c Collaborators, cfg config.P2PConfig, n Node) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			srv, err := c.NewP2P(cfg, n.ID())
			if err != nil {
				return fmt.Errorf("configuring p2p: %w", err)
			}
			log.Infow("p2p configured, not started", "listen_addr", srv.ListenAddr().String())
			return nil
		},
	})
}

type closers struct {
	mu  sync.Mutex
	fns []func() error
}

// add registers fn and returns a version of it that runs at most once.
func (c *closers) add(name string, fn func() error) func() error {
	var once sync.Once
	var err error
	wrapped := func() error {
		once.Do(func() {
			if err = fn(); err != nil {
				err = fmt.Errorf("closing %s: %w", name, err)
			}
		})
		return err
	}
	c.mu.Lock()
	c.fns = append(c.fns, wrapped)
	c.mu.Unlock()
	return wrapped
}

// Close runs the registered closers in reverse order.
func (c *closers) Close() error {
	c.mu.Lock()
	fns := c.fns
	c.mu.Unlock()

	var err error
	for i := len(fns) - 1; i >= 0; i-- {
		err = multierr.Append(err, fns[i]())
	}
	return err
}
