// Package daemon runs a ramd node: it resolves the configuration, brings the
// subsystems up in order and then parks the caller.
package daemon

import (
	"context"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/storacha/ramd/pkg/build"
	"github.com/storacha/ramd/pkg/config"
	"github.com/storacha/ramd/pkg/fx/app"
)

var log = logging.Logger("daemon")

const StartTimeout = 15 * time.Second

// Resolver produces the finalized node configuration.
type Resolver interface {
	Resolve() (config.RamdConfig, error)
}

// Start resolves the config, initializes tracing and starts the node. Tracing
// is initialized before anything else is constructed so every subsystem logs
// through it. On failure, handles that were already opened are closed;
// directories created during resolution are left in place.
func Start(ctx context.Context, r Resolver, c app.Collaborators, opts ...fx.Option) (*app.App, error) {
	cfg, err := r.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving config: %w", err)
	}

	c.InitTracing(cfg.Tracing)
	log.Infow("starting ramd", "version", build.Version, "name", cfg.Node.Name, "root", cfg.Node.RootPath)

	a := app.New(cfg, c, opts...)
	if err := a.Err(); err != nil {
		return nil, multierr.Combine(fmt.Errorf("building ramd: %w", err), a.Close())
	}

	startCtx, cancel := context.WithTimeout(ctx, StartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		return nil, multierr.Combine(fmt.Errorf("starting ramd: %w", err), a.Close())
	}

	log.Infof("ramd running, rpc on %s", a.RPCAddr())
	return a, nil
}

// Run starts the node and then parks until ctx is done. Nothing is torn down
// when it returns.
func Run(ctx context.Context, r Resolver, c app.Collaborators, opts ...fx.Option) error {
	if _, err := Start(ctx, r, c, opts...); err != nil {
		return err
	}
	Park(ctx)
	return nil
}

// Park blocks until ctx is done. With a context that is never cancelled it
// blocks for the life of the process.
func Park(ctx context.Context) {
	<-ctx.Done()
}
