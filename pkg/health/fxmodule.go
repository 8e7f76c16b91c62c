package health

import (
	"go.uber.org/fx"

	echofx "github.com/storacha/ramd/pkg/fx/echo"
)

// Module provides health check functionality
var Module = fx.Module("health",
	fx.Provide(
		NewChecker,
		echofx.AsRouteRegistrar(NewHandler),
	),
)
