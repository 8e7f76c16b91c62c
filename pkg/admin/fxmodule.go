package admin

import (
	"go.uber.org/fx"

	echofx "github.com/storacha/ramd/pkg/fx/echo"
)

var Module = fx.Module("admin",
	fx.Provide(
		echofx.AsRouteRegistrar(NewRoutes),
	),
)
