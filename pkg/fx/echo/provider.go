package echo

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

var log = logging.Logger("fx/echo")

// RouteRegistrar defines the interface for services that register Echo routes
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

// RouteParams collects all route registrars
type RouteParams struct {
	fx.In

	Registrars []RouteRegistrar `group:"route_registrar"`
}

// AsRouteRegistrar annotates ctor so its result joins the route_registrar
// group.
func AsRouteRegistrar(ctor any) any {
	return fx.Annotate(
		ctor,
		fx.As(new(RouteRegistrar)),
		fx.ResultTags(`group:"route_registrar"`),
	)
}

// RegisterRoutes registers all routes from the given registrars
func RegisterRoutes(e *echo.Echo, registrars ...RouteRegistrar) {
	log.Debugf("Registering routes from %d registrars", len(registrars))

	for _, registrar := range registrars {
		registrar.RegisterRoutes(e)
	}
}
