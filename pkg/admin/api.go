package admin

import (
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"

	echofx "github.com/storacha/ramd/pkg/fx/echo"
)

// BasePath is where the admin API is mounted on the RPC server.
const BasePath = "/admin"

var _ echofx.RouteRegistrar = (*Routes)(nil)

// Routes serves the admin API.
type Routes struct{}

func NewRoutes() *Routes {
	return &Routes{}
}

// RegisterRoutes registers the admin API routes on the given echo server.
func (r *Routes) RegisterRoutes(e *echo.Echo) {
	g := e.Group(BasePath)
	g.GET("/log/subsystems", listLogSubsystems)
	g.GET("/log/level", listLogLevels)
	g.POST("/log/level", setLogLevel)
}

// ListLogSubsystemsResponse defines the response for the list log subsystems endpoint.
type ListLogSubsystemsResponse struct {
	Subsystems []string `json:"subsystems"`
}

// ListLogLevelsResponse defines the response for the list log levels endpoint.
type ListLogLevelsResponse struct {
	Levels map[string]string `json:"levels"`
}

// SetLogLevelRequest defines the request for the set log level endpoint.
type SetLogLevelRequest struct {
	Subsystem string `json:"subsystem"`
	Level     string `json:"level"`
}

func listLogSubsystems(c echo.Context) error {
	return c.JSON(http.StatusOK, &ListLogSubsystemsResponse{
		Subsystems: logging.GetSubsystems(),
	})
}

func listLogLevels(c echo.Context) error {
	subsystems := logging.GetSubsystems()
	levels := make(map[string]string, len(subsystems))
	for _, subsystem := range subsystems {
		levels[subsystem] = logging.Logger(subsystem).Level().String()
	}

	return c.JSON(http.StatusOK, &ListLogLevelsResponse{Levels: levels})
}

func setLogLevel(c echo.Context) error {
	var req SetLogLevelRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if req.Subsystem == "" {
		return c.String(http.StatusBadRequest, "subsystem is required")
	}
	if req.Level == "" {
		return c.String(http.StatusBadRequest, "level is required")
	}

	if err := logging.SetLogLevel(req.Subsystem, req.Level); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusOK)
}
