package adminapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/report"
	"github.com/tvworks/repairdesk/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
}

// getDashboard recomputes every KPI from the full collections; nothing
// derived is cached or persisted.
func getDashboard(c echo.Context) error {
	dash := report.BuildDashboard(deps.Records.Intakes(), deps.Records.Repairs(), time.Now())
	return ok(c, dash)
}
