package adminapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/report"
	"github.com/tvworks/repairdesk/internal/webserver"
)

func registerHistoryRoutes() {
	webserver.ApiGET("/history", getHistory)
}

// getHistory returns the merged event timeline plus the combined record
// for one serial. An empty serial yields empty results.
func getHistory(c echo.Context) error {
	serial := strings.TrimSpace(c.QueryParam("serial"))
	intakes := deps.Records.Intakes()
	repairs := deps.Records.Repairs()
	return ok(c, map[string]interface{}{
		"events":   report.MergeHistory(serial, intakes, repairs),
		"combined": report.Combine(serial, intakes, repairs),
	})
}
