package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/forwarder"
	"github.com/tvworks/repairdesk/internal/report"
	"github.com/tvworks/repairdesk/internal/webserver"
)

func registerForwardRoutes() {
	webserver.ApiPOST("/forward/:serial", forwardSerial)
}

// forwardSerial posts the serial's combined record to the configured
// submission endpoint. One attempt, no retry.
func forwardSerial(c echo.Context) error {
	if deps.Forward == nil || !deps.Forward.Enabled() {
		return fail(c, http.StatusBadRequest, "FORWARD_DISABLED", "No submission endpoint configured", nil)
	}
	serial := strings.TrimSpace(c.Param("serial"))
	if serial == "" {
		return fail(c, http.StatusBadRequest, "MISSING_SERIAL", "Serial is required", nil)
	}

	combined := report.Combine(serial, deps.Records.Intakes(), deps.Records.Repairs())
	if combined.Intake == nil && len(combined.Repairs) == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No records for this serial", nil)
	}

	payload := forwarder.BuildPayload(combined, forwarder.PhotoLoader(deps.Blobs.Get))
	if err := deps.Forward.Submit(payload); err != nil {
		zap.L().Error("forward failed", zap.String("serial", serial), zap.Error(err))
		return fail(c, http.StatusBadGateway, "FORWARD_FAILED", "Submission failed", nil)
	}
	return ok(c, map[string]interface{}{"serial": serial, "photos": len(payload.Photos)})
}
