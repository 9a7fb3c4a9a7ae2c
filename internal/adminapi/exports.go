package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/export"
	"github.com/tvworks/repairdesk/internal/report"
	"github.com/tvworks/repairdesk/internal/webserver"
	"github.com/tvworks/repairdesk/pkg/common"
)

func registerExportRoutes() {
	webserver.ApiGET("/export/history.csv", exportHistoryCSV)
	webserver.ApiGET("/export/record.pdf", exportRecordPDF)
	webserver.ApiGET("/export/dashboard.xlsx", exportDashboardXLSX)
	webserver.ApiGET("/export/snapshot/:collection", exportSnapshotCSV)
}

// exportFailed implements the export error contract: log the detail,
// surface a generic failure.
func exportFailed(c echo.Context, err error) error {
	zap.L().Error("export failed", zap.Error(err))
	return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Export failed", nil)
}

func attachment(c echo.Context, contentType, filename string) {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
}

func parseTimeParam(c echo.Context, name string) (time.Time, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseLocal(v)
}

func exportHistoryCSV(c echo.Context) error {
	serial := strings.TrimSpace(c.QueryParam("serial"))
	from, err := parseTimeParam(c, "from")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FROM", "Unable to parse from", err.Error())
	}
	to, err := parseTimeParam(c, "to")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_TO", "Unable to parse to", err.Error())
	}

	events := report.MergeHistory(serial, deps.Records.Intakes(), deps.Records.Repairs())
	rows := export.FlattenHistory(export.FilterEvents(events, from, to))

	attachment(c, "text/csv", common.SafeFileName(serial)+"_history.csv")
	if err := export.WriteCSV(c.Response(), rows); err != nil {
		return exportFailed(c, err)
	}
	return nil
}

func exportRecordPDF(c echo.Context) error {
	serial := strings.TrimSpace(c.QueryParam("serial"))
	if serial == "" {
		return fail(c, http.StatusBadRequest, "MISSING_SERIAL", "Serial is required", nil)
	}
	combined := report.Combine(serial, deps.Records.Intakes(), deps.Records.Repairs())
	if combined.Intake == nil && len(combined.Repairs) == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No records for this serial", nil)
	}

	load := export.PhotoLoader(deps.Blobs.Get)
	name := common.SafeFileName(serial)

	if c.QueryParam("combined") == "1" {
		attachment(c, "application/pdf", name+"_combined.pdf")
		if err := export.WriteCombinedPDF(c.Response(), combined, load); err != nil {
			return exportFailed(c, err)
		}
		return nil
	}

	if combined.Intake == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No intake for this serial", nil)
	}
	attachment(c, "application/pdf", name+".pdf")
	err := export.WriteRecordPDF(c.Response(), "Intake "+serial,
		export.FlattenIntake(*combined.Intake), combined.Intake.Photos, load)
	if err != nil {
		return exportFailed(c, err)
	}
	return nil
}

func exportDashboardXLSX(c echo.Context) error {
	dash := report.BuildDashboard(deps.Records.Intakes(), deps.Records.Repairs(), time.Now())
	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "dashboard.xlsx")
	if err := export.WriteDashboardXLSX(c.Response(), dash); err != nil {
		return exportFailed(c, err)
	}
	return nil
}

func exportSnapshotCSV(c echo.Context) error {
	collection := c.Param("collection")
	attachment(c, "text/csv", collection+".csv")
	switch collection {
	case "intakes":
		if err := export.SnapshotIntakesCSV(c.Response(), deps.Records.Intakes()); err != nil {
			return exportFailed(c, err)
		}
	case "repairs":
		if err := export.SnapshotRepairsCSV(c.Response(), deps.Records.Repairs()); err != nil {
			return exportFailed(c, err)
		}
	default:
		return fail(c, http.StatusBadRequest, "INVALID_COLLECTION", "Unknown collection", nil)
	}
	return nil
}
