package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/tvworks/repairdesk/internal/domain"
	"github.com/tvworks/repairdesk/internal/webserver"
	"github.com/tvworks/repairdesk/pkg/common"
)

type repairPayload struct {
	Serial      string             `json:"serial"`
	StartAt     string             `json:"start_at"`
	EndAt       string             `json:"end_at"`
	Technician  string             `json:"technician"`
	FailureCode string             `json:"failure_code"`
	Actions     []string           `json:"actions"`
	Disposition string             `json:"disposition"`
	Notes       string             `json:"notes"`
	Photos      []domain.PhotoItem `json:"photos"`
}

func registerRepairRoutes() {
	webserver.ApiGET("/repairs", listRepairs)
	webserver.ApiPOST("/repairs", createRepair)
}

func listRepairs(c echo.Context) error {
	page, pageSize := parsePagination(c)
	repairs := deps.Records.Repairs()
	lo, hi := pageBounds(len(repairs), page, pageSize)
	return paged(c, repairs[lo:hi], int64(len(repairs)), page, pageSize)
}

func createRepair(c echo.Context) error {
	var payload repairPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse repair", err.Error())
	}

	payload.Serial = strings.TrimSpace(payload.Serial)
	if payload.Serial == "" {
		return fail(c, http.StatusBadRequest, "MISSING_SERIAL", "Serial is required", nil)
	}
	if !contains(domain.Dispositions, payload.Disposition) {
		return fail(c, http.StatusBadRequest, "INVALID_DISPOSITION",
			"Disposition must be one of "+strings.Join(domain.Dispositions, "/"), nil)
	}
	if strings.TrimSpace(payload.FailureCode) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FAILURE_CODE", "Failure code is required", nil)
	}

	startAt := time.Now()
	if payload.StartAt != "" {
		t, err := dateparse.ParseLocal(payload.StartAt)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_START", "Unable to parse start_at", err.Error())
		}
		startAt = t
	}
	var endAt *time.Time
	if payload.EndAt != "" {
		t, err := dateparse.ParseLocal(payload.EndAt)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_END", "Unable to parse end_at", err.Error())
		}
		if t.Before(startAt) {
			return fail(c, http.StatusBadRequest, "INVALID_END", "end_at must not precede start_at", nil)
		}
		endAt = &t
	}

	refs, err := storePhotos(payload.Photos)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PHOTO", "Photo content is not valid base64", err.Error())
	}

	r := domain.Repair{
		ID:          common.UUIDint64(),
		Serial:      payload.Serial,
		StartAt:     startAt,
		EndAt:       endAt,
		Technician:  payload.Technician,
		FailureCode: payload.FailureCode,
		Actions:     domain.DedupeActions(payload.Actions),
		Disposition: payload.Disposition,
		Notes:       payload.Notes,
		Photos:      refs,
	}
	deps.Records.AppendRepair(r)
	return ok(c, r)
}
