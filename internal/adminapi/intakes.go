package adminapi

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/domain"
	"github.com/tvworks/repairdesk/internal/webserver"
	"github.com/tvworks/repairdesk/pkg/common"
)

type intakePayload struct {
	Serial       string             `json:"serial"`
	Family       string             `json:"family"`
	Model        string             `json:"model"`
	SizeIn       float64            `json:"size_in"`
	Mac          string             `json:"mac"`
	ReturnSource string             `json:"return_source"`
	ReturnReason string             `json:"return_reason"`
	ConditionIn  string             `json:"condition_in"`
	Notes        string             `json:"notes"`
	Checklist    domain.Checklist   `json:"checklist"`
	Photos       []domain.PhotoItem `json:"photos"`
}

func registerIntakeRoutes() {
	webserver.ApiGET("/intakes", listIntakes)
	webserver.ApiPOST("/intakes", createIntake)
}

func listIntakes(c echo.Context) error {
	page, pageSize := parsePagination(c)
	intakes := deps.Records.Intakes()
	lo, hi := pageBounds(len(intakes), page, pageSize)
	return paged(c, intakes[lo:hi], int64(len(intakes)), page, pageSize)
}

func createIntake(c echo.Context) error {
	var payload intakePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse intake", err.Error())
	}

	payload.Serial = strings.TrimSpace(payload.Serial)
	if payload.Serial == "" {
		return fail(c, http.StatusBadRequest, "MISSING_SERIAL", "Serial is required", nil)
	}
	if !deps.Lookups.ValidSize(payload.SizeIn) {
		return fail(c, http.StatusBadRequest, "INVALID_SIZE", "Size must be one of the configured sizes", nil)
	}
	if !contains(domain.ConditionGrades, payload.ConditionIn) {
		return fail(c, http.StatusBadRequest, "INVALID_CONDITION", "Unknown condition grade", nil)
	}
	if msg := validateChecklist(&payload.Checklist); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_CHECKLIST", msg, nil)
	}

	refs, err := storePhotos(payload.Photos)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PHOTO", "Photo content is not valid base64", err.Error())
	}

	in := domain.Intake{
		ID:           common.UUIDint64(),
		Serial:       payload.Serial,
		Family:       payload.Family,
		Model:        payload.Model,
		SizeIn:       payload.SizeIn,
		Mac:          payload.Mac,
		ReturnSource: payload.ReturnSource,
		ReturnReason: payload.ReturnReason,
		ConditionIn:  payload.ConditionIn,
		Notes:        payload.Notes,
		Checklist:    payload.Checklist,
		Photos:       refs,
		CreatedAt:    time.Now(),
	}
	deps.Records.AppendIntake(in)
	return ok(c, in)
}

// validateChecklist normalizes empty items to Not Tested and rejects
// unknown statuses. moisture_check only accepts Pass or Fail.
func validateChecklist(cl *domain.Checklist) string {
	normalize := func(v *string) bool {
		if *v == "" {
			*v = domain.StatusNotTested
			return true
		}
		return contains(domain.ChecklistStatuses, *v)
	}
	items := []*string{
		&cl.SafetyOK, &cl.LabelIntact, &cl.PortsOK, &cl.PowerOn, &cl.ESDStrap,
		&cl.CosmeticScreen, &cl.CosmeticShell, &cl.StandIncluded,
		&cl.RemoteIncluded, &cl.CablesIncluded, &cl.ScrewsPresent,
		&cl.BoardSerialMatch,
	}
	for _, item := range items {
		if !normalize(item) {
			return "Checklist items must be one of " + strings.Join(domain.ChecklistStatuses, "/")
		}
	}
	if cl.MoistureCheck == "" {
		cl.MoistureCheck = domain.StatusPass
	}
	if cl.MoistureCheck != domain.StatusPass && cl.MoistureCheck != domain.StatusFail {
		return "moisture_check must be Pass or Fail"
	}
	return ""
}

func storePhotos(items []domain.PhotoItem) ([]domain.PhotoRef, error) {
	refs := make([]domain.PhotoRef, 0, len(items))
	for _, item := range items {
		data, err := base64.StdEncoding.DecodeString(item.Content)
		if err != nil {
			return nil, err
		}
		ref, err := deps.Blobs.Put(item.Name, data)
		if err != nil {
			// photo persistence is best-effort like everything else;
			// the record is still created, without this reference
			zap.L().Warn("photo store failed", zap.String("name", item.Name), zap.Error(err))
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
