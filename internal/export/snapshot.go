package export

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/tvworks/repairdesk/internal/domain"
)

// Fixed-schema snapshot rows for whole-collection CSV dumps. Unlike the
// per-serial export, the snapshot format is not contractual, so gocsv
// handles it from struct tags.

type IntakeSnapshot struct {
	ID           int64   `csv:"id"`
	Serial       string  `csv:"serial"`
	Family       string  `csv:"family"`
	Model        string  `csv:"model"`
	SizeIn       float64 `csv:"size_in"`
	Mac          string  `csv:"mac"`
	ReturnSource string  `csv:"return_source"`
	ReturnReason string  `csv:"return_reason"`
	ConditionIn  string  `csv:"condition_in"`
	OnHold       bool    `csv:"on_hold"`
	Photos       int     `csv:"photos"`
	CreatedAt    string  `csv:"created_at"`
}

type RepairSnapshot struct {
	ID          int64  `csv:"id"`
	Serial      string `csv:"serial"`
	StartAt     string `csv:"start_at"`
	EndAt       string `csv:"end_at"`
	Technician  string `csv:"technician"`
	FailureCode string `csv:"failure_code"`
	Actions     string `csv:"actions"`
	Disposition string `csv:"disposition"`
	Photos      int    `csv:"photos"`
}

// SnapshotIntakesCSV dumps the full intake collection.
func SnapshotIntakesCSV(w io.Writer, intakes []domain.Intake) error {
	rows := make([]IntakeSnapshot, 0, len(intakes))
	for _, in := range intakes {
		rows = append(rows, IntakeSnapshot{
			ID:           in.ID,
			Serial:       in.Serial,
			Family:       in.Family,
			Model:        in.Model,
			SizeIn:       in.SizeIn,
			Mac:          in.Mac,
			ReturnSource: in.ReturnSource,
			ReturnReason: in.ReturnReason,
			ConditionIn:  in.ConditionIn,
			OnHold:       in.OnHold(),
			Photos:       len(in.Photos),
			CreatedAt:    in.CreatedAt.Format(timeLayout),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "snapshot intakes")
	}
	return nil
}

// SnapshotRepairsCSV dumps the full repair collection.
func SnapshotRepairsCSV(w io.Writer, repairs []domain.Repair) error {
	rows := make([]RepairSnapshot, 0, len(repairs))
	for _, r := range repairs {
		endAt := ""
		if r.EndAt != nil {
			endAt = r.EndAt.Format(timeLayout)
		}
		rows = append(rows, RepairSnapshot{
			ID:          r.ID,
			Serial:      r.Serial,
			StartAt:     r.StartAt.Format(timeLayout),
			EndAt:       endAt,
			Technician:  r.Technician,
			FailureCode: r.FailureCode,
			Actions:     strings.Join(r.Actions, ";"),
			Disposition: r.Disposition,
			Photos:      len(r.Photos),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(err, "snapshot repairs")
	}
	return nil
}
