package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/tvworks/repairdesk/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

func photoNames(refs []domain.PhotoRef) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return strings.Join(names, ";")
}

// FlattenIntake renders an intake as an ordered flat row: the scalar
// fields first, then the 13 checklist items under their own keys.
func FlattenIntake(in domain.Intake) Row {
	row := Row{
		{Key: "type", Value: "intake"},
		{Key: "id", Value: strconv.FormatInt(in.ID, 10)},
		{Key: "serial", Value: in.Serial},
		{Key: "family", Value: in.Family},
		{Key: "model", Value: in.Model},
		{Key: "size_in", Value: strconv.FormatFloat(in.SizeIn, 'f', -1, 64)},
		{Key: "mac", Value: in.Mac},
		{Key: "return_source", Value: in.ReturnSource},
		{Key: "return_reason", Value: in.ReturnReason},
		{Key: "condition_in", Value: in.ConditionIn},
		{Key: "notes", Value: in.Notes},
	}
	fields := in.Checklist.Fields()
	for _, name := range domain.ChecklistFields {
		row = append(row, Field{Key: name, Value: fields[name]})
	}
	row = append(row,
		Field{Key: "photos", Value: photoNames(in.Photos)},
		Field{Key: "created_at", Value: in.CreatedAt.Format(timeLayout)},
	)
	return row
}

// FlattenRepair renders a repair as an ordered flat row.
func FlattenRepair(r domain.Repair) Row {
	endAt := ""
	if r.EndAt != nil {
		endAt = r.EndAt.Format(timeLayout)
	}
	return Row{
		{Key: "type", Value: "repair"},
		{Key: "id", Value: strconv.FormatInt(r.ID, 10)},
		{Key: "serial", Value: r.Serial},
		{Key: "start_at", Value: r.StartAt.Format(timeLayout)},
		{Key: "end_at", Value: endAt},
		{Key: "technician", Value: r.Technician},
		{Key: "failure_code", Value: r.FailureCode},
		{Key: "actions", Value: strings.Join(r.Actions, ";")},
		{Key: "disposition", Value: r.Disposition},
		{Key: "notes", Value: r.Notes},
		{Key: "photos", Value: photoNames(r.Photos)},
	}
}

// FlattenHistory renders a merged event list as export rows, keeping
// the event order.
func FlattenHistory(events []domain.HistoryEvent) []Row {
	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case domain.EventIntake:
			rows = append(rows, FlattenIntake(*ev.Intake))
		case domain.EventRepair:
			rows = append(rows, FlattenRepair(*ev.Repair))
		}
	}
	return rows
}

// FilterEvents drops events outside [from, to]. Zero bounds are open.
func FilterEvents(events []domain.HistoryEvent, from, to time.Time) []domain.HistoryEvent {
	out := make([]domain.HistoryEvent, 0, len(events))
	for _, ev := range events {
		if !from.IsZero() && ev.At.Before(from) {
			continue
		}
		if !to.IsZero() && ev.At.After(to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
