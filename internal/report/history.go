package report

import (
	"sort"

	"github.com/tvworks/repairdesk/internal/domain"
)

// MergeHistory produces a serial's chronologically merged intake and
// repair events. An empty serial yields empty results, not an error.
func MergeHistory(serial string, intakes []domain.Intake, repairs []domain.Repair) []domain.HistoryEvent {
	events := make([]domain.HistoryEvent, 0)
	if serial == "" {
		return events
	}
	for i := range intakes {
		if intakes[i].Serial != serial {
			continue
		}
		in := intakes[i]
		events = append(events, domain.HistoryEvent{
			Kind:   domain.EventIntake,
			At:     in.CreatedAt,
			Intake: &in,
		})
	}
	for i := range repairs {
		if repairs[i].Serial != serial {
			continue
		}
		r := repairs[i]
		events = append(events, domain.HistoryEvent{
			Kind:   domain.EventRepair,
			At:     r.StartAt,
			Repair: &r,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return events
}

// Combine pairs the serial's most recently created intake with all of
// its repairs sorted ascending by start time.
func Combine(serial string, intakes []domain.Intake, repairs []domain.Repair) domain.CombinedRecord {
	combined := domain.CombinedRecord{Serial: serial, Repairs: []domain.Repair{}}
	if serial == "" {
		return combined
	}
	for i := range intakes {
		if intakes[i].Serial != serial {
			continue
		}
		if combined.Intake == nil || !intakes[i].CreatedAt.Before(combined.Intake.CreatedAt) {
			in := intakes[i]
			combined.Intake = &in
		}
	}
	for _, r := range repairs {
		if r.Serial == serial {
			combined.Repairs = append(combined.Repairs, r)
		}
	}
	sort.SliceStable(combined.Repairs, func(i, j int) bool {
		return combined.Repairs[i].StartAt.Before(combined.Repairs[j].StartAt)
	})
	return combined
}
