package domain

import "time"

// Event kinds in a serial's merged history.
const (
	EventIntake = "intake"
	EventRepair = "repair"
)

// HistoryEvent is one entry in a serial's chronologically merged
// intake/repair timeline. At is the record's own timestamp: createdAt
// for intakes, startAt for repairs.
type HistoryEvent struct {
	Kind   string    `json:"kind"`
	At     time.Time `json:"at"`
	Intake *Intake   `json:"intake,omitempty"`
	Repair *Repair   `json:"repair,omitempty"`
}

// CombinedRecord pairs a serial's most recently created intake with all
// of its repairs sorted ascending by start time. Derived on read, never
// persisted.
type CombinedRecord struct {
	Serial  string   `json:"serial"`
	Intake  *Intake  `json:"intake,omitempty"`
	Repairs []Repair `json:"repairs"`
}
