package domain

import "time"

// Repair outcome classifications.
const (
	DispositionRepaired = "Repaired"
	DispositionScrap    = "Scrap"
	DispositionNTF      = "NTF"
	DispositionBER      = "BER"
)

var Dispositions = []string{
	DispositionRepaired, DispositionScrap, DispositionNTF, DispositionBER,
}

// Baseline failure codes. Technicians may enter a custom code, which is
// stored the same way as an enumerated one.
var FailureCodes = []string{
	"NO_POWER", "NO_BACKLIGHT", "NO_IMAGE", "LINES", "AUDIO_FAIL",
	"HDMI_FAIL", "TCON_FAIL", "PSU_FAIL", "PANEL_CRACK", "SOFTWARE",
}

// Baseline repair actions.
var RepairActions = []string{
	"REPLACE_PSU", "REPLACE_MAINBOARD", "REPLACE_TCON", "RESEAT_FFC",
	"REFLOW", "FIRMWARE_UPDATE", "LVDS_CABLE", "BACKLIGHT_REPAIR",
	"CAP_REPLACE", "CLEAN",
}

// Repair records diagnostic/repair work performed against a serial.
// The serial links to zero or more intakes with the same value, with no
// foreign-key enforcement. Append-only like Intake.
type Repair struct {
	ID          int64      `json:"id,string" form:"id"`
	Serial      string     `json:"serial" form:"serial"`
	StartAt     time.Time  `json:"start_at" form:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty" form:"end_at"`
	Technician  string     `json:"technician" form:"technician"`
	FailureCode string     `json:"failure_code" form:"failure_code"`
	Actions     []string   `json:"actions"`
	Disposition string     `json:"disposition" form:"disposition"`
	Notes       string     `json:"notes" form:"notes"`
	Photos      []PhotoRef `json:"photos"`
}

// AddAction appends an action keeping set semantics over insertion
// order: adding a value already present is a no-op.
func (r *Repair) AddAction(action string) {
	for _, a := range r.Actions {
		if a == action {
			return
		}
	}
	r.Actions = append(r.Actions, action)
}

// RemoveAction removes exactly one matching entry.
func (r *Repair) RemoveAction(action string) {
	for i, a := range r.Actions {
		if a == action {
			r.Actions = append(r.Actions[:i], r.Actions[i+1:]...)
			return
		}
	}
}

// DedupeActions collapses duplicates preserving first occurrence. Used
// when actions arrive as a raw list from a form payload.
func DedupeActions(actions []string) []string {
	out := make([]string, 0, len(actions))
	seen := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
