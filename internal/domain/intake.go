package domain

import "time"

// Checklist item statuses. MoistureCheck only accepts Pass or Fail,
// every other item accepts all four.
const (
	StatusPass      = "Pass"
	StatusFail      = "Fail"
	StatusNA        = "N/A"
	StatusNotTested = "Not Tested"
)

var ChecklistStatuses = []string{StatusPass, StatusFail, StatusNA, StatusNotTested}

// Device condition grades recorded at check-in.
var ConditionGrades = []string{"Like New", "Good", "Fair", "Poor", "Damaged"}

// Checklist captures the 13 intake inspection items.
type Checklist struct {
	SafetyOK         string `json:"safety_ok"`
	LabelIntact      string `json:"label_intact"`
	PortsOK          string `json:"ports_ok"`
	PowerOn          string `json:"power_on"`
	ESDStrap         string `json:"esd_strap"`
	CosmeticScreen   string `json:"cosmetic_screen"`
	CosmeticShell    string `json:"cosmetic_shell"`
	StandIncluded    string `json:"stand_included"`
	RemoteIncluded   string `json:"remote_included"`
	CablesIncluded   string `json:"cables_included"`
	ScrewsPresent    string `json:"screws_present"`
	BoardSerialMatch string `json:"board_serial_match"`
	MoistureCheck    string `json:"moisture_check"`
}

// ChecklistFields enumerates item names in form order.
var ChecklistFields = []string{
	"safety_ok", "label_intact", "ports_ok", "power_on", "esd_strap",
	"cosmetic_screen", "cosmetic_shell", "stand_included", "remote_included",
	"cables_included", "screws_present", "board_serial_match", "moisture_check",
}

// Fields returns item values keyed by name, in ChecklistFields order.
func (c Checklist) Fields() map[string]string {
	return map[string]string{
		"safety_ok":          c.SafetyOK,
		"label_intact":       c.LabelIntact,
		"ports_ok":           c.PortsOK,
		"power_on":           c.PowerOn,
		"esd_strap":          c.ESDStrap,
		"cosmetic_screen":    c.CosmeticScreen,
		"cosmetic_shell":     c.CosmeticShell,
		"stand_included":     c.StandIncluded,
		"remote_included":    c.RemoteIncluded,
		"cables_included":    c.CablesIncluded,
		"screws_present":     c.ScrewsPresent,
		"board_serial_match": c.BoardSerialMatch,
		"moisture_check":     c.MoistureCheck,
	}
}

// holdFields are the safety/label/port/power/ESD items whose failure
// flags an intake for review.
var holdFields = []func(Checklist) string{
	func(c Checklist) string { return c.SafetyOK },
	func(c Checklist) string { return c.LabelIntact },
	func(c Checklist) string { return c.PortsOK },
	func(c Checklist) string { return c.PowerOn },
	func(c Checklist) string { return c.ESDStrap },
}

// OnHold reports whether any safety-critical item failed. Derived on
// read, never persisted.
func (c Checklist) OnHold() bool {
	for _, f := range holdFields {
		if f(c) == StatusFail {
			return true
		}
	}
	return false
}

// Intake records a device's condition and accessories at check-in.
// Intakes are append-only: no update or delete path exists.
type Intake struct {
	ID           int64      `json:"id,string" form:"id"`
	Serial       string     `json:"serial" form:"serial"`
	Family       string     `json:"family" form:"family"`
	Model        string     `json:"model" form:"model"`
	SizeIn       float64    `json:"size_in" form:"size_in"`
	Mac          string     `json:"mac" form:"mac"`
	ReturnSource string     `json:"return_source" form:"return_source"`
	ReturnReason string     `json:"return_reason" form:"return_reason"`
	ConditionIn  string     `json:"condition_in" form:"condition_in"`
	Notes        string     `json:"notes" form:"notes"`
	Checklist    Checklist  `json:"checklist" form:"checklist"`
	Photos       []PhotoRef `json:"photos"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (i Intake) OnHold() bool {
	return i.Checklist.OnHold()
}
