package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionSetSemantics(t *testing.T) {
	var r Repair

	r.AddAction("RESEAT_FFC")
	r.AddAction("RESEAT_FFC")
	require.Equal(t, []string{"RESEAT_FFC"}, r.Actions)

	r.RemoveAction("RESEAT_FFC")
	require.Empty(t, r.Actions)
}

func TestActionInsertionOrderKept(t *testing.T) {
	var r Repair
	r.AddAction("REPLACE_PSU")
	r.AddAction("REFLOW")
	r.AddAction("REPLACE_PSU")
	r.AddAction("CLEAN")
	require.Equal(t, []string{"REPLACE_PSU", "REFLOW", "CLEAN"}, r.Actions)

	r.RemoveAction("REFLOW")
	require.Equal(t, []string{"REPLACE_PSU", "CLEAN"}, r.Actions)
}

func TestDedupeActions(t *testing.T) {
	got := DedupeActions([]string{"A", "B", "A", "C", "B"})
	require.Equal(t, []string{"A", "B", "C"}, got)
}

func TestChecklistHold(t *testing.T) {
	cl := Checklist{SafetyOK: StatusFail}
	require.True(t, cl.OnHold())

	// cosmetic failures never hold a unit
	cl = Checklist{CosmeticScreen: StatusFail}
	require.False(t, cl.OnHold())

	cl = Checklist{ESDStrap: StatusFail, SafetyOK: StatusPass}
	require.True(t, cl.OnHold())
}
