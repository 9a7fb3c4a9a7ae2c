package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvworks/repairdesk/internal/domain"
)

func TestMergeHistoryOrdersByTime(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	intakes := []domain.Intake{
		{ID: 1, Serial: "TV-1", CreatedAt: base},
		{ID: 2, Serial: "TV-2", CreatedAt: base.Add(time.Hour)},
	}
	repairs := []domain.Repair{
		{ID: 3, Serial: "TV-1", StartAt: base.Add(2 * time.Hour)},
		{ID: 4, Serial: "TV-1", StartAt: base.Add(30 * time.Minute)},
	}

	events := MergeHistory("TV-1", intakes, repairs)
	require.Len(t, events, 3)
	require.Equal(t, domain.EventIntake, events[0].Kind)
	require.Equal(t, domain.EventRepair, events[1].Kind)
	require.Equal(t, int64(4), events[1].Repair.ID)
	require.Equal(t, int64(3), events[2].Repair.ID)
}

func TestMergeHistoryEmptySerial(t *testing.T) {
	intakes := []domain.Intake{{ID: 1, Serial: "", CreatedAt: time.Now()}}
	events := MergeHistory("", intakes, nil)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestCombinePicksLatestIntake(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	intakes := []domain.Intake{
		{ID: 1, Serial: "TV-1", CreatedAt: base},
		{ID: 2, Serial: "TV-1", CreatedAt: base.Add(time.Hour)},
	}
	repairs := []domain.Repair{
		{ID: 4, Serial: "TV-1", StartAt: base.Add(3 * time.Hour)},
		{ID: 3, Serial: "TV-1", StartAt: base.Add(2 * time.Hour)},
		{ID: 5, Serial: "TV-9", StartAt: base.Add(2 * time.Hour)},
	}

	combined := Combine("TV-1", intakes, repairs)
	require.Equal(t, "TV-1", combined.Serial)
	require.NotNil(t, combined.Intake)
	require.Equal(t, int64(2), combined.Intake.ID)

	require.Len(t, combined.Repairs, 2)
	require.Equal(t, int64(3), combined.Repairs[0].ID)
	require.Equal(t, int64(4), combined.Repairs[1].ID)
}

func TestCombineUnknownSerial(t *testing.T) {
	combined := Combine("nope", nil, nil)
	require.Nil(t, combined.Intake)
	require.Empty(t, combined.Repairs)
}
