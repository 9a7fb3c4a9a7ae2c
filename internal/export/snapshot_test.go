package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvworks/repairdesk/internal/domain"
	"github.com/tvworks/repairdesk/internal/report"
)

func TestSnapshotIntakesCSV(t *testing.T) {
	intakes := []domain.Intake{
		{
			ID: 1, Serial: "TV-1", Model: "X55", SizeIn: 55,
			Checklist: domain.Checklist{SafetyOK: domain.StatusFail},
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	var sb strings.Builder
	require.NoError(t, SnapshotIntakesCSV(&sb, intakes))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "serial")
	require.Contains(t, lines[0], "on_hold")
	require.Contains(t, lines[1], "TV-1")
	require.Contains(t, lines[1], "true")
}

func TestSnapshotRepairsCSV(t *testing.T) {
	repairs := []domain.Repair{
		{
			ID: 2, Serial: "TV-1", StartAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			Actions: []string{"REFLOW", "CLEAN"}, Disposition: domain.DispositionRepaired,
		},
	}

	var sb strings.Builder
	require.NoError(t, SnapshotRepairsCSV(&sb, repairs))
	require.Contains(t, sb.String(), "REFLOW;CLEAN")
	require.Contains(t, sb.String(), domain.DispositionRepaired)
}

func TestWriteDashboardXLSX(t *testing.T) {
	dash := report.Dashboard{
		ProcessedToday: 3,
		YieldPct:       75,
		Throughput7d:   []report.DayCount{{Date: "2024-05-01", Count: 2}},
		Pareto:         []report.CodeCount{{Code: "PSU", Count: 5}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDashboardXLSX(&buf, dash))
	// xlsx files are zip archives
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
