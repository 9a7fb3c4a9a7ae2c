package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvworks/repairdesk/internal/domain"
)

var testNow = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func repairAt(serial, code, disposition string, at time.Time) domain.Repair {
	return domain.Repair{Serial: serial, FailureCode: code, Disposition: disposition, StartAt: at}
}

func TestThroughput7dCoversAllRepairs(t *testing.T) {
	repairs := []domain.Repair{
		repairAt("A", "PSU", domain.DispositionRepaired, testNow),
		repairAt("B", "PSU", domain.DispositionRepaired, testNow.AddDate(0, 0, -3)),
		repairAt("C", "PSU", domain.DispositionRepaired, testNow.AddDate(0, 0, -6)),
		// outside the window, must not be counted anywhere
		repairAt("D", "PSU", domain.DispositionRepaired, testNow.AddDate(0, 0, -7)),
	}

	hist := Throughput7d(repairs, testNow)
	require.Len(t, hist, 7)

	total := 0
	for _, day := range hist {
		total += day.Count
	}
	require.Equal(t, 3, total)

	// oldest bucket first, today last
	require.Equal(t, "2024-05-09", hist[0].Date)
	require.Equal(t, "2024-05-15", hist[6].Date)
	require.Equal(t, 1, hist[6].Count)
}

func TestYieldPct(t *testing.T) {
	repairs := []domain.Repair{
		repairAt("A", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		repairAt("B", "PSU", domain.DispositionRepaired, testNow.Add(-2*time.Hour)),
		repairAt("C", "PSU", domain.DispositionRepaired, testNow.Add(-3*time.Hour)),
		repairAt("D", "PSU", domain.DispositionScrap, testNow.Add(-4*time.Hour)),
		// NTF and BER stay out of the denominator
		repairAt("E", "PSU", domain.DispositionNTF, testNow.Add(-5*time.Hour)),
		repairAt("F", "PSU", domain.DispositionBER, testNow.Add(-6*time.Hour)),
	}
	require.Equal(t, 75, YieldPct(repairs, testNow))
}

func TestYieldPctZeroDenominator(t *testing.T) {
	require.Equal(t, 0, YieldPct(nil, testNow))

	repairs := []domain.Repair{
		repairAt("A", "PSU", domain.DispositionNTF, testNow.Add(-time.Hour)),
	}
	require.Equal(t, 0, YieldPct(repairs, testNow))
}

func TestYieldPctIgnoresStaleRepairs(t *testing.T) {
	repairs := []domain.Repair{
		repairAt("A", "PSU", domain.DispositionScrap, testNow.AddDate(0, 0, -31)),
		repairAt("B", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
	}
	require.Equal(t, 100, YieldPct(repairs, testNow))
}

func TestParetoTiesKeepFirstEncounterOrder(t *testing.T) {
	repairs := []domain.Repair{
		repairAt("1", "BACKLIGHT", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		repairAt("2", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		repairAt("3", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		repairAt("4", "TCON", domain.DispositionRepaired, testNow.Add(-time.Hour)),
	}

	ranked := Pareto(repairs, testNow)
	require.Len(t, ranked, 3)
	require.Equal(t, CodeCount{Code: "PSU", Count: 2}, ranked[0])
	// BACKLIGHT and TCON tie at 1; BACKLIGHT appeared first
	require.Equal(t, CodeCount{Code: "BACKLIGHT", Count: 1}, ranked[1])
	require.Equal(t, CodeCount{Code: "TCON", Count: 1}, ranked[2])
}

func TestParetoCapsAtSix(t *testing.T) {
	codes := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var repairs []domain.Repair
	for _, c := range codes {
		repairs = append(repairs, repairAt("s-"+c, c, domain.DispositionRepaired, testNow.Add(-time.Hour)))
	}
	require.Len(t, Pareto(repairs, testNow), 6)
}

func TestOpenHoldsCountsSafetyFieldsOnly(t *testing.T) {
	intakes := []domain.Intake{
		{Serial: "A", Checklist: domain.Checklist{SafetyOK: domain.StatusFail}},
		{Serial: "B", Checklist: domain.Checklist{CosmeticScreen: domain.StatusFail}},
		{Serial: "C", Checklist: domain.Checklist{PowerOn: domain.StatusFail, SafetyOK: domain.StatusPass}},
	}

	d := BuildDashboard(intakes, nil, testNow)
	require.Equal(t, 2, d.OpenHolds)
}

func TestProcessedToday(t *testing.T) {
	intakes := []domain.Intake{
		{Serial: "A", CreatedAt: testNow.Add(-time.Hour)},
		{Serial: "B", CreatedAt: testNow.Add(-14 * time.Hour)}, // 00:30 same day
		{Serial: "C", CreatedAt: testNow.AddDate(0, 0, -1)},
	}
	d := BuildDashboard(intakes, nil, testNow)
	require.Equal(t, 2, d.ProcessedToday)
}

func TestRepeatRepairs(t *testing.T) {
	repairs := []domain.Repair{
		repairAt("A", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		repairAt("A", "PSU", domain.DispositionRepaired, testNow.Add(-2*time.Hour)),
		repairAt("B", "PSU", domain.DispositionRepaired, testNow.Add(-time.Hour)),
		// second touch outside the window does not make B a repeat
		repairAt("B", "PSU", domain.DispositionRepaired, testNow.AddDate(0, 0, -31)),
	}
	d := BuildDashboard(nil, repairs, testNow)
	require.Equal(t, 1, d.RepeatRepairs30d)
}
