package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvworks/repairdesk/internal/domain"
)

func TestHeadersUnionFirstSeen(t *testing.T) {
	rows := []Row{
		{{Key: "a", Value: "1"}},
		{{Key: "b", Value: "2"}, {Key: "a", Value: "3"}},
	}
	require.Equal(t, []string{"a", "b"}, Headers(rows))
}

func TestWriteCSVQuotesEveryValue(t *testing.T) {
	rows := []Row{
		{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		{{Key: "a", Value: "3"}},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "a,b", lines[0])
	require.Equal(t, `"1","2"`, lines[1])
	require.Equal(t, `"3",""`, lines[2])
}

func TestWriteCSVEscapesEmbeddedQuotes(t *testing.T) {
	rows := []Row{
		{{Key: "notes", Value: `cracked "screen", 55in`}},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))
	require.Contains(t, sb.String(), `"cracked ""screen"", 55in"`)
}

func TestFlattenIntakeFieldOrder(t *testing.T) {
	in := domain.Intake{
		ID:        42,
		Serial:    "TV-1",
		SizeIn:    55,
		CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	row := FlattenIntake(in)

	require.Equal(t, Field{Key: "type", Value: "intake"}, row[0])
	require.Equal(t, Field{Key: "id", Value: "42"}, row[1])
	require.Equal(t, Field{Key: "serial", Value: "TV-1"}, row[2])
	require.Equal(t, Field{Key: "created_at", Value: "2024-05-01 09:00:00"}, row[len(row)-1])

	// every checklist item gets its own column
	for _, name := range domain.ChecklistFields {
		_, ok := row.get(name)
		require.True(t, ok, name)
	}
}

func TestFlattenRepairOpenEnd(t *testing.T) {
	r := domain.Repair{
		ID:      7,
		Serial:  "TV-1",
		StartAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Actions: []string{"REFLOW", "REPLACE_PSU"},
	}
	row := FlattenRepair(r)

	endAt, ok := row.get("end_at")
	require.True(t, ok)
	require.Equal(t, "", endAt)

	actions, _ := row.get("actions")
	require.Equal(t, "REFLOW;REPLACE_PSU", actions)
}

func TestFilterEvents(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []domain.HistoryEvent{
		{Kind: domain.EventIntake, At: base},
		{Kind: domain.EventRepair, At: base.AddDate(0, 0, 5)},
		{Kind: domain.EventRepair, At: base.AddDate(0, 0, 10)},
	}

	got := FilterEvents(events, base.AddDate(0, 0, 1), base.AddDate(0, 0, 7))
	require.Len(t, got, 1)
	require.Equal(t, base.AddDate(0, 0, 5), got[0].At)

	// zero bounds are open on that side
	require.Len(t, FilterEvents(events, time.Time{}, base.AddDate(0, 0, 7)), 2)
	require.Len(t, FilterEvents(events, time.Time{}, time.Time{}), 3)
}
