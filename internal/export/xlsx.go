package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/tvworks/repairdesk/internal/report"
)

// WriteDashboardXLSX renders the dashboard KPIs as a workbook: a
// summary sheet plus the 7-day histogram and Pareto tables.
func WriteDashboardXLSX(w io.Writer, dash report.Dashboard) error {
	xlsx := excelize.NewFile()

	xlsx.SetCellValue("Sheet1", "A1", "Metric")
	xlsx.SetCellValue("Sheet1", "B1", "Value")
	summary := []struct {
		name  string
		value interface{}
	}{
		{"Processed Today", dash.ProcessedToday},
		{"Repair Yield 30d (%)", dash.YieldPct},
		{"Open Holds", dash.OpenHolds},
		{"Repeat Repairs 30d", dash.RepeatRepairs30d},
	}
	for i, kpi := range summary {
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", i+2), kpi.name)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", i+2), kpi.value)
	}

	xlsx.NewSheet("Throughput")
	xlsx.SetCellValue("Throughput", "A1", "Date")
	xlsx.SetCellValue("Throughput", "B1", "Repairs")
	for i, day := range dash.Throughput7d {
		xlsx.SetCellValue("Throughput", fmt.Sprintf("A%d", i+2), day.Date)
		xlsx.SetCellValue("Throughput", fmt.Sprintf("B%d", i+2), day.Count)
	}

	xlsx.NewSheet("Pareto")
	xlsx.SetCellValue("Pareto", "A1", "Failure Code")
	xlsx.SetCellValue("Pareto", "B1", "Count")
	for i, cc := range dash.Pareto {
		xlsx.SetCellValue("Pareto", fmt.Sprintf("A%d", i+2), cc.Code)
		xlsx.SetCellValue("Pareto", fmt.Sprintf("B%d", i+2), cc.Count)
	}

	if err := xlsx.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}
