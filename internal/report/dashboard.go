package report

import (
	"math"
	"sort"
	"time"

	"github.com/tvworks/repairdesk/internal/domain"
)

const (
	rollingWindow = 30 * 24 * time.Hour
	paretoTopN    = 6
)

// DayCount is one bucket of the 7-day throughput histogram.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CodeCount is one ranked failure-code entry of the Pareto view.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Dashboard carries every KPI shown on the throughput dashboard.
// Recomputed from the full collections on each request.
type Dashboard struct {
	ProcessedToday   int         `json:"processed_today"`
	Throughput7d     []DayCount  `json:"throughput_7d"`
	YieldPct         int         `json:"yield_pct"`
	OpenHolds        int         `json:"open_holds"`
	RepeatRepairs30d int         `json:"repeat_repairs_30d"`
	Pareto           []CodeCount `json:"pareto"`
}

// BuildDashboard derives all KPIs at the given reference time. Calendar
// buckets use now's location; yield, repeat and Pareto use a rolling
// 30x24h window ending at now.
func BuildDashboard(intakes []domain.Intake, repairs []domain.Repair, now time.Time) Dashboard {
	return Dashboard{
		ProcessedToday:   processedToday(intakes, now),
		Throughput7d:     Throughput7d(repairs, now),
		YieldPct:         YieldPct(repairs, now),
		OpenHolds:        openHolds(intakes),
		RepeatRepairs30d: repeatRepairs(repairs, now),
		Pareto:           Pareto(repairs, now),
	}
}

func localDayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func processedToday(intakes []domain.Intake, now time.Time) int {
	loc := now.Location()
	today := localDayStart(now, loc)
	n := 0
	for _, in := range intakes {
		if localDayStart(in.CreatedAt, loc).Equal(today) {
			n++
		}
	}
	return n
}

// Throughput7d buckets repairs by local calendar day over the 7 days
// ending today, oldest first.
func Throughput7d(repairs []domain.Repair, now time.Time) []DayCount {
	loc := now.Location()
	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		start := localDayStart(now, loc).AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		n := 0
		for _, r := range repairs {
			at := r.StartAt.In(loc)
			if !at.Before(start) && at.Before(end) {
				n++
			}
		}
		out = append(out, DayCount{Date: start.Format("2006-01-02"), Count: n})
	}
	return out
}

// YieldPct is repaired/(repaired+scrapped) over the rolling window, as
// a percentage rounded to nearest; 0 when the denominator is 0.
func YieldPct(repairs []domain.Repair, now time.Time) int {
	cutoff := now.Add(-rollingWindow)
	repaired, scrapped := 0, 0
	for _, r := range repairs {
		if r.StartAt.Before(cutoff) || r.StartAt.After(now) {
			continue
		}
		switch r.Disposition {
		case domain.DispositionRepaired:
			repaired++
		case domain.DispositionScrap:
			scrapped++
		}
	}
	if repaired+scrapped == 0 {
		return 0
	}
	return int(math.Round(100 * float64(repaired) / float64(repaired+scrapped)))
}

func openHolds(intakes []domain.Intake) int {
	n := 0
	for _, in := range intakes {
		if in.OnHold() {
			n++
		}
	}
	return n
}

func repeatRepairs(repairs []domain.Repair, now time.Time) int {
	cutoff := now.Add(-rollingWindow)
	perSerial := make(map[string]int)
	for _, r := range repairs {
		if r.StartAt.Before(cutoff) || r.StartAt.After(now) {
			continue
		}
		perSerial[r.Serial]++
	}
	n := 0
	for _, count := range perSerial {
		if count > 1 {
			n++
		}
	}
	return n
}

// Pareto ranks failure codes by frequency over the rolling window,
// descending, top 6. Ties keep first-encounter order (stable sort).
func Pareto(repairs []domain.Repair, now time.Time) []CodeCount {
	cutoff := now.Add(-rollingWindow)
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range repairs {
		if r.StartAt.Before(cutoff) || r.StartAt.After(now) {
			continue
		}
		if _, seen := counts[r.FailureCode]; !seen {
			order = append(order, r.FailureCode)
		}
		counts[r.FailureCode]++
	}

	out := make([]CodeCount, 0, len(order))
	for _, code := range order {
		out = append(out, CodeCount{Code: code, Count: counts[code]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > paretoTopN {
		out = out[:paretoTopN]
	}
	return out
}
