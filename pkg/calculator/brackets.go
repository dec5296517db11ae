package calculator

import (
	"time"

	"cac-monthly/pkg/models"
)

// Offsets carried by the kernel table; the CAC lookback always needs all 12,
// the display horizon only truncates report rows.
const kernelHorizon = 12

// MonthNames in calendar order. The kernel table carries exactly these keys.
var MonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthStart truncates t to the first day of its calendar month, midnight UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the three-letter calendar name ("Jan".."Dec") of t's
// month, the key used by the kernel table.
func MonthName(t time.Time) string {
	return t.Format("Jan")
}

// monthIndex counts whole months since year zero; differences between two
// indexes give the bracket offset directly.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// ComputeBrackets returns, for each offset in [0, horizon), the fraction of
// hires whose hire month lands exactly that many months after their
// application month. The denominator counts every hired record, including
// hires outside the window, so the fractions can sum to less than 1. Hires
// dated before their application month (data anomaly) land in no bracket but
// still dilute the denominator — retained behavior, not a bug.
func ComputeBrackets(records []models.ApplicationRecord, horizon int) []float64 {
	counts := make([]int, horizon)
	totalHires := 0
	for _, r := range records {
		if !r.HireDate.Valid {
			continue
		}
		totalHires++
		offset := monthIndex(r.HireDate.Time) - monthIndex(r.ApplicationDate)
		if offset >= 0 && offset < horizon {
			counts[offset]++
		}
	}
	out := make([]float64, horizon)
	if totalHires == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(totalHires)
	}
	return out
}

// BuildMonthNameTable pools applications by calendar month name across years
// and computes a 12-offset distribution per name. Pooling years into one
// seasonal bucket is deliberate: CAC attribution looks the kernel up by the
// spend month's calendar name alone. Always returns exactly 12 keys; names
// with no applications map to an all-zero vector.
func BuildMonthNameTable(records []models.ApplicationRecord) map[string][]float64 {
	byName := groupByMonthName(records)
	table := make(map[string][]float64, len(MonthNames))
	for _, name := range MonthNames {
		table[name] = ComputeBrackets(byName[name], kernelHorizon)
	}
	return table
}

// TruncateTable trims each distribution to the display horizon without
// recomputation.
func TruncateTable(table map[string][]float64, horizon int) map[string][]float64 {
	out := make(map[string][]float64, len(table))
	for name, dist := range table {
		if horizon < len(dist) {
			dist = dist[:horizon]
		}
		out[name] = dist
	}
	return out
}

func groupByMonthName(records []models.ApplicationRecord) map[string][]models.ApplicationRecord {
	byName := make(map[string][]models.ApplicationRecord, len(MonthNames))
	for _, r := range records {
		name := MonthName(r.ApplicationDate)
		byName[name] = append(byName[name], r)
	}
	return byName
}
