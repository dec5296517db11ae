package calculator

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"cac-monthly/pkg/models"
)

// BracketRow is one line of the time-to-hire summary table.
type BracketRow struct {
	Label      string // "End of N Month(s)"
	Percentage string // "12.3%"
}

// BracketRows renders a bracket distribution with the report labels.
func BracketRows(dist []float64) []BracketRow {
	rows := make([]BracketRow, len(dist))
	for i, p := range dist {
		plural := ""
		if i > 0 {
			plural = "s"
		}
		rows[i] = BracketRow{
			Label:      fmt.Sprintf("End of %d Month%s", i+1, plural),
			Percentage: fmt.Sprintf("%.1f%%", p*100),
		}
	}
	return rows
}

// SpendRow is one line of the spend overview.
type SpendRow struct {
	Month  time.Time
	Amount float64
}

// SpendRows lists aggregated spend ascending by month. Only months present
// in the aggregate appear.
func SpendRows(spend map[time.Time]float64) []SpendRow {
	rows := make([]SpendRow, 0, len(spend))
	for m, amount := range spend {
		rows = append(rows, SpendRow{Month: m, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.Before(rows[j].Month) })
	return rows
}

// WriteCACCSV writes the CAC table as delimited text: header row, floats
// rounded to two decimals, "N/A" when the CAC is undefined.
func WriteCACCSV(w io.Writer, results []models.CACResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Hire Month", "Total Hires", "Weighted Spend (AED)", "CAC (AED per Hire)"}); err != nil {
		return err
	}
	for _, r := range results {
		cac := "N/A"
		if r.CAC.Valid {
			cac = strconv.FormatFloat(r.CAC.Float64, 'f', 2, 64)
		}
		row := []string{
			r.HireMonth,
			strconv.Itoa(r.TotalHires),
			strconv.FormatFloat(r.WeightedSpend, 'f', 2, 64),
			cac,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
