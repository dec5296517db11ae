package calculator

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"cac-monthly/pkg/models"
)

func TestBracketRows_LabelsAndPercentages(t *testing.T) {
	rows := BracketRows([]float64{0.0, 0.4, 0.125})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Label != "End of 1 Month" {
		t.Fatalf("got %q, want %q", rows[0].Label, "End of 1 Month")
	}
	if rows[1].Label != "End of 2 Months" {
		t.Fatalf("got %q, want %q", rows[1].Label, "End of 2 Months")
	}
	if rows[1].Percentage != "40.0%" {
		t.Fatalf("got %q, want %q", rows[1].Percentage, "40.0%")
	}
	if rows[2].Percentage != "12.5%" {
		t.Fatalf("got %q, want %q", rows[2].Percentage, "12.5%")
	}
}

func TestSpendRows_Ascending(t *testing.T) {
	spend := map[time.Time]float64{
		ym(2024, time.March):   300,
		ym(2024, time.January): 100,
		ym(2023, time.December): 50,
	}
	rows := SpendRows(spend)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !rows[0].Month.Equal(ym(2023, time.December)) || !rows[2].Month.Equal(ym(2024, time.March)) {
		t.Fatalf("rows not sorted: %+v", rows)
	}
}

func TestWriteCACCSV(t *testing.T) {
	results := []models.CACResult{
		{HireMonth: "2024-03", TotalHires: 10, WeightedSpend: 220, CAC: sql.NullFloat64{Float64: 22, Valid: true}},
		{HireMonth: "2024-04", TotalHires: 0, WeightedSpend: 150.456, CAC: sql.NullFloat64{}},
	}
	var buf bytes.Buffer
	if err := WriteCACCSV(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hire Month,Total Hires,Weighted Spend (AED),CAC (AED per Hire)\n" +
		"2024-03,10,220.00,22.00\n" +
		"2024-04,0,150.46,N/A\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCACCSV_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCACCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hire Month,Total Hires,Weighted Spend (AED),CAC (AED per Hire)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
