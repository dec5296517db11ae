package calculator

import (
	"testing"
	"time"

	"cac-monthly/pkg/models"
)

func TestRun_RejectsBadHorizon(t *testing.T) {
	for _, h := range []int{0, -1, 13} {
		cfg := models.Config{Filter: models.FilterParams{Nationality: "Expat", Location: "City", Horizon: h}}
		if _, err := Run(cfg, nil, nil, nil); err == nil {
			t.Fatalf("horizon %d: expected error, got nil", h)
		}
	}
}

func TestRun_EndToEnd(t *testing.T) {
	seg := func(r models.ApplicationRecord) models.ApplicationRecord {
		r.NationalityCategory = "Expat"
		r.LocationCategory = "City"
		r.Country = "UAE"
		return r
	}
	apps := []models.ApplicationRecord{
		seg(hired(ym(2024, time.January), ym(2024, time.February))),
		seg(hired(ym(2024, time.January), ym(2024, time.February))),
		seg(pending(ym(2024, time.January))),
		seg(pending(ym(2024, time.January))),
	}
	spend := []models.SpendRecord{
		{SpendMonth: ym(2024, time.January), Country: "UAE", NationalityCategory: "Expat", LocationCategory: "City", Amount: 1000},
	}
	hires := []models.HireAggregate{
		{HireMonth: ym(2024, time.February), Country: "UAE", NationalityCategory: "Expat", LocationCategory: "City", Hires: 2},
	}

	cfg := models.Config{Filter: models.FilterParams{Nationality: "Expat", Location: "City", Horizon: 3}}
	report, err := Run(cfg, apps, spend, hires)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both hires close one month after application.
	if len(report.Overall) != 3 || !approx(report.Overall[1], 1.0) {
		t.Fatalf("overall brackets: got %v", report.Overall)
	}
	if len(report.MonthTable) != 12 {
		t.Fatalf("got %d kernel keys, want 12", len(report.MonthTable))
	}
	if !approx(report.MonthTable["Jan"][1], 1.0) {
		t.Fatalf("Jan kernel: got %v", report.MonthTable["Jan"])
	}

	// Feb hires attribute Jan spend at offset 1 with weight 1.0.
	if len(report.CAC) != 1 {
		t.Fatalf("got %d CAC rows, want 1", len(report.CAC))
	}
	r := report.CAC[0]
	if r.HireMonth != "2024-02" || r.TotalHires != 2 {
		t.Fatalf("unexpected CAC row: %+v", r)
	}
	if !approx(r.WeightedSpend, 1000) {
		t.Fatalf("weighted spend: got %v, want 1000", r.WeightedSpend)
	}
	if !r.CAC.Valid || !approx(r.CAC.Float64, 500) {
		t.Fatalf("cac: got %+v, want 500", r.CAC)
	}
}

// Same input twice -> bit-identical output.
func TestRun_Deterministic(t *testing.T) {
	apps := []models.ApplicationRecord{
		{ApplicationDate: ym(2024, time.January), NationalityCategory: "Expat", LocationCategory: "City", Country: "UAE"},
	}
	hires := []models.HireAggregate{
		{HireMonth: ym(2024, time.March), Country: "UAE", NationalityCategory: "Expat", LocationCategory: "City", Hires: 4},
	}
	spend := []models.SpendRecord{
		{SpendMonth: ym(2024, time.February), Country: "UAE", NationalityCategory: "Expat", LocationCategory: "City", Amount: 77.7},
	}
	cfg := models.Config{Filter: models.FilterParams{Nationality: "Expat", Location: "City", Horizon: 6}}

	first, err := Run(cfg, apps, spend, hires)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(cfg, apps, spend, hires)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.CAC) != len(second.CAC) {
		t.Fatalf("CAC length mismatch")
	}
	for i := range first.CAC {
		if first.CAC[i] != second.CAC[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, first.CAC[i], second.CAC[i])
		}
	}
	for i := range first.Overall {
		if first.Overall[i] != second.Overall[i] {
			t.Fatalf("bracket %d differs", i)
		}
	}
}
