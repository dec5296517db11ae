package calculator

import (
	"database/sql"
	"sort"
	"time"

	"cac-monthly/pkg/models"
)

// FilterApplications keeps the rows matching the segment selection and, when
// bounded, the application month range.
func FilterApplications(records []models.ApplicationRecord, p models.FilterParams) []models.ApplicationRecord {
	out := make([]models.ApplicationRecord, 0, len(records))
	for _, r := range records {
		if r.NationalityCategory != p.Nationality || r.LocationCategory != p.Location {
			continue
		}
		if !p.CountryAllowed(r.Country) {
			continue
		}
		m := MonthStart(r.ApplicationDate)
		if !p.StartMonth.IsZero() && m.Before(MonthStart(p.StartMonth)) {
			continue
		}
		if !p.EndMonth.IsZero() && m.After(MonthStart(p.EndMonth)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AggregateSpend segment-filters raw spend rows and sums amounts per spend
// month. Months absent from the result read as zero spend, they are never
// materialized.
func AggregateSpend(records []models.SpendRecord, p models.FilterParams) map[time.Time]float64 {
	out := make(map[time.Time]float64)
	for _, r := range records {
		if r.NationalityCategory != p.Nationality || r.LocationCategory != p.Location {
			continue
		}
		if !p.CountryAllowed(r.Country) {
			continue
		}
		out[MonthStart(r.SpendMonth)] += r.Amount
	}
	return out
}

// sumHiresByMonth collapses segment-filtered hire aggregates into one count
// per hire month.
func sumHiresByMonth(records []models.HireAggregate, p models.FilterParams) map[time.Time]int {
	out := make(map[time.Time]int)
	for _, r := range records {
		if r.NationalityCategory != p.Nationality || r.LocationCategory != p.Location {
			continue
		}
		if !p.CountryAllowed(r.Country) {
			continue
		}
		out[MonthStart(r.HireMonth)] += r.Hires
	}
	return out
}

// ComputeCAC attributes historical spend to each hire month present in the
// aggregates. For offsets 0..11, the spend i months back is weighted by the
// kernel entry of that spend month's calendar name at offset i; the weighted
// sum divided by the month's hire count is the CAC. A zero hire count yields
// an undefined CAC, never a division fault; a missing spend month counts as
// zero. Results are sorted ascending by hire month and depend only on input
// content, not row order.
func ComputeCAC(hires []models.HireAggregate, spend map[time.Time]float64, kernel map[string][]float64, p models.FilterParams) []models.CACResult {
	byMonth := sumHiresByMonth(hires, p)
	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	results := make([]models.CACResult, 0, len(months))
	for _, hm := range months {
		n := byMonth[hm]
		weighted := 0.0
		for i := 0; i < kernelHorizon; i++ {
			spendMonth := hm.AddDate(0, -i, 0)
			weights := kernel[MonthName(spendMonth)]
			if i < len(weights) {
				weighted += spend[spendMonth] * weights[i]
			}
		}
		cac := sql.NullFloat64{}
		if n > 0 {
			cac = sql.NullFloat64{Float64: weighted / float64(n), Valid: true}
		}
		results = append(results, models.CACResult{
			HireMonth:     hm.Format("2006-01"),
			TotalHires:    n,
			WeightedSpend: weighted,
			CAC:           cac,
		})
	}
	return results
}
