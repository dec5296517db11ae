package calculator

import (
	"fmt"
	"log"
	"time"

	"cac-monthly/pkg/models"

	"github.com/schollz/progressbar/v3"
)

// Report bundles the pipeline outputs: the overall bracket distribution at
// the display horizon, the full 12-offset kernel table, aggregated monthly
// spend and the CAC table.
type Report struct {
	Overall    []float64
	MonthTable map[string][]float64
	Spend      map[time.Time]float64
	CAC        []models.CACResult
}

// Run executes the full pipeline over already-loaded tables: filter the
// applications, build the seasonal kernel per calendar month name, aggregate
// spend and attribute it to hire months. Pure apart from progress/log output.
func Run(cfg models.Config, apps []models.ApplicationRecord, spend []models.SpendRecord, hires []models.HireAggregate) (Report, error) {
	if cfg.Filter.Horizon < 1 || cfg.Filter.Horizon > kernelHorizon {
		return Report{}, fmt.Errorf("horizon %d out of range 1..%d", cfg.Filter.Horizon, kernelHorizon)
	}

	filtered := FilterApplications(apps, cfg.Filter)
	if cfg.Verbose {
		log.Printf("[INFO] %d/%d applications in segment", len(filtered), len(apps))
	}

	overall := ComputeBrackets(filtered, cfg.Filter.Horizon)

	byName := groupByMonthName(filtered)
	bar := progressbar.Default(int64(len(MonthNames)))
	table := make(map[string][]float64, len(MonthNames))
	for _, name := range MonthNames {
		table[name] = ComputeBrackets(byName[name], kernelHorizon)
		_ = bar.Add(1)
		if cfg.Verbose {
			log.Printf("[INFO] %s -> applications=%d bracket_sum=%.4f", name, len(byName[name]), sum(table[name]))
		}
	}

	monthlySpend := AggregateSpend(spend, cfg.Filter)
	results := ComputeCAC(hires, monthlySpend, table, cfg.Filter)
	if cfg.Verbose {
		log.Printf("[INFO] spend_months=%d hire_months=%d", len(monthlySpend), len(results))
	}

	return Report{Overall: overall, MonthTable: table, Spend: monthlySpend, CAC: results}, nil
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
