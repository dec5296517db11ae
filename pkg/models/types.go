package models

import (
	"database/sql"
	"time"
)

/*
LOAD → plain records as read from the marketing warehouse.
*/

// ApplicationRecord is one applicant row from the last-action view.
type ApplicationRecord struct {
	ApplicantID         string
	ApplicationDate     time.Time    // never zero, filtered at the source
	HireDate            sql.NullTime // null while not (or never) hired
	NationalityCategory string
	LocationCategory    string
	Country             string
}

// SpendRecord is one (month, segment) advertising spend row, amounts in AED.
type SpendRecord struct {
	SpendMonth          time.Time
	Country             string
	NationalityCategory string
	LocationCategory    string
	Amount              float64
}

// HireAggregate is a pre-aggregated hire count for one (month, segment) cell.
type HireAggregate struct {
	HireMonth           time.Time
	Country             string
	LocationCategory    string
	NationalityCategory string
	Hires               int
}

/*
COMPUTE → result row exported per hire month.
*/

// CACResult is the attributed acquisition cost for one hire month.
type CACResult struct {
	HireMonth     string          // "YYYY-MM"
	TotalHires    int             // hires across all segment rows for the month
	WeightedSpend float64         // AED, kernel-weighted 12-month lookback
	CAC           sql.NullFloat64 // AED per hire; invalid when TotalHires == 0
}

/*
CONFIG → filter parameters, passed wholesale into every computation.
*/

// FilterParams selects the population to analyze. An empty Countries slice
// means all countries; zero Start/EndMonth mean an unbounded range. The month
// range restricts applications only, never spend or hire aggregates.
type FilterParams struct {
	Nationality string
	Location    string
	Countries   []string
	StartMonth  time.Time
	EndMonth    time.Time
	Horizon     int // displayed brackets, 1..12
}

// CountryAllowed reports whether c passes the country multi-select.
func (p FilterParams) CountryAllowed(c string) bool {
	if len(p.Countries) == 0 {
		return true
	}
	for _, want := range p.Countries {
		if want == c {
			return true
		}
	}
	return false
}

// Config carries the parameters passed to the computation pipeline.
type Config struct {
	Filter  FilterParams
	Verbose bool // detailed per-stage logs
}
