package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cac-monthly/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

const (
	// Last-action view: one row per applicant with segment attributes.
	applicantTable = "ApplicantLastAction"
	// Daily per-country ad spend, in AED.
	spendTable = "CountryDailySpend"
)

// Open DSN mariadb:// or mysql:// → MySQL driver format
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// LoadApplications reads the applicant last-action view. Rows with a null
// application date are excluded at the source; the hire date stays nullable.
func LoadApplications(ctx context.Context, db *sql.DB) ([]models.ApplicationRecord, error) {
	q := fmt.Sprintf(`
		SELECT
			user_id,
			application_created,
			successful_date,
			location_category,
			nationality_category,
			country
		FROM %s
		WHERE application_created IS NOT NULL
	`, applicantTable)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	defer rows.Close()

	var out []models.ApplicationRecord
	for rows.Next() {
		var (
			r           models.ApplicationRecord
			id          sql.NullString
			location    sql.NullString
			nationality sql.NullString
			country     sql.NullString
		)
		if err := rows.Scan(&id, &r.ApplicationDate, &r.HireDate, &location, &nationality, &country); err != nil {
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		r.ApplicantID = id.String
		r.LocationCategory = location.String
		r.NationalityCategory = nationality.String
		r.Country = country.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	return out, nil
}

// LoadSpend rolls daily spend up to (month, segment) rows. The month comes
// back as a 'YYYY-MM-01' string from DATE_FORMAT and is parsed here; a value
// that does not parse aborts the load with the offending text.
func LoadSpend(ctx context.Context, db *sql.DB) ([]models.SpendRecord, error) {
	q := fmt.Sprintf(`
		SELECT
			DATE_FORMAT(application_created_date, '%%Y-%%m-01') AS spend_month,
			country_name,
			nationality_category,
			location_category,
			SUM(total_spend_aed) AS monthly_spend
		FROM %s
		GROUP BY spend_month, country_name, nationality_category, location_category
	`, spendTable)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load spend: %w", err)
	}
	defer rows.Close()

	var out []models.SpendRecord
	for rows.Next() {
		var (
			r           models.SpendRecord
			month       string
			country     sql.NullString
			nationality sql.NullString
			location    sql.NullString
		)
		if err := rows.Scan(&month, &country, &nationality, &location, &r.Amount); err != nil {
			return nil, fmt.Errorf("scan spend row: %w", err)
		}
		m, err := parseMonthValue(month)
		if err != nil {
			return nil, fmt.Errorf("spend month: %w", err)
		}
		r.SpendMonth = m
		r.Country = country.String
		r.NationalityCategory = nationality.String
		r.LocationCategory = location.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load spend: %w", err)
	}
	return out, nil
}

// LoadHireAggregates counts hires per (month, segment) cell.
func LoadHireAggregates(ctx context.Context, db *sql.DB) ([]models.HireAggregate, error) {
	q := fmt.Sprintf(`
		SELECT
			DATE_FORMAT(successful_date, '%%Y-%%m-01') AS hire_month,
			country,
			location_category,
			nationality_category,
			COUNT(*) AS hires
		FROM %s
		WHERE successful_date IS NOT NULL
		GROUP BY hire_month, country, location_category, nationality_category
	`, applicantTable)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load hire aggregates: %w", err)
	}
	defer rows.Close()

	var out []models.HireAggregate
	for rows.Next() {
		var (
			r           models.HireAggregate
			month       string
			country     sql.NullString
			location    sql.NullString
			nationality sql.NullString
		)
		if err := rows.Scan(&month, &country, &location, &nationality, &r.Hires); err != nil {
			return nil, fmt.Errorf("scan hire row: %w", err)
		}
		m, err := parseMonthValue(month)
		if err != nil {
			return nil, fmt.Errorf("hire month: %w", err)
		}
		r.HireMonth = m
		r.Country = country.String
		r.LocationCategory = location.String
		r.NationalityCategory = nationality.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load hire aggregates: %w", err)
	}
	return out, nil
}

func parseMonthValue(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
