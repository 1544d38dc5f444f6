// Package report assembles chart data from price history and resolved
// statements and renders the interactive HTML report.
package report

import (
	"sort"
	"strconv"

	"jwyoo/krx-report/internal/models"
)

// Series maps a metric name to its labeled values. A nil value marks a gap
// the chart renders as a break (spanGaps).
type Series map[string]map[string]*float64

// BuildPriceSeries pivots daily price history into one chart series per
// numeric metric, keyed by ISO date.
func BuildPriceSeries(days []models.PriceDay) Series {
	if len(days) == 0 {
		return Series{}
	}

	series := make(Series)
	for _, metric := range models.PriceMetricNames() {
		points := make(map[string]*float64, len(days))
		for _, day := range days {
			v, ok := day.MetricValue(metric)
			if !ok {
				continue
			}
			value := v
			points[day.Date.Format("2006-01-02")] = &value
		}
		series[metric] = points
	}
	return series
}

// BuildStatementSeries pivots resolved year results into one series per
// account name, keyed by year, with amounts scaled from won to trillions of
// won. Duplicate account names within a year keep the first occurrence.
// Unresolved years appear as gaps, not as zeroes.
func BuildStatementSeries(results []models.YearResult) Series {
	years := make([]string, 0, len(results))
	accounts := make(map[string]struct{})
	byYear := make(map[string]map[string]string, len(results))

	for _, res := range results {
		year := strconv.Itoa(res.Year)
		years = append(years, year)
		if !res.Resolved {
			continue
		}
		amounts := make(map[string]string, len(res.Rows))
		for _, row := range res.Rows {
			name := models.NormalizeAccountName(row.AccountName)
			if name == "" {
				continue
			}
			accounts[name] = struct{}{}
			if _, seen := amounts[name]; !seen {
				amounts[name] = row.Amount
			}
		}
		byYear[year] = amounts
	}

	if len(accounts) == 0 {
		return Series{}
	}

	series := make(Series, len(accounts))
	for name := range accounts {
		points := make(map[string]*float64, len(years))
		for _, year := range years {
			amount, ok := byYear[year][name]
			if !ok {
				points[year] = nil
				continue
			}
			d, ok := models.AmountToTrillions(amount)
			if !ok {
				points[year] = nil
				continue
			}
			value := d.InexactFloat64()
			points[year] = &value
		}
		series[name] = points
	}
	return series
}

// MetricNames returns the series keys sorted for stable presentation.
func (s Series) MetricNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectDefaults returns the members of preferred that exist in the series,
// capped at limit. When none match, the first metrics in sorted order fill
// in, so a fresh report always has something drawn.
func (s Series) SelectDefaults(preferred []string, limit int) []string {
	var defaults []string
	for _, name := range preferred {
		if _, ok := s[name]; ok {
			defaults = append(defaults, name)
		}
		if len(defaults) == limit {
			return defaults
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	names := s.MetricNames()
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
