// Package resolver selects the best available financial-statement snapshot
// for each fiscal year by trying scope and report-type combinations in a
// defined priority order.
package resolver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

// Source is the disclosure API surface the resolver needs. An error return
// covers both transient failures and well-formed "no data" answers; the
// resolver treats them identically and moves on to the next candidate.
type Source interface {
	FetchStatement(ctx context.Context, companyID string, year int, reportType models.ReportType, scope models.Scope) ([]models.StatementRow, error)
}

// StatementResolver produces one YearResult per requested fiscal year.
type StatementResolver interface {
	Resolve(ctx context.Context, req models.ResolutionRequest) []models.YearResult
}

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Resolver is the default StatementResolver backed by a disclosure Source.
type Resolver struct {
	source Source
	now    func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the current-time source. The current fiscal year
// decides the report-type try order, so tests pin it here.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Resolver over the given disclosure source.
func New(source Source, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// pastYearOrder prefers the most complete filing: the annual report first.
var pastYearOrder = []models.ReportType{
	models.ReportAnnual, models.ReportHalfYear, models.ReportQ1, models.ReportQ3,
}

// currentYearOrder prefers the most recent partial filing, since a full
// annual report is unlikely to exist yet for the running fiscal year.
var currentYearOrder = []models.ReportType{
	models.ReportQ3, models.ReportQ1, models.ReportHalfYear, models.ReportAnnual,
}

// Resolve returns one YearResult per year in [MinYear, MaxYear], ascending.
// It never fails: a year for which every combination is exhausted comes back
// as an unresolved result, and per-combination fetch errors are swallowed.
// Without a company identifier no fetch is attempted at all.
func (r *Resolver) Resolve(ctx context.Context, req models.ResolutionRequest) []models.YearResult {
	if req.MaxYear < req.MinYear {
		return nil
	}

	results := make([]models.YearResult, 0, req.MaxYear-req.MinYear+1)
	if req.CompanyID == "" {
		log.Warn("No company identifier; returning empty results without fetching")
		for year := req.MinYear; year <= req.MaxYear; year++ {
			results = append(results, models.YearResult{Year: year})
		}
		return results
	}

	currentYear := r.now().Year()
	for year := req.MinYear; year <= req.MaxYear; year++ {
		results = append(results, r.resolveYear(ctx, req, year, currentYear))
	}
	return results
}

// resolveYear tries every (scope, report type) candidate for one year and
// adopts the first usable response. Scope is the outer axis: all report
// types are exhausted under one scope before the next scope is tried.
func (r *Resolver) resolveYear(ctx context.Context, req models.ResolutionRequest, year, currentYear int) models.YearResult {
	reportTypes := candidateReportTypes(req, year, currentYear)

	for _, scope := range scopeOrder(req) {
		for _, reportType := range reportTypes {
			rows, err := r.source.FetchStatement(ctx, req.CompanyID, year, reportType, scope)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"year":        year,
					"scope":       scope,
					"report_type": reportType,
				}).Debug("Combination not usable, trying next")
				continue
			}
			if !anyUsable(rows) {
				continue
			}
			log.WithFields(logrus.Fields{
				"year":        year,
				"scope":       scope,
				"report_type": reportType,
				"rows":        len(rows),
			}).Info("Adopted statement snapshot")
			return models.YearResult{
				Year:       year,
				Resolved:   true,
				Scope:      scope,
				ReportType: reportType,
				Rows:       models.NormalizeRows(rows),
			}
		}
	}

	log.WithField("year", year).Info("No usable statement for year")
	return models.YearResult{Year: year}
}

// candidateReportTypes returns the report-type try order for one year.
// An override pins the year to a single attempt with no fallback.
func candidateReportTypes(req models.ResolutionRequest, year, currentYear int) []models.ReportType {
	if rt, ok := req.ReportTypeOverride[year]; ok {
		return []models.ReportType{rt}
	}
	if year < currentYear {
		return pastYearOrder
	}
	return currentYearOrder
}

// scopeOrder returns the caller-supplied scope preference, defaulting to
// consolidated-first when none was given.
func scopeOrder(req models.ResolutionRequest) []models.Scope {
	if len(req.ScopeOrder) > 0 {
		return req.ScopeOrder
	}
	return []models.Scope{models.ScopeConsolidated, models.ScopeSeparate}
}

// anyUsable reports whether at least one row carries both an account name
// and an amount.
func anyUsable(rows []models.StatementRow) bool {
	for _, row := range rows {
		if row.IsUsable() {
			return true
		}
	}
	return false
}
