// Package common provides shared wiring used by multiple commands.
package common

import (
	"context"
	"fmt"
	"time"

	"jwyoo/krx-report/cmd/root"
	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/dart"
	"jwyoo/krx-report/internal/export"
	"jwyoo/krx-report/internal/krx"
	"jwyoo/krx-report/internal/models"
	"jwyoo/krx-report/internal/resolver"
)

// Clients bundles the configured API clients commands work with.
type Clients struct {
	Cfg  *config.Config
	Dart *dart.Client
	KRX  *krx.Client
}

// Setup loads configuration and builds the API clients.
func Setup() (*Clients, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	dartClient := dart.NewClient(cfg.Dart.APIKey,
		dart.WithBaseURL(cfg.Dart.BaseURL),
		dart.WithTimeout(time.Duration(cfg.Dart.TimeoutSeconds)*time.Second),
	)
	krxClient := krx.NewClient(krx.WithBaseURL(cfg.KRX.BaseURL))

	export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

	return &Clients{Cfg: cfg, Dart: dartClient, KRX: krxClient}, nil
}

// Resolver returns the statement resolver commands should use: the DART-backed
// resolver behind a request-keyed cache, so repeated resolutions within one
// process never hit the API twice.
func (c *Clients) Resolver() resolver.StatementResolver {
	return resolver.NewCached(resolver.New(c.Dart))
}

// OutputDir returns the effective output directory: the --output flag when
// given, the configured default otherwise.
func (c *Clients) OutputDir() string {
	if root.SharedFlags.Output != "" {
		return root.SharedFlags.Output
	}
	return c.Cfg.Output.Directory
}

// YearRange returns the fiscal year window for statement resolution:
// the configured number of years ending at the current year.
func (c *Clients) YearRange(now time.Time) (minYear, maxYear int) {
	maxYear = now.Year()
	minYear = maxYear - (c.Cfg.Dart.Years - 1)
	return minYear, maxYear
}

// PriceWindow returns the date range for price history: the configured
// lookback ending today.
func (c *Clients) PriceWindow(now time.Time) (from, to time.Time) {
	return now.AddDate(0, 0, -c.Cfg.KRX.LookbackDays), now
}

// ResolveCompany finds the KRX listing and the DART corp code for a company
// name. The corp code may come back empty when DART does not know the
// company; callers still get the listing so price-only output works.
func (c *Clients) ResolveCompany(ctx context.Context, name string) (models.Listing, string, error) {
	listing, err := c.KRX.Lookup(ctx, name)
	if err != nil {
		return models.Listing{}, "", err
	}

	corpCode, err := c.Dart.LookupCorpCode(ctx, listing.Name)
	if err != nil {
		root.Log.WithError(err).Warn("Could not find DART corp code; statements will be empty")
		return listing, "", nil
	}
	return listing, corpCode, nil
}

// BuildRequest assembles a ResolutionRequest from command-line selections.
// overrideYear/overrideCode pin a single report type for one year; zero
// values mean no override.
func BuildRequest(corpCode string, minYear, maxYear int, scopeMode string, overrideYear int, overrideCode string) models.ResolutionRequest {
	req := models.ResolutionRequest{
		CompanyID:  corpCode,
		MinYear:    minYear,
		MaxYear:    maxYear,
		ScopeOrder: models.ScopeOrderFromMode(scopeMode),
	}
	if overrideYear != 0 && overrideCode != "" {
		req.ReportTypeOverride = map[int]models.ReportType{
			overrideYear: models.ReportType(overrideCode),
		}
	}
	return req
}
