package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

func testClients(years, lookbackDays int) *Clients {
	var cfg config.Config
	cfg.Dart.Years = years
	cfg.KRX.LookbackDays = lookbackDays
	return &Clients{Cfg: &cfg}
}

func TestYearRange(t *testing.T) {
	c := testClients(6, 365)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	minYear, maxYear := c.YearRange(now)
	assert.Equal(t, 2019, minYear)
	assert.Equal(t, 2024, maxYear)

	minYear, maxYear = testClients(1, 365).YearRange(now)
	assert.Equal(t, 2024, minYear)
	assert.Equal(t, 2024, maxYear)
}

func TestPriceWindow(t *testing.T) {
	c := testClients(6, 30)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	from, to := c.PriceWindow(now)
	assert.Equal(t, now, to)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), from)
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest("00126380", 2019, 2024, "auto-cfs", 0, "")

	assert.Equal(t, "00126380", req.CompanyID)
	assert.Equal(t, 2019, req.MinYear)
	assert.Equal(t, 2024, req.MaxYear)
	assert.Equal(t, []models.Scope{models.ScopeConsolidated, models.ScopeSeparate}, req.ScopeOrder)
	assert.Nil(t, req.ReportTypeOverride)
}

func TestBuildRequestWithOverride(t *testing.T) {
	req := BuildRequest("00126380", 2019, 2024, "ofs", 2022, "11012")

	assert.Equal(t, []models.Scope{models.ScopeSeparate}, req.ScopeOrder)
	require.NotNil(t, req.ReportTypeOverride)
	assert.Equal(t, models.ReportHalfYear, req.ReportTypeOverride[2022])

	// Both halves of the override must be present for it to apply.
	assert.Nil(t, BuildRequest("x", 2019, 2024, "", 2022, "").ReportTypeOverride)
	assert.Nil(t, BuildRequest("x", 2019, 2024, "", 0, "11012").ReportTypeOverride)
}
