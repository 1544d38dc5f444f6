package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jwyoo/krx-report/internal/models"
)

func TestWritePricesToCSV(t *testing.T) {
	days := []models.PriceDay{
		{
			Date:               time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Open:               decimal.NewFromInt(78200),
			High:               decimal.NewFromInt(79800),
			Low:                decimal.NewFromInt(78200),
			Close:              decimal.NewFromInt(79600),
			Volume:             17142847,
			PriceEarningsRatio: decimal.NewFromFloat(13.5),
		},
	}

	csvFile := filepath.Join(t.TempDir(), "sub", "prices.csv")
	require.NoError(t, WritePricesToCSV(days, csvFile))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Open,High,Low,Close,Volume,DividendYield,BookValuePerShare,PriceEarningsRatio,PriceBookRatio", lines[0])
	assert.Equal(t, "2024-01-02,78200,79800,78200,79600,17142847,0,0,13.5,0", lines[1])
}

func TestWriteStatementsToCSV(t *testing.T) {
	results := []models.YearResult{
		{
			Year:       2022,
			Resolved:   true,
			Scope:      models.ScopeConsolidated,
			ReportType: models.ReportAnnual,
			Rows: []models.StatementRow{
				{AccountName: "자산총계", Amount: "448424507000000"},
			},
		},
		{Year: 2023}, // unresolved years contribute no rows
	}

	csvFile := filepath.Join(t.TempDir(), "statements.csv")
	require.NoError(t, WriteStatementsToCSV(results, csvFile))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Year,Scope,ReportType,AccountName,Amount", lines[0])
	assert.Equal(t, "2022,CFS,11011,자산총계,448424507000000", lines[1])
}

func TestWriteCSVCustomDelimiter(t *testing.T) {
	original := Delimiter
	SetDelimiter(';')
	defer SetDelimiter(original)

	results := []models.YearResult{
		{
			Year:       2022,
			Resolved:   true,
			Scope:      models.ScopeSeparate,
			ReportType: models.ReportQ3,
			Rows:       []models.StatementRow{{AccountName: "매출액", Amount: "1000"}},
		},
	}

	csvFile := filepath.Join(t.TempDir(), "semicolon.csv")
	require.NoError(t, WriteStatementsToCSV(results, csvFile))

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2022;OFS;11014;매출액;1000")
}
