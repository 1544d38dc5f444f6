package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jwyoo/krx-report/internal/models"
)

// fetchCall records one attempted combination in arrival order.
type fetchCall struct {
	Year       int
	ReportType models.ReportType
	Scope      models.Scope
}

// fakeSource replays canned responses keyed by (year, reportType, scope) and
// records every call. Combinations without a canned response return an error,
// which the resolver must treat as "not usable".
type fakeSource struct {
	responses map[fetchCall][]models.StatementRow
	calls     []fetchCall
}

func newFakeSource() *fakeSource {
	return &fakeSource{responses: make(map[fetchCall][]models.StatementRow)}
}

func (f *fakeSource) respond(year int, rt models.ReportType, scope models.Scope, rows ...models.StatementRow) {
	f.responses[fetchCall{Year: year, ReportType: rt, Scope: scope}] = rows
}

func (f *fakeSource) FetchStatement(_ context.Context, _ string, year int, rt models.ReportType, scope models.Scope) ([]models.StatementRow, error) {
	call := fetchCall{Year: year, ReportType: rt, Scope: scope}
	f.calls = append(f.calls, call)
	rows, ok := f.responses[call]
	if !ok {
		return nil, errors.New("no disclosure for this combination")
	}
	return rows, nil
}

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
	}
}

func usableRow() models.StatementRow {
	return models.StatementRow{AccountName: "자산총계", Amount: "1,000"}
}

func TestResolveCandidateOrder(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		currentYear int
		override    map[int]models.ReportType
		scopeOrder  []models.Scope
		expected    []fetchCall
	}{
		{
			name:        "past year tries annual first",
			year:        2022,
			currentYear: 2024,
			expected: []fetchCall{
				{2022, models.ReportAnnual, models.ScopeConsolidated},
				{2022, models.ReportHalfYear, models.ScopeConsolidated},
				{2022, models.ReportQ1, models.ScopeConsolidated},
				{2022, models.ReportQ3, models.ScopeConsolidated},
				{2022, models.ReportAnnual, models.ScopeSeparate},
				{2022, models.ReportHalfYear, models.ScopeSeparate},
				{2022, models.ReportQ1, models.ScopeSeparate},
				{2022, models.ReportQ3, models.ScopeSeparate},
			},
		},
		{
			name:        "current year tries third quarter first",
			year:        2024,
			currentYear: 2024,
			expected: []fetchCall{
				{2024, models.ReportQ3, models.ScopeConsolidated},
				{2024, models.ReportQ1, models.ScopeConsolidated},
				{2024, models.ReportHalfYear, models.ScopeConsolidated},
				{2024, models.ReportAnnual, models.ScopeConsolidated},
				{2024, models.ReportQ3, models.ScopeSeparate},
				{2024, models.ReportQ1, models.ScopeSeparate},
				{2024, models.ReportHalfYear, models.ScopeSeparate},
				{2024, models.ReportAnnual, models.ScopeSeparate},
			},
		},
		{
			name:        "override pins a single attempt per scope",
			year:        2022,
			currentYear: 2024,
			override:    map[int]models.ReportType{2022: models.ReportHalfYear},
			expected: []fetchCall{
				{2022, models.ReportHalfYear, models.ScopeConsolidated},
				{2022, models.ReportHalfYear, models.ScopeSeparate},
			},
		},
		{
			name:        "override with a single scope is exactly one attempt",
			year:        2024,
			currentYear: 2024,
			override:    map[int]models.ReportType{2024: models.ReportQ1},
			scopeOrder:  []models.Scope{models.ScopeSeparate},
			expected: []fetchCall{
				{2024, models.ReportQ1, models.ScopeSeparate},
			},
		},
		{
			name:        "separate-only scope never touches consolidated",
			year:        2022,
			currentYear: 2024,
			scopeOrder:  []models.Scope{models.ScopeSeparate},
			expected: []fetchCall{
				{2022, models.ReportAnnual, models.ScopeSeparate},
				{2022, models.ReportHalfYear, models.ScopeSeparate},
				{2022, models.ReportQ1, models.ScopeSeparate},
				{2022, models.ReportQ3, models.ScopeSeparate},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := newFakeSource()
			r := New(source, WithClock(fixedClock(tc.currentYear)))

			results := r.Resolve(context.Background(), models.ResolutionRequest{
				CompanyID:          "00126380",
				MinYear:            tc.year,
				MaxYear:            tc.year,
				ScopeOrder:         tc.scopeOrder,
				ReportTypeOverride: tc.override,
			})

			require.Len(t, results, 1)
			assert.False(t, results[0].Resolved)
			assert.Equal(t, tc.expected, source.calls)
		})
	}
}

func TestResolveAdoptsFirstUsableAndStops(t *testing.T) {
	source := newFakeSource()
	source.respond(2022, models.ReportHalfYear, models.ScopeConsolidated, usableRow())
	// A later candidate also has data; it must never be reached.
	source.respond(2022, models.ReportAnnual, models.ScopeSeparate, usableRow())

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2022,
		MaxYear:   2022,
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Resolved)
	assert.Equal(t, models.ScopeConsolidated, results[0].Scope)
	assert.Equal(t, models.ReportHalfYear, results[0].ReportType)

	// Annual failed, the half-year report was adopted, nothing after it ran.
	expected := []fetchCall{
		{2022, models.ReportAnnual, models.ScopeConsolidated},
		{2022, models.ReportHalfYear, models.ScopeConsolidated},
	}
	assert.Equal(t, expected, source.calls)
}

func TestResolveScopeIsOuterAxis(t *testing.T) {
	// Data only exists under the separate scope. All consolidated report
	// types must be exhausted before the first separate attempt.
	source := newFakeSource()
	source.respond(2022, models.ReportAnnual, models.ScopeSeparate, usableRow())

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2022,
		MaxYear:   2022,
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Resolved)
	assert.Equal(t, models.ScopeSeparate, results[0].Scope)
	assert.Equal(t, models.ReportAnnual, results[0].ReportType)
	require.Len(t, source.calls, 5)
	for _, call := range source.calls[:4] {
		assert.Equal(t, models.ScopeConsolidated, call.Scope)
	}
}

func TestResolveUnusableRowsAreSkipped(t *testing.T) {
	source := newFakeSource()
	// A 200-class answer with rows missing names or amounts is not usable.
	source.respond(2022, models.ReportAnnual, models.ScopeConsolidated,
		models.StatementRow{AccountName: "", Amount: "100"},
		models.StatementRow{AccountName: "자산총계", Amount: "   "},
	)
	source.respond(2022, models.ReportHalfYear, models.ScopeConsolidated, usableRow())

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2022,
		MaxYear:   2022,
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Resolved)
	assert.Equal(t, models.ReportHalfYear, results[0].ReportType)
}

func TestResolveExhaustedYearIsEmpty(t *testing.T) {
	source := newFakeSource()
	r := New(source, WithClock(fixedClock(2024)))

	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2021,
		MaxYear:   2022,
	})

	require.Len(t, results, 2)
	for i, year := range []int{2021, 2022} {
		assert.Equal(t, year, results[i].Year)
		assert.False(t, results[i].Resolved)
		assert.Empty(t, results[i].Rows)
	}
	// 2 scopes x 4 report types for each of the two years.
	assert.Len(t, source.calls, 16)
}

func TestResolveNormalizesAdoptedRows(t *testing.T) {
	source := newFakeSource()
	source.respond(2022, models.ReportAnnual, models.ScopeConsolidated,
		models.StatementRow{AccountName: "  자산총계 ", Amount: "1,234,567"},
	)

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2022,
		MaxYear:   2022,
	})

	require.Len(t, results, 1)
	require.Len(t, results[0].Rows, 1)
	assert.Equal(t, "자산총계", results[0].Rows[0].AccountName)
	assert.Equal(t, "1234567", results[0].Rows[0].Amount)
}

func TestResolveWithoutCompanySkipsFetching(t *testing.T) {
	source := newFakeSource()
	r := New(source, WithClock(fixedClock(2024)))

	results := r.Resolve(context.Background(), models.ResolutionRequest{
		MinYear: 2020,
		MaxYear: 2023,
	})

	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, 2020+i, res.Year)
		assert.False(t, res.Resolved)
	}
	assert.Empty(t, source.calls)
}

func TestResolveInvertedRangeReturnsNothing(t *testing.T) {
	source := newFakeSource()
	r := New(source, WithClock(fixedClock(2024)))

	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2024,
		MaxYear:   2020,
	})

	assert.Nil(t, results)
	assert.Empty(t, source.calls)
}

func TestResolveMixedYears(t *testing.T) {
	// A multi-year request where one year resolves late, one resolves on the
	// first attempt and one not at all.
	source := newFakeSource()
	source.respond(2021, models.ReportQ3, models.ScopeSeparate, usableRow())
	source.respond(2022, models.ReportAnnual, models.ScopeConsolidated, usableRow())

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2021,
		MaxYear:   2023,
	})

	require.Len(t, results, 3)

	assert.True(t, results[0].Resolved)
	assert.Equal(t, models.ScopeSeparate, results[0].Scope)
	assert.Equal(t, models.ReportQ3, results[0].ReportType)

	assert.True(t, results[1].Resolved)
	assert.Equal(t, models.ScopeConsolidated, results[1].Scope)
	assert.Equal(t, models.ReportAnnual, results[1].ReportType)

	assert.False(t, results[2].Resolved)
}

func TestResolveTwoYearWindow(t *testing.T) {
	// The past year adopts its annual report immediately; the current year
	// exhausts every consolidated candidate and lands on Separate/Q3.
	source := newFakeSource()
	source.respond(2023, models.ReportAnnual, models.ScopeConsolidated, usableRow())
	source.respond(2024, models.ReportQ3, models.ScopeSeparate, usableRow())

	r := New(source, WithClock(fixedClock(2024)))
	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID:  "00126380",
		MinYear:    2023,
		MaxYear:    2024,
		ScopeOrder: []models.Scope{models.ScopeConsolidated, models.ScopeSeparate},
	})

	require.Len(t, results, 2)
	assert.Equal(t, models.YearResult{
		Year:       2023,
		Resolved:   true,
		Scope:      models.ScopeConsolidated,
		ReportType: models.ReportAnnual,
		Rows:       []models.StatementRow{{AccountName: "자산총계", Amount: "1000"}},
	}, results[0])
	assert.True(t, results[1].Resolved)
	assert.Equal(t, models.ScopeSeparate, results[1].Scope)
	assert.Equal(t, models.ReportQ3, results[1].ReportType)

	expected := []fetchCall{
		{2023, models.ReportAnnual, models.ScopeConsolidated},
		{2024, models.ReportQ3, models.ScopeConsolidated},
		{2024, models.ReportQ1, models.ScopeConsolidated},
		{2024, models.ReportHalfYear, models.ScopeConsolidated},
		{2024, models.ReportAnnual, models.ScopeConsolidated},
		{2024, models.ReportQ3, models.ScopeSeparate},
	}
	assert.Equal(t, expected, source.calls)
}

func TestResolveYearsAscending(t *testing.T) {
	source := newFakeSource()
	r := New(source, WithClock(fixedClock(2024)))

	results := r.Resolve(context.Background(), models.ResolutionRequest{
		CompanyID: "00126380",
		MinYear:   2019,
		MaxYear:   2024,
	})

	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, 2019+i, res.Year, fmt.Sprintf("result %d out of order", i))
	}
}
