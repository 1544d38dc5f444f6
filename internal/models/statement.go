// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Scope selects between consolidated and separate financial statements.
// The wire values match the fs_div parameter of the OpenDART API.
type Scope string

const (
	// ScopeConsolidated includes subsidiaries (연결, CFS).
	ScopeConsolidated Scope = "CFS"
	// ScopeSeparate covers the parent entity only (별도, OFS).
	ScopeSeparate Scope = "OFS"
)

// ReportType is the filing cadence of a periodic disclosure.
// The wire values match the reprt_code parameter of the OpenDART API.
type ReportType string

const (
	ReportAnnual   ReportType = "11011" // 사업보고서
	ReportHalfYear ReportType = "11012" // 반기보고서
	ReportQ1       ReportType = "11013" // 1분기보고서
	ReportQ3       ReportType = "11014" // 3분기보고서
)

// Label returns a human-readable name for the report type.
func (r ReportType) Label() string {
	switch r {
	case ReportAnnual:
		return "Annual"
	case ReportHalfYear:
		return "Half-Year"
	case ReportQ1:
		return "Q1"
	case ReportQ3:
		return "Q3"
	}
	return string(r)
}

// StatementRow is a single financial-statement line item: the account label
// and its reported amount for the current period. Amounts stay textual until
// the renderer needs numeric values.
type StatementRow struct {
	AccountName string `csv:"AccountName"`
	Amount      string `csv:"Amount"`
}

// IsUsable reports whether the row carries both a label and an amount.
func (r StatementRow) IsUsable() bool {
	return strings.TrimSpace(r.AccountName) != "" && strings.TrimSpace(r.Amount) != ""
}

// YearResult is the outcome of resolving one fiscal year: either a single
// adopted statement snapshot, or nothing at all. Resolved=false means every
// scope/report-type combination was exhausted without usable data.
type YearResult struct {
	Year       int
	Resolved   bool
	Scope      Scope
	ReportType ReportType
	Rows       []StatementRow
}

// ResolutionRequest describes one statement resolution: which company, which
// fiscal years, in what scope preference order, and any per-year report-type
// pins that suppress the default fallback sequence.
type ResolutionRequest struct {
	CompanyID          string
	MinYear            int
	MaxYear            int
	ScopeOrder         []Scope
	ReportTypeOverride map[int]ReportType
}

// CacheKey returns a deterministic string identifying the full request tuple.
// Every field participates: scope order and overrides change which candidate
// is tried first and therefore which one is adopted.
func (req ResolutionRequest) CacheKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d-%d|", req.CompanyID, req.MinYear, req.MaxYear)
	for _, s := range req.ScopeOrder {
		b.WriteString(string(s))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	years := make([]int, 0, len(req.ReportTypeOverride))
	for y := range req.ReportTypeOverride {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		fmt.Fprintf(&b, "%d=%s,", y, req.ReportTypeOverride[y])
	}
	return b.String()
}

// ScopeOrderFromMode maps the UI-facing scope mode names to a try order.
// Unknown modes fall back to the recommended consolidated-first order.
func ScopeOrderFromMode(mode string) []Scope {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "cfs", "cfs-only":
		return []Scope{ScopeConsolidated}
	case "ofs", "ofs-only":
		return []Scope{ScopeSeparate}
	case "auto-ofs", "auto-ofs-cfs":
		return []Scope{ScopeSeparate, ScopeConsolidated}
	default: // "auto-cfs", "auto-cfs-ofs"
		return []Scope{ScopeConsolidated, ScopeSeparate}
	}
}
