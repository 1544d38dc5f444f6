package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is one entry of the exchange's full ticker list.
type Listing struct {
	Ticker string `csv:"Ticker"`
	Name   string `csv:"Name"`
}

// PriceDay is one trading day of OHLCV data merged with the per-share
// fundamental indicators published alongside it.
type PriceDay struct {
	Date               time.Time       `csv:"Date"`
	Open               decimal.Decimal `csv:"Open"`
	High               decimal.Decimal `csv:"High"`
	Low                decimal.Decimal `csv:"Low"`
	Close              decimal.Decimal `csv:"Close"`
	Volume             int64           `csv:"Volume"`
	DividendYield      decimal.Decimal `csv:"DividendYield"`
	BookValuePerShare  decimal.Decimal `csv:"BookValuePerShare"`
	PriceEarningsRatio decimal.Decimal `csv:"PriceEarningsRatio"`
	PriceBookRatio     decimal.Decimal `csv:"PriceBookRatio"`
}

// PriceMetricNames lists the numeric PriceDay fields in presentation order.
// The report renderer uses this to build one chart series per metric.
func PriceMetricNames() []string {
	return []string{
		"Open", "High", "Low", "Close", "Volume",
		"DividendYield", "BookValuePerShare", "PriceEarningsRatio", "PriceBookRatio",
	}
}

// MetricValue returns the named metric as a float64. The second return value
// is false for unknown metric names.
func (p PriceDay) MetricValue(name string) (float64, bool) {
	switch name {
	case "Open":
		return p.Open.InexactFloat64(), true
	case "High":
		return p.High.InexactFloat64(), true
	case "Low":
		return p.Low.InexactFloat64(), true
	case "Close":
		return p.Close.InexactFloat64(), true
	case "Volume":
		return float64(p.Volume), true
	case "DividendYield":
		return p.DividendYield.InexactFloat64(), true
	case "BookValuePerShare":
		return p.BookValuePerShare.InexactFloat64(), true
	case "PriceEarningsRatio":
		return p.PriceEarningsRatio.InexactFloat64(), true
	case "PriceBookRatio":
		return p.PriceBookRatio.InexactFloat64(), true
	}
	return 0, false
}
