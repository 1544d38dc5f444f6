// Package krx provides a client for the KRX market-data service: the full
// ticker listing, daily OHLCV history and per-share fundamental indicators.
package krx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

// DefaultBaseURL is the production KRX data endpoint.
const DefaultBaseURL = "http://data.krx.co.kr"

// generatePath is the shared JSON endpoint; the bld parameter selects the
// actual dataset.
const generatePath = "/comm/bldAttendant/getJsonData.cmd"

// Dataset identifiers on the KRX data service.
const (
	bldListing     = "dbms/MDC/STAT/standard/MDCSTAT01901"
	bldDaily       = "dbms/MDC/STAT/standard/MDCSTAT01701"
	bldFundamental = "dbms/MDC/STAT/standard/MDCSTAT03502"
)

// wireDateLayout is the trade-date format used in responses.
const wireDateLayout = "2006/01/02"

// paramDateLayout is the date format for request parameters.
const paramDateLayout = "20060102"

// ErrTickerNotFound indicates no listing matched the requested name.
var ErrTickerNotFound = errors.New("krx: ticker not found")

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Client talks to the KRX market-data service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// NewClient creates a KRX market-data client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listingResponse struct {
	Rows []struct {
		Ticker string `json:"ISU_SRT_CD"`
		Name   string `json:"ISU_ABBRV"`
	} `json:"OutBlock_1"`
}

type dailyResponse struct {
	Rows []struct {
		TradeDate string `json:"TRD_DD"`
		Open      string `json:"TDD_OPNPRC"`
		High      string `json:"TDD_HGPRC"`
		Low       string `json:"TDD_LWPRC"`
		Close     string `json:"TDD_CLSPRC"`
		Volume    string `json:"ACC_TRDVOL"`
	} `json:"OutBlock_1"`
}

type fundamentalResponse struct {
	Rows []struct {
		TradeDate string `json:"TRD_DD"`
		PER       string `json:"PER"`
		PBR       string `json:"PBR"`
		DIV       string `json:"DIV"`
		BPS       string `json:"BPS"`
	} `json:"OutBlock_1"`
}

// Listings returns the full ticker list across all markets.
func (c *Client) Listings(ctx context.Context) ([]models.Listing, error) {
	q := url.Values{}
	q.Set("bld", bldListing)
	q.Set("mktId", "ALL")

	var out listingResponse
	if err := c.getJSON(ctx, q, &out); err != nil {
		return nil, err
	}

	listings := make([]models.Listing, 0, len(out.Rows))
	for _, row := range out.Rows {
		listings = append(listings, models.Listing{
			Ticker: strings.TrimSpace(row.Ticker),
			Name:   strings.TrimSpace(row.Name),
		})
	}
	return listings, nil
}

// Search returns the listings whose name contains the given substring.
func (c *Client) Search(ctx context.Context, name string) ([]models.Listing, error) {
	listings, err := c.Listings(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.TrimSpace(name)
	var matches []models.Listing
	for _, l := range listings {
		if strings.Contains(l.Name, needle) {
			matches = append(matches, l)
		}
	}
	return matches, nil
}

// Lookup returns the single listing whose name matches exactly, or
// ErrTickerNotFound.
func (c *Client) Lookup(ctx context.Context, name string) (models.Listing, error) {
	listings, err := c.Listings(ctx)
	if err != nil {
		return models.Listing{}, err
	}

	want := strings.TrimSpace(name)
	for _, l := range listings {
		if l.Name == want {
			return l, nil
		}
	}
	return models.Listing{}, fmt.Errorf("%w: %s", ErrTickerNotFound, name)
}

// FetchDaily returns the merged OHLCV and fundamental history for one ticker
// over [from, to], ascending by date. Days missing from the fundamental
// dataset keep zero-valued indicators.
func (c *Client) FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceDay, error) {
	q := url.Values{}
	q.Set("bld", bldDaily)
	q.Set("isuCd", ticker)
	q.Set("strtDd", from.Format(paramDateLayout))
	q.Set("endDd", to.Format(paramDateLayout))

	var daily dailyResponse
	if err := c.getJSON(ctx, q, &daily); err != nil {
		return nil, err
	}

	q.Set("bld", bldFundamental)
	var fundamental fundamentalResponse
	if err := c.getJSON(ctx, q, &fundamental); err != nil {
		return nil, err
	}

	indicators := make(map[string]struct{ per, pbr, div, bps decimal.Decimal }, len(fundamental.Rows))
	for _, row := range fundamental.Rows {
		indicators[row.TradeDate] = struct{ per, pbr, div, bps decimal.Decimal }{
			per: parseDecimal(row.PER),
			pbr: parseDecimal(row.PBR),
			div: parseDecimal(row.DIV),
			bps: parseDecimal(row.BPS),
		}
	}

	days := make([]models.PriceDay, 0, len(daily.Rows))
	for _, row := range daily.Rows {
		date, err := time.Parse(wireDateLayout, row.TradeDate)
		if err != nil {
			log.WithField("trade_date", row.TradeDate).Warn("Skipping row with unparseable trade date")
			continue
		}
		day := models.PriceDay{
			Date:   date,
			Open:   parseDecimal(row.Open),
			High:   parseDecimal(row.High),
			Low:    parseDecimal(row.Low),
			Close:  parseDecimal(row.Close),
			Volume: parseInt(row.Volume),
		}
		if ind, ok := indicators[row.TradeDate]; ok {
			day.PriceEarningsRatio = ind.per
			day.PriceBookRatio = ind.pbr
			day.DividendYield = ind.div
			day.BookValuePerShare = ind.bps
		}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// getJSON performs a GET with the given query against the data endpoint.
func (c *Client) getJSON(ctx context.Context, query url.Values, out interface{}) error {
	u := c.baseURL + generatePath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("krx: failed to build request: %w", err)
	}
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("krx: request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("krx: unexpected HTTP status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("krx: failed to decode response: %w", err)
	}
	return nil
}

// parseDecimal reads a KRX numeric string. Thousands separators are
// stripped; "-" marks a missing value and parses to zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseInt reads a KRX integer string with the same conventions.
func parseInt(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
