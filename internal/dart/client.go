// Package dart provides a client for the OpenDART financial disclosure API.
package dart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

// DefaultBaseURL is the production OpenDART endpoint.
const DefaultBaseURL = "https://opendart.fss.or.kr"

// statusOK is the DART status code for a successful response.
// statusNoData is returned when no disclosure exists for the query.
const (
	statusOK     = "000"
	statusNoData = "013"
)

var (
	// ErrNoData indicates the API answered normally but holds no disclosure
	// for the requested combination.
	ErrNoData = errors.New("dart: no data for requested combination")
	// ErrMissingKey indicates the client was built without an API key.
	ErrMissingKey = errors.New("dart: API key is not set")
)

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Client talks to the OpenDART API. The API key is an explicit field; there
// is no package-level credential.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets the per-call timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// NewClient creates an OpenDART client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statementResponse mirrors the fnlttSinglAcntAll.json payload. Only the row
// fields this application reads are mapped; the API returns many more.
type statementResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	List    []struct {
		AccountName   string `json:"account_nm"`
		CurrentAmount string `json:"thstrm_amount"`
	} `json:"list"`
}

// FetchStatement retrieves the full single-company financial statement for
// one (year, report type, scope) combination. It returns ErrNoData when the
// API reports no disclosure, and the rows exactly as the API sent them
// otherwise; normalization is the caller's concern.
func (c *Client) FetchStatement(ctx context.Context, companyID string, year int, reportType models.ReportType, scope models.Scope) ([]models.StatementRow, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("crtfc_key", c.apiKey)
	q.Set("corp_code", companyID)
	q.Set("bsns_year", strconv.Itoa(year))
	q.Set("reprt_code", string(reportType))
	q.Set("fs_div", string(scope))

	var out statementResponse
	if err := c.getJSON(ctx, "/api/fnlttSinglAcntAll.json", q, &out); err != nil {
		return nil, err
	}

	if out.Status == statusNoData {
		return nil, ErrNoData
	}
	if out.Status != statusOK {
		return nil, fmt.Errorf("dart: status %s: %s", out.Status, out.Message)
	}
	if len(out.List) == 0 {
		return nil, ErrNoData
	}

	rows := make([]models.StatementRow, 0, len(out.List))
	for _, item := range out.List {
		rows = append(rows, models.StatementRow{
			AccountName: item.AccountName,
			Amount:      item.CurrentAmount,
		})
	}
	return rows, nil
}

// getJSON performs a GET against the given API path and decodes the JSON
// response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("dart: failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("dart: request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dart: unexpected HTTP status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("dart: failed to decode response: %w", err)
	}
	return nil
}

// get performs a GET against the given API path and returns the raw body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dart: failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dart: request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dart: unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dart: failed to read response body: %w", err)
	}
	return body, nil
}
