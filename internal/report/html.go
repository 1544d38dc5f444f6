package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"jwyoo/krx-report/internal/config"
)

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Data is everything the HTML report needs.
type Data struct {
	CompanyName             string
	GeneratedAt             time.Time
	PriceSeries             Series
	StatementSeries         Series
	DefaultPriceMetrics     []string
	DefaultStatementMetrics []string
	ExcelFile               string
	Insight                 string
}

// templateContext is Data with the series pre-marshaled for the script block.
type templateContext struct {
	Data
	Generated         string
	PriceJSON         template.JS
	StatementJSON     template.JS
	PriceDefaults     template.JS
	StatementDefaults template.JS
}

// Renderer writes the Chart.js HTML report.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a report renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Render writes the full HTML report to w.
func (r *Renderer) Render(w io.Writer, data Data) error {
	priceJSON, err := marshalJS(data.PriceSeries)
	if err != nil {
		return fmt.Errorf("report: failed to marshal price series: %w", err)
	}
	statementJSON, err := marshalJS(data.StatementSeries)
	if err != nil {
		return fmt.Errorf("report: failed to marshal statement series: %w", err)
	}
	priceDefaults, err := marshalJS(nonNil(data.DefaultPriceMetrics))
	if err != nil {
		return fmt.Errorf("report: failed to marshal price defaults: %w", err)
	}
	statementDefaults, err := marshalJS(nonNil(data.DefaultStatementMetrics))
	if err != nil {
		return fmt.Errorf("report: failed to marshal statement defaults: %w", err)
	}

	ctx := templateContext{
		Data:              data,
		Generated:         data.GeneratedAt.Format("2006-01-02 15:04:05"),
		PriceJSON:         priceJSON,
		StatementJSON:     statementJSON,
		PriceDefaults:     priceDefaults,
		StatementDefaults: statementDefaults,
	}

	if err := r.tmpl.Execute(w, ctx); err != nil {
		return fmt.Errorf("report: failed to execute template: %w", err)
	}

	log.WithFields(logrus.Fields{
		"company":           data.CompanyName,
		"price_metrics":     len(data.PriceSeries),
		"statement_metrics": len(data.StatementSeries),
	}).Info("Rendered HTML report")
	return nil
}

// marshalJS marshals v for embedding inside the report's script block.
func marshalJS(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// nonNil keeps empty metric lists rendering as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
