// Package export writes price history and resolved statements to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Delimiter is the CSV output delimiter, configurable via SetDelimiter.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// priceRecord is the flattened CSV shape of a PriceDay.
type priceRecord struct {
	Date               string `csv:"Date"`
	Open               string `csv:"Open"`
	High               string `csv:"High"`
	Low                string `csv:"Low"`
	Close              string `csv:"Close"`
	Volume             int64  `csv:"Volume"`
	DividendYield      string `csv:"DividendYield"`
	BookValuePerShare  string `csv:"BookValuePerShare"`
	PriceEarningsRatio string `csv:"PriceEarningsRatio"`
	PriceBookRatio     string `csv:"PriceBookRatio"`
}

// StatementRecord is one resolved statement row with its provenance.
type StatementRecord struct {
	Year        int    `csv:"Year"`
	Scope       string `csv:"Scope"`
	ReportType  string `csv:"ReportType"`
	AccountName string `csv:"AccountName"`
	Amount      string `csv:"Amount"`
}

// WritePricesToCSV writes daily price history to csvFile.
func WritePricesToCSV(days []models.PriceDay, csvFile string) error {
	records := make([]priceRecord, 0, len(days))
	for _, day := range days {
		records = append(records, priceRecord{
			Date:               day.Date.Format("2006-01-02"),
			Open:               day.Open.String(),
			High:               day.High.String(),
			Low:                day.Low.String(),
			Close:              day.Close.String(),
			Volume:             day.Volume,
			DividendYield:      day.DividendYield.String(),
			BookValuePerShare:  day.BookValuePerShare.String(),
			PriceEarningsRatio: day.PriceEarningsRatio.String(),
			PriceBookRatio:     day.PriceBookRatio.String(),
		})
	}
	return writeCSV(records, csvFile)
}

// WriteStatementsToCSV flattens year results into provenance-tagged rows and
// writes them to csvFile. Unresolved years contribute no rows.
func WriteStatementsToCSV(results []models.YearResult, csvFile string) error {
	var records []StatementRecord
	for _, res := range results {
		if !res.Resolved {
			continue
		}
		for _, row := range res.Rows {
			records = append(records, StatementRecord{
				Year:        res.Year,
				Scope:       string(res.Scope),
				ReportType:  string(res.ReportType),
				AccountName: row.AccountName,
				Amount:      row.Amount,
			})
		}
	}
	return writeCSV(records, csvFile)
}

// writeCSV marshals records to csvFile with the configured delimiter,
// creating parent directories as needed.
func writeCSV(records interface{}, csvFile string) error {
	if err := os.MkdirAll(filepath.Dir(csvFile), 0755); err != nil {
		return fmt.Errorf("export: failed to create output directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("export: failed to create CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})

	if err := gocsv.MarshalFile(records, file); err != nil {
		return fmt.Errorf("export: failed to write CSV: %w", err)
	}

	log.WithField("file", csvFile).Info("Wrote CSV file")
	return nil
}
