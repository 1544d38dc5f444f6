// Package excel writes the analysis workbook: one sheet of price history and
// one sheet per resolved fiscal year.
package excel

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

// priceSheet is the name of the price-history sheet.
const priceSheet = "Stock_Data"

// noDataMessage fills the single row of a sheet for an unresolved year.
const noDataMessage = "데이터 없음"

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteWorkbook writes price history and per-year statement sheets to path.
func WriteWorkbook(path string, days []models.PriceDay, results []models.YearResult) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := writePriceSheet(f, days); err != nil {
		return err
	}
	for _, res := range results {
		if err := writeStatementSheet(f, res); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: failed to save workbook: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":  path,
		"days":  len(days),
		"years": len(results),
	}).Info("Wrote Excel workbook")
	return nil
}

func writePriceSheet(f *excelize.File, days []models.PriceDay) error {
	f.SetSheetName("Sheet1", priceSheet)

	headers := append([]string{"Date"}, models.PriceMetricNames()...)
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("excel: invalid header coordinates: %w", err)
		}
		if err := f.SetCellValue(priceSheet, cell, h); err != nil {
			return fmt.Errorf("excel: failed to write header: %w", err)
		}
	}

	for i, day := range days {
		row := i + 2
		if err := f.SetCellValue(priceSheet, fmt.Sprintf("A%d", row), day.Date.Format("2006-01-02")); err != nil {
			return fmt.Errorf("excel: failed to write date: %w", err)
		}
		for col, metric := range models.PriceMetricNames() {
			v, _ := day.MetricValue(metric)
			cell, err := excelize.CoordinatesToCellName(col+2, row)
			if err != nil {
				return fmt.Errorf("excel: invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(priceSheet, cell, v); err != nil {
				return fmt.Errorf("excel: failed to write value: %w", err)
			}
		}
	}
	return nil
}

func writeStatementSheet(f *excelize.File, res models.YearResult) error {
	sheet := fmt.Sprintf("FS_%d", res.Year)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: failed to create sheet %s: %w", sheet, err)
	}

	if !res.Resolved {
		if err := f.SetCellValue(sheet, "A1", noDataMessage); err != nil {
			return fmt.Errorf("excel: failed to write placeholder: %w", err)
		}
		return nil
	}

	if err := f.SetCellValue(sheet, "A1", "AccountName"); err != nil {
		return fmt.Errorf("excel: failed to write header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Amount"); err != nil {
		return fmt.Errorf("excel: failed to write header: %w", err)
	}
	if err := f.SetCellValue(sheet, "C1", fmt.Sprintf("%s / %s", res.Scope, res.ReportType.Label())); err != nil {
		return fmt.Errorf("excel: failed to write provenance: %w", err)
	}

	for i, row := range res.Rows {
		n := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", n), row.AccountName); err != nil {
			return fmt.Errorf("excel: failed to write account name: %w", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", n), row.Amount); err != nil {
			return fmt.Errorf("excel: failed to write amount: %w", err)
		}
	}
	return nil
}
