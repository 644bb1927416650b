// Package excel exports lab summaries as xlsx workbooks for review outside
// the tooling.
package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"detectlab/domain/core"
	"detectlab/domain/report"
	"detectlab/domain/signal"
)

// SummaryWriter renders suite and signal summaries into a workbook
type SummaryWriter struct{}

// NewSummaryWriter creates a summary writer
func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// WriteSuiteSummary writes a suite summary workbook to path. One sheet of
// per-protocol rows plus an indicator frequency sheet.
func (w *SummaryWriter) WriteSuiteSummary(summary report.SuiteSummary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Protocols"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Protocol", "Runs", "Avg Anomaly", "Max Anomaly", "Follow-ups"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	keys := make([]core.ProtocolKey, 0, len(summary.PerProtocol))
	for k := range summary.PerProtocol {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for i, key := range keys {
		ps := summary.PerProtocol[key]
		row := i + 2
		values := []interface{}{key.String(), ps.Runs, ps.AvgAnomalyScore, ps.MaxAnomalyScore, ps.FollowUps}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	const indicatorSheet = "Indicators"
	if _, err := f.NewSheet(indicatorSheet); err != nil {
		return err
	}
	if err := f.SetCellValue(indicatorSheet, "A1", "Indicator"); err != nil {
		return err
	}
	if err := f.SetCellValue(indicatorSheet, "B1", "Count"); err != nil {
		return err
	}
	for i, name := range summary.TopIndicators(len(summary.Indicators)) {
		row := i + 2
		if err := f.SetCellValue(indicatorSheet, fmt.Sprintf("A%d", row), name); err != nil {
			return err
		}
		if err := f.SetCellValue(indicatorSheet, fmt.Sprintf("B%d", row), summary.Indicators[name]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteSignalSummary writes a signal summary workbook to path
func (w *SummaryWriter) WriteSignalSummary(summary report.SignalSummary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Signals"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Total Signals", summary.Total},
		{"High Priority", summary.HighPriority},
		{"Mean Confidence", summary.MeanConfidence},
		{"Max Confidence", summary.MaxConfidence},
		{"P90 Confidence", summary.P90Confidence},
		{"Confidence StdDev", summary.StdDev},
		{"Histogram Low", summary.Histogram.Low},
		{"Histogram Medium", summary.Histogram.Medium},
		{"Histogram High", summary.Histogram.High},
	}

	categories := make([]string, 0, len(summary.ByCategory))
	for k := range summary.ByCategory {
		categories = append(categories, string(k))
	}
	sort.Strings(categories)
	for _, cat := range categories {
		rows = append(rows, []interface{}{"Category " + cat, summary.ByCategory[signal.CategoryKey(cat)]})
	}

	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
