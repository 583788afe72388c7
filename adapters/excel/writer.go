package excel

import (
	"fmt"
	"io"
	"math"

	"bmireport/app"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	SheetData    = "Data"
	SheetMapping = "Mapping"
	SheetSummary = "Summary"
)

// ReportWriter exports a report as an XLSX workbook
type ReportWriter struct{}

// NewReportWriter creates a report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write renders the report into a workbook and streams it to w
func (rw *ReportWriter) Write(w io.Writer, report *app.Report) error {
	f, err := rw.Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path
func (rw *ReportWriter) SaveAs(path string, report *app.Report) error {
	f, err := rw.Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// Workbook builds the three-sheet workbook. The caller closes it.
func (rw *ReportWriter) Workbook(report *app.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetData); err != nil {
		f.Close()
		return nil, err
	}
	if err := rw.writeData(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("data sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetMapping); err != nil {
		f.Close()
		return nil, err
	}
	if err := rw.writeMapping(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("mapping sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	if err := rw.writeSummary(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("summary sheet: %w", err)
	}

	return f, nil
}

func (rw *ReportWriter) writeData(f *excelize.File, report *app.Report) error {
	header := []interface{}{ColumnGender, ColumnHeight, ColumnWeight, ColumnIndex, "BMI", "Computed", "Flag", "Reason"}
	if err := f.SetSheetRow(SheetData, "A1", &header); err != nil {
		return err
	}

	for i, r := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var computed interface{}
		if !math.IsNaN(r.BMI) {
			computed = int(r.Computed)
		}
		row := []interface{}{r.Gender, cellValue(r.Height), cellValue(r.Weight), r.Index,
			cellValue(r.BMI), computed, string(r.Flag), r.Reason}
		if err := f.SetSheetRow(SheetData, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (rw *ReportWriter) writeMapping(f *excelize.File, report *app.Report) error {
	header := []interface{}{ColumnHeight, ColumnWeight, "BMI", ColumnIndex}
	if err := f.SetSheetRow(SheetMapping, "A1", &header); err != nil {
		return err
	}

	for i, c := range report.Grid {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Height, c.Weight, c.BMI, int(c.Index)}
		if err := f.SetSheetRow(SheetMapping, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (rw *ReportWriter) writeSummary(f *excelize.File, report *app.Report) error {
	a := report.Agreement
	lines := [][]interface{}{
		{"Report", report.ID.String()},
		{"Dataset", report.DatasetName},
		{"Table hash", report.TableHash.String()},
		{"Generated", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{},
		{"Rows", a.Total},
		{"Included", a.Included},
		{"Excluded", a.Excluded},
		{"Invalid", a.Invalid},
		{"Inclusion rate", a.InclusionRate},
		{},
		{"Method", "Coefficient", "p-value", "n", "Signal"},
	}
	for _, c := range report.Correlations {
		lines = append(lines, []interface{}{c.Method, cellValue(c.Rounded), cellValue(c.PValue), c.SampleSize, c.Signal})
	}
	inc := report.IncludedSpearman
	lines = append(lines,
		[]interface{}{"spearman (included rows)", cellValue(inc.Rounded), cellValue(inc.PValue), inc.SampleSize, inc.Signal},
		[]interface{}{},
		[]interface{}{"Category", "Label", "n", "Mean BMI", "Std dev", "Min", "Median", "Max"},
	)
	for _, p := range report.ProfilesComputed {
		s := p.Profile.Summary
		lines = append(lines, []interface{}{p.Category, p.Label, s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.Max})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := line
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue leaves NaN and Inf cells empty; excelize would write them as text
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
