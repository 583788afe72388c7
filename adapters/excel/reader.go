package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bmireport/domain/bmi"
	"bmireport/domain/core"
	"bmireport/domain/dataset"
	"bmireport/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType dataset.Source // empty for unsupported extensions
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return &DataReader{
		filePath: filePath,
		fileType: fileTypeFor(filePath),
		logger:   internal.DefaultLogger,
	}
}

// WithLogger overrides the logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

func fileTypeFor(path string) dataset.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.SourceCSV
	case ".xlsx", ".xlsm":
		return dataset.SourceExcel
	default:
		return ""
	}
}

// Load reads the file and converts it to a typed dataset
func (r *DataReader) Load() (*dataset.Dataset, error) {
	raw, err := r.ReadData()
	if err != nil {
		return nil, err
	}

	ds, err := r.ToDataset(raw)
	if err != nil {
		return nil, err
	}
	ds.Name = strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	ds.Path = r.filePath
	return ds, nil
}

// ReadData reads data from Excel or CSV files into raw structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(string(r.fileType)), r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.filePath, err)
	}
	defer f.Close()

	return r.ReadFrom(f)
}

// ReadFrom parses a CSV or XLSX stream according to the reader's file type
func (r *DataReader) ReadFrom(src io.Reader) (*ExcelData, error) {
	switch r.fileType {
	case dataset.SourceCSV:
		return r.readCSVData(src)
	case dataset.SourceExcel:
		return r.readExcelData(src)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, filepath.Ext(r.filePath))
	}
}

// readExcelData reads data from the first sheet
func (r *DataReader) readExcelData(src io.Reader) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrInsufficientData)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData(src io.Reader) (*ExcelData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrInsufficientData)
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(string(r.fileType)), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// ToDataset types the raw table. Header names match case-insensitively. A cell
// that does not parse becomes NaN (Index becomes -1) so the row is flagged
// invalid downstream instead of being dropped.
func (r *DataReader) ToDataset(data *ExcelData) (*dataset.Dataset, error) {
	columns, err := resolveColumns(data.Headers)
	if err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{
		Source:   r.fileType,
		Records:  make([]bmi.Record, 0, len(data.Rows)),
		LoadedAt: time.Now(),
	}

	for i, row := range data.Rows {
		line := i + 2 // 1-based, after the header
		rec := bmi.Record{Gender: row[columns[ColumnGender]]}

		rec.Height = parseFloatCell(row[columns[ColumnHeight]])
		rec.Weight = parseFloatCell(row[columns[ColumnWeight]])
		rec.Index = parseIndexCell(row[columns[ColumnIndex]])

		if math.IsNaN(rec.Height) || math.IsNaN(rec.Weight) || rec.Index < 0 {
			msg := fmt.Sprintf("row %d: unparseable cell (Height=%q Weight=%q Index=%q)", line,
				row[columns[ColumnHeight]], row[columns[ColumnWeight]], row[columns[ColumnIndex]])
			ds.Warnings = append(ds.Warnings, msg)
			r.logger.Warn("[DataReader] %s", msg)
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// resolveColumns maps canonical column names to the header spelling in the file
func resolveColumns(headers []string) (map[string]string, error) {
	byLower := make(map[string]string, len(headers))
	for _, h := range headers {
		byLower[strings.ToLower(h)] = h
	}

	columns := make(map[string]string, len(requiredColumns)+1)
	for _, name := range requiredColumns {
		actual, ok := byLower[strings.ToLower(name)]
		if !ok {
			return nil, core.NewMissingColumnError(name)
		}
		columns[name] = actual
	}
	columns[ColumnGender] = byLower[strings.ToLower(ColumnGender)]
	return columns, nil
}

func parseFloatCell(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseIndexCell accepts "3" and "3.0"; anything else, or a value off the 0..5
// scale, yields -1.
func parseIndexCell(cell string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v != math.Trunc(v) {
		return -1
	}
	idx := int(v)
	if !bmi.Category(idx).Valid() {
		return -1
	}
	return idx
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
