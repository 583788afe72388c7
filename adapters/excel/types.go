package excel

// RawRowData represents a row of raw spreadsheet data as header -> cell pairs
type RawRowData map[string]string

// ExcelData represents the complete raw table before typing
type ExcelData struct {
	Headers []string     // Column headers as they appear in the file
	Rows    []RawRowData // Data rows
}

// Column names of the body measurement table
const (
	ColumnGender = "Gender"
	ColumnHeight = "Height"
	ColumnWeight = "Weight"
	ColumnIndex  = "Index"
)

// requiredColumns must be present; Gender is optional and carried through unused
var requiredColumns = []string{ColumnHeight, ColumnWeight, ColumnIndex}
