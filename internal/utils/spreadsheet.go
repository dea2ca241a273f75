package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type, expected .xlsx or .csv")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrNoRows            = errors.New("file contains no data rows")
	ErrTooManyRows       = errors.New("file exceeds the row limit")
	ErrMalformedFile     = errors.New("file could not be read")
)

// ImportColumns header names every upload must carry
var ImportColumns = []string{"month", "year", "energy", "water", "waste", "greenery"}

// templateSample example row written below the template header
var templateSample = []interface{}{1, 2025, 1200, 800, 300, 150}

// ImportRow one validated spreadsheet row. Line is the 1-based row number in the file.
type ImportRow struct {
	Line     int
	Month    int
	Year     int
	Energy   float64
	Water    float64
	Waste    float64
	Greenery float64
}

// RowError locates a bad cell
type RowError struct {
	Row    int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Reason)
}

// ParseImportFile reads an uploaded .xlsx (first sheet) or .csv and validates
// every row. Any invalid row fails the whole file.
func ParseImportFile(filename string, r io.Reader, maxRows int) ([]ImportRow, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return ParseRecords(records, maxRows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrMalformedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %w", ErrMalformedFile, sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", ErrMalformedFile, err)
	}
	return records, nil
}

// ParseRecords validates raw rows; the first row is the header.
func ParseRecords(records [][]string, maxRows int) ([]ImportRow, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	index := make(map[string]int, len(ImportColumns))
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	for _, col := range ImportColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	rows := make([]ImportRow, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, fmt.Errorf("%w (%d)", ErrTooManyRows, maxRows)
		}

		values := make(map[string]float64, len(ImportColumns))
		for _, col := range ImportColumns {
			v, err := parseCell(cell(record, index[col]))
			if err != nil {
				return nil, &RowError{Row: line, Column: col, Reason: err.Error()}
			}
			values[col] = v
		}

		month, year := values["month"], values["year"]
		if month != math.Trunc(month) || month < 1 || month > 12 {
			return nil, &RowError{Row: line, Column: "month", Reason: "must be an integer between 1 and 12"}
		}
		if year != math.Trunc(year) || year < 1900 || year > 9999 {
			return nil, &RowError{Row: line, Column: "year", Reason: "must be an integer between 1900 and 9999"}
		}
		for _, col := range ImportColumns[2:] {
			if values[col] < 0 {
				return nil, &RowError{Row: line, Column: col, Reason: "must not be negative"}
			}
		}

		rows = append(rows, ImportRow{
			Line:     line,
			Month:    int(month),
			Year:     int(year),
			Energy:   values["energy"],
			Water:    values["water"],
			Waste:    values["waste"],
			Greenery: values["greenery"],
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

func cell(record []string, i int) string {
	if i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseCell(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// BuildImportTemplate returns an .xlsx with the header row and one sample row
func BuildImportTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(ImportColumns))
	for i, col := range ImportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	sample := templateSample
	if err := f.SetSheetRow(sheet, "A2", &sample); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
