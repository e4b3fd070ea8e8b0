package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

// Required column sets for the two mandatory uploads.
var (
	EnrollmentColumns = []string{"date", "state", "district", "pincode", "age_5_17"}
	BiometricColumns  = []string{"date", "state", "district", "pincode", "bio_age_5_17"}
)

// Day-first layouts, in the order they are tried. Indian exports use
// DD-MM-YYYY; slash separators and single-digit day/month also occur.
var dateLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
}

// LoadCSV parses raw CSV bytes into a Table. Header names are trimmed before
// validation. Fails with SchemaError when any required column is absent,
// EmptyInputError when there are no data rows, and ParseError on a malformed
// date. The pincode column is always kept as a string. Every column other
// than the four key columns is read as a numeric count; blank or non-numeric
// cells count as 0. The caller decides whether to commit the result to the
// dataset store.
func LoadCSV(data []byte, required []string, fileType string) (*models.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV headers: %w", fileType, err)
	}

	columns := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		columns[i] = name
		index[name] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{FileType: fileType, Missing: missing, Found: columns}
	}

	table := &models.Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows; short rows read as blanks below.
			continue
		}

		row := models.Row{Counts: make(map[string]int64)}
		for i, name := range columns {
			var cell string
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			switch name {
			case "date":
				date, perr := parseDate(cell)
				if perr != nil {
					return nil, &ParseError{FileType: fileType, Column: "date", Value: cell}
				}
				row.Date = date
			case "state":
				row.State = cell
			case "district":
				row.District = cell
			case "pincode":
				row.Pincode = cell
			default:
				row.Counts[name] = parseCount(cell)
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, &EmptyInputError{FileType: fileType}
	}
	return table, nil
}

// parseDate interprets a cell day-first and normalizes to UTC midnight so
// dates compare and group cleanly.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseCount reads a numeric cell, treating blanks and junk as zero the way
// the analysis fills absent values.
func parseCount(value string) int64 {
	if value == "" {
		return 0
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int64(f)
	}
	return 0
}
