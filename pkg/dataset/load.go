package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
)

// Format is a data file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported data file %q (want .json, .csv or .xlsx)", path)
}

// Load reads a data file. The dataset is named after the file.
func Load(path string) (*Dataset, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format, NameFromPath(path))
}

// Read parses data in the given format.
//
// JSON is either an array of {"bin", "value"} objects or an object with
// "name", "time" and "points". CSV and XLSX take the first two columns (or
// the columns headed "bin" and "value") of the first sheet; a header row is
// detected and skipped. Bins may be numbers or date strings; date bins turn
// the dataset into a time series.
func Read(r io.Reader, format Format, name string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = readJSON(r)
	case FormatCSV:
		ds, err = readCSV(r)
	case FormatXLSX:
		ds, err = readXLSX(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if ds.Name == "" {
		ds.Name = name
	}
	return ds, nil
}

type jsonPoint struct {
	Bin   json.RawMessage `json:"bin"`
	Value *float64        `json:"value"`
}

type jsonDocument struct {
	Name   string      `json:"name"`
	Time   bool        `json:"time"`
	Points []jsonPoint `json:"points"`
}

func readJSON(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read json")
	}
	raw = bytes.TrimSpace(raw)

	var doc jsonDocument
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &doc.Points)
	} else {
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse json")
	}

	var b binParser
	ds := &Dataset{Name: doc.Name, Points: make([]chart.Point, 0, len(doc.Points))}
	for i, p := range doc.Points {
		if p.Value == nil {
			return nil, errors.New(errors.ErrCodeInvalidData, "point %d has no value", i)
		}
		bin, err := b.parseJSON(p.Bin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "point %d", i)
		}
		ds.Points = append(ds.Points, chart.Point{Bin: bin, Value: *p.Value})
	}
	ds.Time = doc.Time || b.time
	return ds, nil
}

func readCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse csv")
	}
	return fromRows(rows)
}

func readXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %s", sheets[0])
	}
	return fromRows(rows)
}

// fromRows converts tabular rows into points. A first row whose value
// column is not numeric is treated as a header and may name the columns.
func fromRows(rows [][]string) (*Dataset, error) {
	binCol, valCol := 0, 1
	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		for i, h := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "bin", "x", "date", "time":
				binCol = i
			case "value", "y", "count":
				valCol = i
			}
		}
		start = 1
	}

	var b binParser
	ds := &Dataset{}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		if len(row) <= max(binCol, valCol) {
			return nil, errors.New(errors.ErrCodeInvalidData, "row %d: want at least %d columns, got %d", i+1, max(binCol, valCol)+1, len(row))
		}
		bin, err := b.parse(row[binCol])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "row %d", i+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valCol]), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "row %d: value %q", i+1, row[valCol])
		}
		ds.Points = append(ds.Points, chart.Point{Bin: bin, Value: v})
	}
	ds.Time = b.time
	return ds, nil
}

func isHeader(row []string) bool {
	for _, c := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err == nil {
			return false
		}
	}
	return len(row) > 0
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// binParser parses bins and enforces that a dataset does not mix numeric
// and date bins.
type binParser struct {
	seen bool
	time bool
}

func (b *binParser) parseJSON(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New(errors.ErrCodeInvalidData, "bin is missing")
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return b.record(n, false)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errors.New(errors.ErrCodeInvalidData, "bin must be a number or a date string, got %s", string(raw))
	}
	return b.parse(s)
}

func (b *binParser) parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return b.record(n, false)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidData, err, "bin %q is neither a number nor a date", s)
	}
	return b.record(chart.TimeBin(t), true)
}

func (b *binParser) record(v float64, isTime bool) (float64, error) {
	if b.seen && b.time != isTime {
		return 0, errors.New(errors.ErrCodeInvalidData, "bins mix numbers and dates")
	}
	b.seen, b.time = true, isTime
	return v, nil
}
