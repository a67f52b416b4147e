package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
)

func day(d int) float64 {
	return chart.TimeBin(time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC))
}

func TestReadJSONArray(t *testing.T) {
	in := `[{"bin": 0, "value": 1}, {"bin": 1, "value": 5}, {"bin": 2, "value": 2}]`
	ds, err := Read(strings.NewReader(in), FormatJSON, "sample")
	require.NoError(t, err)

	assert.Equal(t, "sample", ds.Name)
	assert.False(t, ds.Time)
	assert.Equal(t, []chart.Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}, {Bin: 2, Value: 2}}, ds.Points)
}

func TestReadJSONDates(t *testing.T) {
	in := `{"name": "visits", "points": [{"bin": "2024-01-01", "value": 3}, {"bin": "Jan 2, 2024", "value": 4}]}`
	ds, err := Read(strings.NewReader(in), FormatJSON, "fallback")
	require.NoError(t, err)

	assert.Equal(t, "visits", ds.Name)
	assert.True(t, ds.Time)
	require.Len(t, ds.Points, 2)
	assert.Equal(t, day(1), ds.Points[0].Bin)
	assert.Equal(t, day(2), ds.Points[1].Bin)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"syntax", `[{"bin": 0,`, errors.ErrCodeInvalidFormat},
		{"missing value", `[{"bin": 0}]`, errors.ErrCodeInvalidData},
		{"bad bin", `[{"bin": "soon-ish", "value": 1}]`, errors.ErrCodeInvalidData},
		{"object bin", `[{"bin": {}, "value": 1}]`, errors.ErrCodeInvalidData},
		{"null bin", `[{"bin": null, "value": 1}]`, errors.ErrCodeInvalidData},
		{"missing bin", `[{"value": 1}]`, errors.ErrCodeInvalidData},
		{"null value", `[{"bin": 0, "value": null}]`, errors.ErrCodeInvalidData},
		{"mixed bins", `[{"bin": 1, "value": 1}, {"bin": "2024-01-01", "value": 1}]`, errors.ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), FormatJSON, "x")
			assert.True(t, errors.Is(err, tt.code), "error = %v, want %s", err, tt.code)
		})
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []chart.Point
		time bool
	}{
		{
			name: "no header",
			in:   "0,1\n1,5\n2,2\n",
			want: []chart.Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}, {Bin: 2, Value: 2}},
		},
		{
			name: "header",
			in:   "bin,value\n0, 1\n\n1, 5\n",
			want: []chart.Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}},
		},
		{
			name: "named columns",
			in:   "# exported\ncount,label,date\n3,a,2024-01-01\n4,b,2024-01-02\n",
			want: []chart.Point{{Bin: day(1), Value: 3}, {Bin: day(2), Value: 4}},
			time: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Read(strings.NewReader(tt.in), FormatCSV, "csv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ds.Points)
			assert.Equal(t, tt.time, ds.Time)
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := Read(strings.NewReader("bin,value\n1,abc\n"), FormatCSV, "x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidData))

	_, err = Read(strings.NewReader("bin,value\n1\n"), FormatCSV, "x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidData))
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "bin"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "value"))
	require.NoError(t, f.SetCellValue(sheet, "A2", 0))
	require.NoError(t, f.SetCellValue(sheet, "B2", 1.5))
	require.NoError(t, f.SetCellValue(sheet, "A3", 1))
	require.NoError(t, f.SetCellValue(sheet, "B3", 4))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := Read(bytes.NewReader(buf.Bytes()), FormatXLSX, "book")
	require.NoError(t, err)
	assert.Equal(t, "book", ds.Name)
	assert.Equal(t, []chart.Point{{Bin: 0, Value: 1.5}, {Bin: 1, Value: 4}}, ds.Points)
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := Read(strings.NewReader("not a zip"), FormatXLSX, "x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requests.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n2,3\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "requests", ds.Name)
	assert.Len(t, ds.Points, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	_, err = Load(filepath.Join(dir, "data.parquet"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":  FormatJSON,
		"a.CSV":   FormatCSV,
		"a.txt":   FormatCSV,
		"a.xlsx":  FormatXLSX,
		"/x/y.js": "",
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if want == "" {
			assert.Error(t, err, path)
			continue
		}
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestSort(t *testing.T) {
	ds := &Dataset{Points: []chart.Point{{Bin: 3, Value: 1}, {Bin: 1, Value: 2}, {Bin: 2, Value: 3}}}
	ds.Sort()
	assert.Equal(t, []chart.Point{{Bin: 1, Value: 2}, {Bin: 2, Value: 3}, {Bin: 3, Value: 1}}, ds.Points)
	assert.NoError(t, chart.ValidatePoints(ds.Points))
}
