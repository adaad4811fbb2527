package workbook_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	customerrors "mawsool-planner/errors"
	"mawsool-planner/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type sheetDef struct {
	name string
	rows [][]interface{}
}

// buildWorkbook assembles an in-memory xlsx with the given sheets in order.
func buildWorkbook(t *testing.T, sheets []sheetDef) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			assert.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			assert.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadMatrices(t *testing.T) {
	names := workbook.DefaultSheetNames()

	tests := map[string]struct {
		sheets   []sheetDef
		expCalls workbook.Matrix
		expAHT   workbook.Matrix
	}{
		"NamedTabs": {
			sheets: []sheetDef{
				{name: "Calls", rows: [][]interface{}{
					{"Hour", "Sun", "Mon"},
					{9, 10, 12},
				}},
				{name: "AHT", rows: [][]interface{}{
					{"Hour", "Sun", "Mon"},
					{9, 300, 320},
				}},
			},
			expCalls: workbook.Matrix{{"Hour", "Sun", "Mon"}, {"9", "10", "12"}},
			expAHT:   workbook.Matrix{{"Hour", "Sun", "Mon"}, {"9", "300", "320"}},
		},
		"NamedTabsBeatPosition": {
			// tabs sit in swapped positions; exact names still decide
			sheets: []sheetDef{
				{name: "AHT", rows: [][]interface{}{{9, 300}}},
				{name: "Calls", rows: [][]interface{}{{9, 10}}},
			},
			expCalls: workbook.Matrix{{"9", "10"}},
			expAHT:   workbook.Matrix{{"9", "300"}},
		},
		"PositionalFallback": {
			sheets: []sheetDef{
				{name: "Week Data", rows: [][]interface{}{{9, 10}}},
				{name: "Handle Times", rows: [][]interface{}{{9, 300}}},
			},
			expCalls: workbook.Matrix{{"9", "10"}},
			expAHT:   workbook.Matrix{{"9", "300"}},
		},
		"MixedResolution": {
			// AHT matches by name, calls falls back to the first tab
			sheets: []sheetDef{
				{name: "Volumes", rows: [][]interface{}{{9, 10}}},
				{name: "AHT", rows: [][]interface{}{{9, 300}}},
			},
			expCalls: workbook.Matrix{{"9", "10"}},
			expAHT:   workbook.Matrix{{"9", "300"}},
		},
		"ExtraTabsIgnored": {
			sheets: []sheetDef{
				{name: "Calls", rows: [][]interface{}{{9, 10}}},
				{name: "AHT", rows: [][]interface{}{{9, 300}}},
				{name: "Notes", rows: [][]interface{}{{"scratch"}}},
			},
			expCalls: workbook.Matrix{{"9", "10"}},
			expAHT:   workbook.Matrix{{"9", "300"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			calls, aht, err := workbook.ReadMatrices(buildWorkbook(t, tt.sheets), names)

			assert.NoError(t, err)
			assert.Equal(t, tt.expCalls, calls)
			assert.Equal(t, tt.expAHT, aht)
		})
	}
}

func TestReadMatrices_TabsMissing(t *testing.T) {
	r := buildWorkbook(t, []sheetDef{
		{name: "Calls", rows: [][]interface{}{{9, 10}}},
	})

	calls, aht, err := workbook.ReadMatrices(r, workbook.DefaultSheetNames())

	assert.ErrorIs(t, err, customerrors.ErrTabsMissing)
	// the message reaches the planner verbatim
	assert.EqualError(t, err, "Tabs missing.")
	assert.Nil(t, calls)
	assert.Nil(t, aht)
}

func TestReadMatrices_NotAWorkbook(t *testing.T) {
	_, _, err := workbook.ReadMatrices(bytes.NewReader([]byte("not a zip archive")), workbook.DefaultSheetNames())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")
}

func TestOpenMatrices_MissingFile(t *testing.T) {
	_, _, err := workbook.OpenMatrices(filepath.Join(t.TempDir(), "absent.xlsx"), workbook.DefaultSheetNames())

	assert.Error(t, err)
}

func TestWriteBundle(t *testing.T) {
	tables := []workbook.Table{
		{
			Name:   "Baseline Plan",
			Header: []string{"Interval", "Sunday", "Monday"},
			Rows: [][]string{
				{"09:00", "2", "4"},
				{"10:00", "3", "5"},
			},
		},
		{
			Name:   "Call Capacity",
			Header: []string{"Interval", "Sunday", "Monday"},
			Rows: [][]string{
				{"09:00", "18", "36"},
				{"DAY TOTAL", "18", "36"},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "bundle.xlsx")
	assert.NoError(t, workbook.WriteBundle(path, tables))

	f, err := excelize.OpenFile(path)
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	assert.Equal(t, []string{"Baseline Plan", "Call Capacity"}, f.GetSheetList())

	for _, table := range tables {
		rows, err := f.GetRows(table.Name)
		assert.NoError(t, err)

		expected := append([][]string{table.Header}, table.Rows...)
		assert.Equal(t, expected, rows, table.Name)
	}
}

func TestWriteBundle_ShadesCells(t *testing.T) {
	tables := []workbook.Table{
		{
			Name:   "Baseline Plan",
			Header: []string{"Interval", "Sunday", "Monday"},
			Rows: [][]string{
				{"09:00", "2", "4"},
				{"10:00", "4", "2"},
			},
			Fills: [][]string{
				{"", "#10B981", "#EF4444"},
				{"", "#EF4444", "#10B981"},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "bundle.xlsx")
	assert.NoError(t, workbook.WriteBundle(path, tables))

	f, err := excelize.OpenFile(path)
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	labelStyle, err := f.GetCellStyle("Baseline Plan", "A2")
	assert.NoError(t, err)
	assert.Equal(t, 0, labelStyle, "label cells stay unstyled")

	greenB2, err := f.GetCellStyle("Baseline Plan", "B2")
	assert.NoError(t, err)
	assert.NotEqual(t, 0, greenB2, "shaded cells carry a fill style")

	redC2, err := f.GetCellStyle("Baseline Plan", "C2")
	assert.NoError(t, err)
	assert.NotEqual(t, 0, redC2)
	assert.NotEqual(t, greenB2, redC2, "distinct colors use distinct styles")

	// the same color reuses one style across rows
	greenC3, err := f.GetCellStyle("Baseline Plan", "C3")
	assert.NoError(t, err)
	assert.Equal(t, greenB2, greenC3)
}

func TestBundleFileName(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "Mawsool_Bundle_2026-03-09.xlsx", workbook.BundleFileName(ts))
}
