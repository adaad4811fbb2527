// Package workbook reads forecast source workbooks and writes plan bundles.
// All spreadsheet access lives here; the rest of the planner only ever sees
// raw string matrices and typed tables.
package workbook

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"mawsool-planner/errors"
)

// SheetNames identifies the two source tabs of a forecast workbook.
type SheetNames struct {
	Calls string
	AHT   string
}

// DefaultSheetNames returns the tab names expected in a forecast workbook.
func DefaultSheetNames() SheetNames {
	return SheetNames{Calls: "Calls", AHT: "AHT"}
}

// Matrix is one raw sheet: rows of untyped cell strings exactly as stored.
type Matrix [][]string

// Table is one sheet of a plan bundle: a header row plus data rows. Fills,
// when present, aligns with Rows and carries a #RRGGBB fill per cell; an
// empty entry leaves the cell unshaded.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	Fills  [][]string
}

// OpenMatrices reads the calls and AHT matrices from the workbook at path.
func OpenMatrices(path string, names SheetNames) (calls, aht Matrix, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return readMatrices(f, names)
}

// ReadMatrices reads the calls and AHT matrices from an uploaded workbook.
func ReadMatrices(r io.Reader, names SheetNames) (calls, aht Matrix, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return readMatrices(f, names)
}

func readMatrices(f *excelize.File, names SheetNames) (Matrix, Matrix, error) {
	callsSheet := resolveSheet(f, names.Calls, 0)
	ahtSheet := resolveSheet(f, names.AHT, 1)
	if callsSheet == "" || ahtSheet == "" {
		return nil, nil, errors.ErrTabsMissing
	}

	calls, err := readSheet(f, callsSheet)
	if err != nil {
		return nil, nil, err
	}
	aht, err := readSheet(f, ahtSheet)
	if err != nil {
		return nil, nil, err
	}
	return calls, aht, nil
}

// resolveSheet finds a tab by exact name, falling back to the tab at the
// given position when no tab carries the expected name. Returns "" when
// neither exists.
func resolveSheet(f *excelize.File, name string, position int) string {
	list := f.GetSheetList()
	for _, sheet := range list {
		if sheet == name {
			return sheet
		}
	}
	if position < len(list) {
		return list[position]
	}
	return ""
}

// readSheet streams a whole sheet into a Matrix row by row.
func readSheet(f *excelize.File, sheet string) (Matrix, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &errors.SheetError{Sheet: sheet, Err: err}
	}
	defer rows.Close()

	var m Matrix
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, &errors.SheetError{Sheet: sheet, Err: err}
		}
		m = append(m, cells)
	}
	if err := rows.Error(); err != nil {
		return nil, &errors.SheetError{Sheet: sheet, Err: err}
	}
	return m, nil
}

// WriteBundle writes one sheet per table into a new workbook at path. Fill
// styles are deduplicated per color across the whole bundle.
func WriteBundle(path string, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	styles := make(map[string]int)
	styleFor := func(hex string) (int, error) {
		if id, ok := styles[hex]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		})
		if err != nil {
			return 0, err
		}
		styles[hex] = id
		return id, nil
	}

	for i, t := range tables {
		if i == 0 {
			// Rename the default sheet instead of deleting it.
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return &errors.SheetError{Sheet: t.Name, Err: err}
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return &errors.SheetError{Sheet: t.Name, Err: err}
		}
		if err := writeTable(f, t, styleFor); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving bundle: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t Table, styleFor func(string) (int, error)) error {
	if err := writeRow(f, t.Name, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, t.Name, i+2, row); err != nil {
			return err
		}
	}
	for i, fills := range t.Fills {
		if err := fillRow(f, t.Name, i+2, fills, styleFor); err != nil {
			return err
		}
	}
	return nil
}

func fillRow(f *excelize.File, sheet string, row int, fills []string, styleFor func(string) (int, error)) error {
	for col, hex := range fills {
		if hex == "" {
			continue
		}
		style, err := styleFor(hex)
		if err != nil {
			return &errors.SheetError{Sheet: sheet, Err: err}
		}
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return &errors.SheetError{Sheet: sheet, Err: err}
		}
		if err := f.SetCellStyle(sheet, name, name, style); err != nil {
			return &errors.SheetError{Sheet: sheet, Err: err}
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	for col, v := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return &errors.SheetError{Sheet: sheet, Err: err}
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return &errors.SheetError{Sheet: sheet, Err: err}
		}
	}
	return nil
}

// BundleFileName returns the dated export name, e.g. Mawsool_Bundle_2026-08-23.xlsx.
func BundleFileName(now time.Time) string {
	return fmt.Sprintf("Mawsool_Bundle_%s.xlsx", now.Format("2006-01-02"))
}
