package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"mawsool-planner/heatmap"
	"mawsool-planner/models"
	"mawsool-planner/workbook"
)

// Bundle sheet names, one per view.
const (
	SheetBaseline = "Baseline Plan"
	SheetCapped   = "Capped Plan"
	SheetCapacity = "Call Capacity"
)

// dayTotalLabel marks the trailing per-day sum row of the capacity sheet.
const dayTotalLabel = "DAY TOTAL"

// PlanData holds prepared per-hour data used by all formatters.
type PlanData struct {
	View      models.ViewMode
	Hours     []HourlyData
	DayTotals [7]int
}

// HourlyData is one operating hour of the selected view across the week.
// Days holds Sunday through Saturday; a nil entry marks an (hour, day)
// combination absent from the forecast.
type HourlyData struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Total int    `json:"total"`
	Days  []*int `json:"days"`
}

// preparePlanData extracts and organizes the selected view for formatting
func preparePlanData(fc *models.Forecast, view models.ViewMode) *PlanData {
	data := &PlanData{View: view, DayTotals: DayTotals(fc, view)}
	for _, hour := range models.OperatingHours {
		hd := HourlyData{
			Hour:  hour,
			Label: hourLabel(hour),
			Days:  make([]*int, len(models.DayNames)),
		}
		for day := range models.DayNames {
			iv := fc.Lookup(hour, day)
			if iv == nil {
				continue
			}
			v := iv.Metric(view)
			hd.Days[day] = &v
			hd.Total += v
		}
		data.Hours = append(data.Hours, hd)
	}
	return data
}

// DayTotals sums the view metric per day of week, Sunday through Saturday.
func DayTotals(fc *models.Forecast, view models.ViewMode) [7]int {
	var totals [7]int
	for _, iv := range fc.Intervals {
		totals[iv.DayOfWeek] += iv.Metric(view)
	}
	return totals
}

// BuildTables renders the three bundle sheets: the baseline plan, the capped
// scenario plan, and the capacity estimate with its trailing DAY TOTAL row.
// Each data row is one defined operating hour keyed by its HH:00 label, and
// every populated cell is shaded along the view's heatmap gradient.
func BuildTables(fc *models.Forecast) []workbook.Table {
	return []workbook.Table{
		buildTable(fc, SheetBaseline, models.ViewBaseline),
		buildTable(fc, SheetCapped, models.ViewScheduled),
		buildTable(fc, SheetCapacity, models.ViewCapacity),
	}
}

func buildTable(fc *models.Forecast, name string, view models.ViewMode) workbook.Table {
	t := workbook.Table{
		Name:   name,
		Header: append([]string{"Interval"}, models.DayNames...),
	}
	stats := heatmap.Compute(fc, view)
	for _, hour := range models.OperatingHours {
		row := make([]string, 0, len(t.Header))
		fills := make([]string, 0, len(t.Header))
		row = append(row, hourLabel(hour))
		fills = append(fills, "")
		for day := range models.DayNames {
			iv := fc.Lookup(hour, day)
			if iv == nil {
				row = append(row, "")
				fills = append(fills, "")
				continue
			}
			v := iv.Metric(view)
			row = append(row, strconv.Itoa(v))
			fills = append(fills, heatmap.Color(v, stats.Min, stats.Max).Hex())
		}
		t.Rows = append(t.Rows, row)
		t.Fills = append(t.Fills, fills)
	}
	if view == models.ViewCapacity {
		totals := DayTotals(fc, view)
		row := append([]string{dayTotalLabel}, lo.Map(totals[:], func(v int, _ int) string {
			return strconv.Itoa(v)
		})...)
		t.Rows = append(t.Rows, row)
		// totals live on their own scale, so the sum row stays unshaded
		t.Fills = append(t.Fills, make([]string, len(t.Header)))
	}
	return t
}

// FormatText returns the text representation of the selected view
func FormatText(fc *models.Forecast, view models.ViewMode) string {
	data := preparePlanData(fc, view)
	var sb strings.Builder

	for _, hd := range data.Hours {
		sb.WriteString(formatTextLine(hd))
		sb.WriteString("\n")
	}
	sb.WriteString(formatTotalsLine(data.DayTotals))
	sb.WriteString("\n")
	return sb.String()
}

// FormatJSON returns the JSON representation of the selected view
func FormatJSON(fc *models.Forecast, view models.ViewMode) string {
	data := preparePlanData(fc, view)
	out := struct {
		View      models.ViewMode `json:"view"`
		Hours     []HourlyData    `json:"hours"`
		DayTotals [7]int          `json:"day_totals"`
	}{data.View, data.Hours, data.DayTotals}
	jsonBytes, _ := json.MarshalIndent(out, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the selected view
func FormatCSV(fc *models.Forecast, view models.ViewMode) string {
	data := preparePlanData(fc, view)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write(append(append([]string{"Interval"}, models.DayNames...), "Total"))
	for _, hd := range data.Hours {
		row := make([]string, 0, len(hd.Days)+2)
		row = append(row, hd.Label)
		for _, v := range hd.Days {
			if v == nil {
				row = append(row, "")
			} else {
				row = append(row, strconv.Itoa(*v))
			}
		}
		row = append(row, strconv.Itoa(hd.Total))
		writer.Write(row)
	}

	footer := make([]string, 0, len(data.DayTotals)+2)
	footer = append(footer, dayTotalLabel)
	for _, v := range data.DayTotals {
		footer = append(footer, strconv.Itoa(v))
	}
	footer = append(footer, strconv.Itoa(lo.Sum(data.DayTotals[:])))
	writer.Write(footer)

	writer.Flush()
	return sb.String()
}

// formatTextLine formats a single hour line for text output
func formatTextLine(hd HourlyData) string {
	var parts []string
	for day, v := range hd.Days {
		if v == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", models.DayNames[day], *v))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s : total=0 ; none", hd.Label)
	}
	return fmt.Sprintf("%s : total=%d ; [%s]", hd.Label, hd.Total, strings.Join(parts, ", "))
}

// formatTotalsLine formats the day-totals footer for text output
func formatTotalsLine(totals [7]int) string {
	parts := make([]string, 0, len(totals))
	for day, v := range totals {
		parts = append(parts, fmt.Sprintf("%s=%d", models.DayNames[day], v))
	}
	return fmt.Sprintf("DAY TOTALS : [%s]", strings.Join(parts, ", "))
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
