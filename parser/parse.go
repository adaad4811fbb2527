package parser

import (
	"strconv"
	"strings"
	"time"

	"mawsool-planner/metrics"
	"mawsool-planner/models"
	"mawsool-planner/staffing"
	"mawsool-planner/workbook"
)

// cell holds the two-week average call volume and handle time for one
// (hour, day) grid position.
type cell struct {
	calls float64
	aht   float64
}

// Grid is the typed (hour, day) view over the two raw source matrices. It is
// built once per ingestion so the sizing core never touches sheet rows or
// column offsets.
type Grid struct {
	hours map[int][7]cell
}

// BuildGrid aligns the calls and AHT matrices on their hour key and averages
// the two 7-day week blocks into one cell per (hour, day). Hours absent from
// either matrix produce no cells.
func BuildGrid(calls, aht workbook.Matrix) *Grid {
	callRows := indexByHour(calls)
	ahtRows := indexByHour(aht)

	g := &Grid{hours: make(map[int][7]cell, len(models.OperatingHours))}
	for _, hour := range models.OperatingHours {
		cRow, okCalls := callRows[hour]
		aRow, okAHT := ahtRows[hour]
		if !okCalls || !okAHT {
			continue
		}
		var days [7]cell
		for day := range days {
			days[day] = cell{
				calls: weekAverage(cRow, day),
				aht:   weekAverage(aRow, day),
			}
		}
		g.hours[hour] = days
	}
	return g
}

// Cell returns the averaged (calls, aht) pair for an (hour, day) position.
// ok is false when the hour row was absent from either source matrix.
func (g *Grid) Cell(hour, day int) (calls, aht float64, ok bool) {
	days, ok := g.hours[hour]
	if !ok || day < 0 || day >= len(days) {
		return 0, 0, false
	}
	return days[day].calls, days[day].aht, true
}

// Ingest builds the forecast from the two source matrices. Every (hour, day)
// cell present in both matrices yields exactly one interval, sized at
// ingestion time; combinations absent from either matrix are dropped without
// error. The returned set replaces any previous forecast wholesale.
func Ingest(calls, aht workbook.Matrix, f staffing.Factors) *models.Forecast {
	start := time.Now()
	grid := BuildGrid(calls, aht)

	var intervals []*models.ForecastInterval
	for _, hour := range models.OperatingHours {
		days, ok := grid.hours[hour]
		if !ok {
			continue
		}
		for day := range days {
			c := days[day]
			intervals = append(intervals, &models.ForecastInterval{
				Hour:           hour,
				DayOfWeek:      day,
				AvgCalls:       c.calls,
				AvgAHT:         c.aht,
				RequiredAgents: staffing.RequiredAgents(c.calls, c.aht, f),
			})
		}
	}

	metrics.ParserIntervalsTotal.Set(float64(len(intervals)))
	metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	return models.NewForecast(intervals)
}

// indexByHour maps each row to its integer hour label in column 0. Rows
// whose label is not an integer never match an operating hour; the first row
// wins when two share a label.
func indexByHour(m workbook.Matrix) map[int][]string {
	rows := make(map[int][]string, len(m))
	for _, row := range m {
		if len(row) == 0 {
			continue
		}
		hour, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		if _, seen := rows[hour]; seen {
			continue
		}
		rows[hour] = row
	}
	return rows
}

// weekAverage means the week-1 and week-2 values of a day column. Week 1
// occupies columns 1-7, week 2 columns 8-14.
func weekAverage(row []string, day int) float64 {
	w1 := numericCell(row, 1+day)
	w2 := numericCell(row, 8+day)
	return (w1 + w2) / 2
}

// numericCell reads one cell as a number. Absent cells count as zero;
// malformed cells also degrade to zero but are counted.
func numericCell(row []string, col int) float64 {
	if col >= len(row) {
		return 0
	}
	s := strings.TrimSpace(row[col])
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		metrics.ParserCellsDefaulted.Inc()
		return 0
	}
	return v
}
