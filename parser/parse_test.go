package parser_test

import (
	"fmt"
	"testing"

	"mawsool-planner/parser"
	"mawsool-planner/staffing"
	"mawsool-planner/workbook"

	"github.com/stretchr/testify/assert"
)

// repeatRow builds an hourly matrix row with the same value in all 14 day columns.
func repeatRow(hour, val string) []string {
	row := []string{hour}
	for i := 0; i < 14; i++ {
		row = append(row, val)
	}
	return row
}

func TestBuildGrid(t *testing.T) {
	type cellExpect struct {
		hour, day  int
		calls, aht float64
		ok         bool
	}

	tests := map[string]struct {
		calls    workbook.Matrix
		aht      workbook.Matrix
		expected []cellExpect
	}{
		"TwoWeekAverage": {
			calls: workbook.Matrix{
				{"9", "10", "12", "14", "16", "18", "20", "22", "10", "12", "14", "16", "18", "20", "22"},
			},
			aht: workbook.Matrix{repeatRow("9", "300")},
			expected: []cellExpect{
				{hour: 9, day: 0, calls: 10, aht: 300, ok: true},
				{hour: 9, day: 3, calls: 16, aht: 300, ok: true},
				{hour: 9, day: 6, calls: 22, aht: 300, ok: true},
				{hour: 10, day: 0, ok: false},
			},
		},
		"UnevenWeeksAverageOut": {
			calls: workbook.Matrix{
				{"14", "8", "0", "0", "0", "0", "0", "0", "12", "0", "0", "0", "0", "0", "0"},
			},
			aht: workbook.Matrix{
				{"14", "200", "0", "0", "0", "0", "0", "0", "400", "0", "0", "0", "0", "0", "0"},
			},
			expected: []cellExpect{
				// (8+12)/2 = 10 calls, (200+400)/2 = 300s
				{hour: 14, day: 0, calls: 10, aht: 300, ok: true},
				{hour: 14, day: 1, calls: 0, aht: 0, ok: true},
			},
		},
		"HourMissingFromOneMatrix_Skipped": {
			calls: workbook.Matrix{repeatRow("9", "10")},
			aht:   workbook.Matrix{repeatRow("10", "300")},
			expected: []cellExpect{
				{hour: 9, day: 0, ok: false},
				{hour: 10, day: 0, ok: false},
			},
		},
		"MalformedCellCountsAsZero": {
			calls: workbook.Matrix{
				{"9", "n/a", "0", "0", "0", "0", "0", "0", "8", "0", "0", "0", "0", "0", "0"},
			},
			aht: workbook.Matrix{repeatRow("9", "300")},
			expected: []cellExpect{
				// "n/a" degrades to 0, so the average is (0+8)/2 = 4
				{hour: 9, day: 0, calls: 4, aht: 300, ok: true},
			},
		},
		"ShortRowPadsWithZeros": {
			calls: workbook.Matrix{{"9", "10"}},
			aht:   workbook.Matrix{repeatRow("9", "300")},
			expected: []cellExpect{
				// week 2 column is past the row end, counted as 0
				{hour: 9, day: 0, calls: 5, aht: 300, ok: true},
				{hour: 9, day: 1, calls: 0, aht: 300, ok: true},
			},
		},
		"DuplicateHourRow_FirstWins": {
			calls: workbook.Matrix{
				repeatRow("9", "10"),
				repeatRow("9", "99"),
			},
			aht: workbook.Matrix{repeatRow("9", "300")},
			expected: []cellExpect{
				{hour: 9, day: 0, calls: 10, aht: 300, ok: true},
			},
		},
		"HeaderRowIgnored": {
			calls: workbook.Matrix{
				{"Hour", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
				repeatRow("9", "10"),
			},
			aht: workbook.Matrix{repeatRow("9", "300")},
			expected: []cellExpect{
				{hour: 9, day: 0, calls: 10, aht: 300, ok: true},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			grid := parser.BuildGrid(tt.calls, tt.aht)

			for _, exp := range tt.expected {
				calls, aht, ok := grid.Cell(exp.hour, exp.day)
				assert.Equal(t, exp.ok, ok,
					fmt.Sprintf("Cell(%d, %d) presence mismatch", exp.hour, exp.day))
				if exp.ok {
					assert.InDelta(t, exp.calls, calls, 1e-9,
						fmt.Sprintf("Cell(%d, %d) calls mismatch", exp.hour, exp.day))
					assert.InDelta(t, exp.aht, aht, 1e-9,
						fmt.Sprintf("Cell(%d, %d) aht mismatch", exp.hour, exp.day))
				}
			}
		})
	}
}

func TestIngest(t *testing.T) {
	calls := workbook.Matrix{
		{"9", "10", "12", "14", "16", "18", "20", "22", "10", "12", "14", "16", "18", "20", "22"},
	}
	aht := workbook.Matrix{repeatRow("9", "300")}

	fc := parser.Ingest(calls, aht, staffing.DefaultFactors())

	// one matched hour row expands to seven day intervals
	assert.Equal(t, 7, fc.Len())

	expectedCalls := []float64{10, 12, 14, 16, 18, 20, 22}
	expectedRequired := []int{2, 2, 2, 3, 3, 3, 3}

	for day := 0; day < 7; day++ {
		iv := fc.Lookup(9, day)
		if !assert.NotNil(t, iv, fmt.Sprintf("missing interval for day %d", day)) {
			continue
		}
		assert.Equal(t, 9, iv.Hour)
		assert.Equal(t, day, iv.DayOfWeek)
		assert.InDelta(t, expectedCalls[day], iv.AvgCalls, 1e-9)
		assert.InDelta(t, 300.0, iv.AvgAHT, 1e-9)
		assert.Equal(t, expectedRequired[day], iv.RequiredAgents,
			fmt.Sprintf("required agents for day %d", day))
		assert.Nil(t, iv.Scheduled, "ingestion must not pre-populate scenario plans")
	}
}

func TestIngest_EmptyMatrices(t *testing.T) {
	fc := parser.Ingest(workbook.Matrix{}, workbook.Matrix{}, staffing.DefaultFactors())

	assert.Equal(t, 0, fc.Len())
	assert.Nil(t, fc.Lookup(9, 0))
}

func TestIngest_OnlyOperatingHoursKept(t *testing.T) {
	calls := workbook.Matrix{
		repeatRow("3", "50"),
		repeatRow("9", "50"),
	}
	aht := workbook.Matrix{
		repeatRow("3", "300"),
		repeatRow("9", "300"),
	}

	fc := parser.Ingest(calls, aht, staffing.DefaultFactors())

	// 03:00 is outside the operating window and never becomes an interval
	assert.Equal(t, 7, fc.Len())
	assert.Nil(t, fc.Lookup(3, 0))
	assert.NotNil(t, fc.Lookup(9, 0))
}

func TestIngest_FloorHoldsForQuietIntervals(t *testing.T) {
	calls := workbook.Matrix{repeatRow("23", "0")}
	aht := workbook.Matrix{repeatRow("23", "0")}

	fc := parser.Ingest(calls, aht, staffing.DefaultFactors())

	assert.Equal(t, 7, fc.Len())
	for _, iv := range fc.Intervals {
		assert.Equal(t, 2, iv.RequiredAgents,
			fmt.Sprintf("quiet interval (%d, %d) must stay at the floor", iv.Hour, iv.DayOfWeek))
	}
}

func TestIngest_IntervalOrderFollowsOperatingDay(t *testing.T) {
	calls := workbook.Matrix{
		repeatRow("0", "10"),
		repeatRow("9", "10"),
		repeatRow("23", "10"),
	}
	aht := workbook.Matrix{
		repeatRow("0", "300"),
		repeatRow("9", "300"),
		repeatRow("23", "300"),
	}

	fc := parser.Ingest(calls, aht, staffing.DefaultFactors())

	assert.Equal(t, 21, fc.Len())

	// the operating day runs 09:00 through 02:00, so hour 9 sorts first
	// and the after-midnight hours trail the evening
	var hours []int
	for _, iv := range fc.Intervals {
		if iv.DayOfWeek == 0 {
			hours = append(hours, iv.Hour)
		}
	}
	assert.Equal(t, []int{9, 23, 0}, hours)
}
