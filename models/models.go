package models

// OperatingHours is the fixed 18-hour contact-center day: 09:00 through 23:00,
// then 00:00 through 02:00 of the following calendar date.
var OperatingHours = []int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 0, 1, 2}

// DayNames holds the day-of-week display names indexed 0-6, Sunday through Saturday.
var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ViewMode selects which interval metric the derived views read.
type ViewMode string

const (
	// ViewBaseline reads the requirement computed at ingestion time.
	ViewBaseline ViewMode = "baseline"
	// ViewScheduled reads the agent counts of the generated scenario.
	ViewScheduled ViewMode = "scheduled"
	// ViewCapacity reads the estimated call throughput of the scenario.
	ViewCapacity ViewMode = "capacity"
)

// ScheduledPlan carries the scenario fields of one interval. Both fields are
// filled together during scenario generation; a nil plan means no scenario
// has been generated yet.
type ScheduledPlan struct {
	Agents   int
	Capacity int
}

// ForecastInterval is one (hour, day-of-week) staffing unit, the atomic
// planning granularity.
type ForecastInterval struct {
	// Hour is one of the OperatingHours values.
	Hour int
	// DayOfWeek is 0-6, Sunday through Saturday.
	DayOfWeek int
	// AvgCalls is the offered call volume averaged over the two observed weeks.
	AvgCalls float64
	// AvgAHT is the average handle time in seconds for this cell.
	AvgAHT float64
	// RequiredAgents is computed once at ingestion time and never changes.
	RequiredAgents int
	// Scheduled is set by scenario generation; it may sit below, at, or
	// above RequiredAgents.
	Scheduled *ScheduledPlan
}

// Metric returns the interval's value under the given view. The scenario
// views read 0 until a scenario has been generated.
func (iv *ForecastInterval) Metric(view ViewMode) int {
	switch view {
	case ViewScheduled:
		if iv.Scheduled == nil {
			return 0
		}
		return iv.Scheduled.Agents
	case ViewCapacity:
		if iv.Scheduled == nil {
			return 0
		}
		return iv.Scheduled.Capacity
	default:
		return iv.RequiredAgents
	}
}

type intervalKey struct {
	hour int
	day  int
}

// Forecast is the complete interval set produced by one ingestion. A new
// upload replaces the whole set; scenario generation augments the existing
// records in place. Individual records are never removed.
type Forecast struct {
	Intervals []*ForecastInterval

	byKey map[intervalKey]*ForecastInterval
}

// NewForecast indexes the given intervals for (hour, day) lookup. The first
// interval wins when two share a key.
func NewForecast(intervals []*ForecastInterval) *Forecast {
	f := &Forecast{
		Intervals: intervals,
		byKey:     make(map[intervalKey]*ForecastInterval, len(intervals)),
	}
	for _, iv := range intervals {
		k := intervalKey{hour: iv.Hour, day: iv.DayOfWeek}
		if _, ok := f.byKey[k]; !ok {
			f.byKey[k] = iv
		}
	}
	return f
}

// Lookup returns the interval for (hour, day), or nil when the source
// matrices had no such combination.
func (f *Forecast) Lookup(hour, day int) *ForecastInterval {
	return f.byKey[intervalKey{hour: hour, day: day}]
}

// Len returns the number of intervals in the set.
func (f *Forecast) Len() int {
	return len(f.Intervals)
}
