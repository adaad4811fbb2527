// Package staffing holds the agent-sizing arithmetic shared by forecast
// ingestion and scenario planning. Everything here is a pure function of its
// inputs; the sizing is a two-stage inflation of raw offered load, not a
// queueing-delay (Erlang-C) model.
package staffing

import "math"

// Factors are the planning constants applied to raw offered load.
type Factors struct {
	// Utilization is the target fraction of paid time spent actively
	// handling calls.
	Utilization float64
	// Availability is the fraction of scheduled time an agent is actually
	// available to take calls, net of breaks and shrinkage.
	Availability float64
	// MinAgents is the minimum viable coverage per interval.
	MinAgents int
	// FallbackAHT substitutes for a zero average handle time in the
	// per-agent rate divisor, in seconds.
	FallbackAHT float64
}

// DefaultFactors returns the standard planning factors.
func DefaultFactors() Factors {
	return Factors{
		Utilization:  0.75,
		Availability: 0.875,
		MinAgents:    2,
		FallbackAHT:  300,
	}
}

// RequiredAgents sizes one interval from its average offered calls and
// average handle time in seconds. Offered load in Erlangs is inflated first
// for the utilization ceiling, then for non-call availability, and the
// result is clamped to the staffing floor. Intervals with no offered load or
// no recorded handle time sit at the floor.
func RequiredAgents(calls, aht float64, f Factors) int {
	if calls <= 0 || aht <= 0 {
		return f.MinAgents
	}
	intensity := calls * aht / 3600.0
	agentsFloor := intensity / f.Utilization
	required := int(math.Ceil(agentsFloor / f.Availability))
	if required < f.MinAgents {
		required = f.MinAgents
	}
	return required
}

// PerAgentHourlyCalls returns how many calls one agent handles per hour at
// the utilization ceiling. A zero handle time falls back to FallbackAHT so
// the rate is always defined.
func PerAgentHourlyCalls(aht float64, f Factors) float64 {
	if aht == 0 {
		aht = f.FallbackAHT
	}
	return 3600.0 * f.Utilization / aht
}

// IntervalCapacity estimates the calls an interval absorbs with the given
// scheduled agent count. The fallback handle time applies only inside the
// rate divisor: an interval whose average handle time is zero reports zero
// capacity regardless of how many agents are scheduled.
func IntervalCapacity(scheduled int, aht float64, f Factors) int {
	if aht <= 0 {
		return 0
	}
	return int(math.Floor(float64(scheduled) * PerAgentHourlyCalls(aht, f)))
}
