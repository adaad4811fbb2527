// Package heatmap computes the color scale used to shade plan grids.
package heatmap

import (
	"fmt"
	"math"

	"mawsool-planner/models"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the #RRGGBB form used by spreadsheet cell styles.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Anchor colors of the three-point scale. Low values shade green, the
// midpoint amber, the top of the range red. A flat range shades everything
// with the green anchor.
var (
	Green = RGB{R: 16, G: 185, B: 129}
	Amber = RGB{R: 245, G: 158, B: 11}
	Red   = RGB{R: 239, G: 68, B: 68}
)

// Stats holds the value range of one view across the whole forecast.
type Stats struct {
	Min int
	Max int
}

// Compute scans the forecast and returns the min and max of the view metric.
// An empty forecast reports a flat {0, 0} range.
func Compute(fc *models.Forecast, view models.ViewMode) Stats {
	var s Stats
	for i, iv := range fc.Intervals {
		v := iv.Metric(view)
		if i == 0 {
			s.Min, s.Max = v, v
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Color maps a value onto the green-amber-red gradient for the given range.
// The ratio is clamped to [0, 1]; values at or below min shade green, values
// at or above max shade red, the exact midpoint shades amber.
func Color(value, min, max int) RGB {
	if max == min {
		return Green
	}
	ratio := (float64(value) - float64(min)) / (float64(max) - float64(min))
	ratio = math.Min(1, math.Max(0, ratio))
	if ratio < 0.5 {
		return lerp(Green, Amber, ratio/0.5)
	}
	return lerp(Amber, Red, (ratio-0.5)/0.5)
}

func lerp(from, to RGB, t float64) RGB {
	return RGB{
		R: channel(from.R, to.R, t),
		G: channel(from.G, to.G, t),
		B: channel(from.B, to.B, t),
	}
}

func channel(from, to uint8, t float64) uint8 {
	return uint8(math.Round(float64(from) + (float64(to)-float64(from))*t))
}
