package domain

import "math"

// HeatIndex computes the NWS heat index ("feels like" temperature) in °F
// from dry-bulb temperature tempF and relative humidity rh (percent).
//
// Below 80°F there is no heat stress correction and the temperature passes
// through unchanged. Otherwise the Steadman approximation is tried first;
// when the average of Steadman and the actual temperature reaches 80°F the
// full Rothfusz regression takes over, adjusted by one of two mutually
// exclusive humidity correction bands. Constants are the published NWS
// values: https://www.wpc.ncep.noaa.gov/html/heatindex_equation.shtml
func HeatIndex(tempF, rh float64) float64 {
	if tempF < 80.0 {
		return tempF
	}

	steadman := 0.5 * (tempF + 61.0 + (tempF-68.0)*1.2 + rh*0.094)
	if (tempF+steadman)/2.0 < 80.0 {
		return steadman
	}

	rothfusz := -42.379 +
		2.04901523*tempF +
		10.14333127*rh -
		0.22475541*tempF*rh -
		0.00683783*tempF*tempF -
		0.05481717*rh*rh +
		0.00122874*tempF*tempF*rh +
		0.00085282*tempF*rh*rh -
		0.00000199*tempF*tempF*rh*rh

	switch {
	case rh < 13.0 && tempF > 80.0 && tempF < 112.0:
		// Dry air makes the regression overshoot.
		return rothfusz - ((13.0-rh)/4.0)*math.Sqrt((17.0-math.Abs(tempF-95.0))/17.0)
	case rh > 85.0 && tempF > 80.0 && tempF < 87.0:
		// Very humid air just above the threshold undershoots.
		return rothfusz + ((rh-85.0)/10.0)*((87.0-tempF)/5.0)
	default:
		return rothfusz
	}
}
