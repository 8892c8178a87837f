package domain

import "math"

// WindChill computes the NWS 2001 wind chill temperature in °F from dry-bulb
// temperature tempF and wind speed windMph. The formula is only physically
// meaningful at or below 50°F with wind above 3 mph; outside that envelope
// ok is false and the value must be ignored.
//
// Formula: https://www.weather.gov/media/epz/wxcalc/windChill.pdf
func WindChill(tempF, windMph float64) (chill float64, ok bool) {
	if tempF > 50.0 || windMph <= 3.0 {
		return 0, false
	}
	v16 := math.Pow(windMph, 0.16)
	return 35.74 + 0.6215*tempF - 35.75*v16 + 0.4275*tempF*v16, true
}
