package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// inHgToHPa converts barometric readings from inches of mercury to
// hectopascals, the unit Home Assistant expects for atmospheric_pressure.
const inHgToHPa = 33.86

// ErrMissingField reports a station parameter absent from a report.
// Missing fields are skipped individually; they never fail the report.
var ErrMissingField = errors.New("missing field")

// ValueKind selects how a raw field value is parsed and formatted.
type ValueKind int

const (
	// Integer fields parse as signed base-10 integers and publish with no
	// fractional digits (humidity, wind direction, UV index).
	Integer ValueKind = iota
	// Decimal fields parse as floats and publish fixed-point with exactly
	// Precision fractional digits.
	Decimal
)

// Report holds one station push: raw query parameter names to raw string
// values. It lives for a single request and is never mutated.
type Report map[string]string

// Sample is one formatted reading bound for the broker.
type Sample struct {
	Topic    string
	Payload  string
	Retained bool
}

// FieldSpec describes one independently-measurable station field: where it
// comes from, where it goes, and how its value is rendered.
type FieldSpec struct {
	// Key is the query parameter name in the station push, e.g. "tempf".
	Key string
	// Topic is the state topic suffix, e.g. "temperature".
	Topic string
	Kind  ValueKind
	// Precision is the number of fractional digits for Decimal fields.
	Precision int
	// Scale, when non-zero, multiplies the parsed value before formatting.
	// Used for the inHg -> hPa pressure conversion.
	Scale float64
}

// Fields returns the station field table in publish order. The table is
// rebuilt per call so callers can never mutate a shared copy.
// Some firmware revisions have no indoor temperature probe; includeIndoorTemp
// drops that field without disturbing the rest of the table.
func Fields(includeIndoorTemp bool) []FieldSpec {
	specs := []FieldSpec{
		{Key: "tempf", Topic: "temperature", Kind: Decimal, Precision: 1},
		{Key: "humidity", Topic: "humidity", Kind: Integer},
		{Key: "dewptf", Topic: "dewPoint", Kind: Decimal, Precision: 1},
		{Key: "windchillf", Topic: "windChill", Kind: Decimal, Precision: 1},
		{Key: "winddir", Topic: "windDir", Kind: Integer},
		{Key: "windspeedmph", Topic: "windSpeed", Kind: Decimal, Precision: 2},
		{Key: "windgustmph", Topic: "windGust", Kind: Decimal, Precision: 2},
		{Key: "rainin", Topic: "rainHourly", Kind: Decimal, Precision: 3},
		{Key: "dailyrainin", Topic: "rainDaily", Kind: Decimal, Precision: 3},
		{Key: "weeklyrainin", Topic: "rainWeekly", Kind: Decimal, Precision: 3},
		{Key: "monthlyrainin", Topic: "rainMonthly", Kind: Decimal, Precision: 3},
		{Key: "totalrainin", Topic: "rainLifetime", Kind: Decimal, Precision: 3},
		{Key: "solarradiation", Topic: "solarRadiation", Kind: Decimal, Precision: 1},
		{Key: "UV", Topic: "UV", Kind: Integer},
		{Key: "indoortempf", Topic: "kitchenTemperature", Kind: Decimal, Precision: 1},
		{Key: "indoorhumidity", Topic: "kitchenHumidity", Kind: Integer},
		{Key: "absbaromin", Topic: "pressure", Kind: Decimal, Precision: 1, Scale: inHgToHPa},
		{Key: "baromin", Topic: "relativePressure", Kind: Decimal, Precision: 1, Scale: inHgToHPa},
	}

	if includeIndoorTemp {
		return specs
	}
	filtered := specs[:0]
	for _, s := range specs {
		if s.Key != "indoortempf" {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FormatField looks up spec.Key in the report and renders the canonical
// payload string. It returns ErrMissingField when the parameter is absent
// and a parse error when the raw value does not match spec.Kind.
func FormatField(spec FieldSpec, report Report) (string, error) {
	raw, ok := report[spec.Key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, spec.Key)
	}

	switch spec.Kind {
	case Integer:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return "", fmt.Errorf("parse %s=%q as integer: %w", spec.Key, raw, err)
		}
		return strconv.FormatInt(n, 10), nil
	case Decimal:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("parse %s=%q as decimal: %w", spec.Key, raw, err)
		}
		if spec.Scale != 0 {
			v *= spec.Scale
		}
		return strconv.FormatFloat(v, 'f', spec.Precision, 64), nil
	default:
		return "", fmt.Errorf("unknown value kind %d for %s", spec.Kind, spec.Key)
	}
}

// Decimal extracts a report field as a float64 for derived-metric inputs.
func (r Report) Decimal(key string) (float64, bool) {
	raw, ok := r[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StateTopic builds the topic carrying a sensor's current reading.
func StateTopic(base, node, suffix string) string {
	return fmt.Sprintf("%s/sensor/%s/%s/state", base, node, suffix)
}

// ConfigTopic builds the retained topic carrying a sensor's discovery descriptor.
func ConfigTopic(base, node, suffix string) string {
	return fmt.Sprintf("%s/sensor/%s/%s/config", base, node, suffix)
}
