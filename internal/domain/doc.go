// Package domain models Ambient Weather WS-2902 station telemetry and its
// Home Assistant MQTT representation.
//
// # Data Source
//
// The WS-2902 console pushes one report every few seconds using the Weather
// Underground upload protocol: a single HTTP GET whose query string carries
// every measurement as a flat key/value pair, e.g.
//
//	/update_weather?ID=local&PASSWORD=key&tempf=71.2&humidity=45&windspeedmph=3.58&...
//
// All values arrive as strings in imperial units (°F, mph, inches, inHg).
// Fields are independent: a station firmware revision may omit a field, and a
// garbled value affects only that field, never the rest of the report.
//
// # Field Table
//
// Each station parameter maps 1:1 to a Home Assistant state topic through an
// immutable [FieldSpec] table built once at startup (see [Fields]). A spec
// names the query parameter, the topic suffix, the value kind (integer or
// fixed-point decimal), and the decimal precision. The two barometric fields
// additionally carry a scale factor: the station reports inches of mercury,
// Home Assistant expects hectopascals, so absbaromin and baromin are
// multiplied by 33.86 before formatting.
//
// Decimal payloads are rendered fixed-point with exactly the configured
// number of fractional digits using strconv round-half-to-even. "1013.07"
// at precision 1 becomes "1013.1"; "-0.25" at precision 1 becomes "-0.2".
//
// # Derived Metrics
//
// Two readings the station does not supply are derived here:
//
//	Heat index ([HeatIndex]): the NWS "feels like" temperature from dry-bulb
//	temperature and relative humidity. Below 80°F the temperature passes
//	through unchanged; above, the Steadman estimate applies, refined by the
//	Rothfusz regression and its two humidity correction bands.
//
//	Wind chill ([WindChill]): the NWS 2001 formula from temperature and wind
//	speed, physically valid only at or below 50°F with wind above 3 mph.
//	Computed solely to cross-check the station's own windchillf reading; it
//	is logged, never published.
//
// # Topic Layout
//
// Topics follow the Home Assistant MQTT discovery convention:
//
//	<base>/sensor/<node>/<suffix>/state   current reading, not retained
//	<base>/sensor/<node>/<suffix>/config  discovery descriptor, retained
//
// with base "homeassistant" and node "ambientWeather" by default. The
// retained descriptors ([Descriptors]) tell the hub each sensor's name,
// unit, and display semantics so entities auto-register on startup.
package domain
