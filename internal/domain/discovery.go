package domain

// Device is the shared identity block embedded in every discovery
// descriptor so Home Assistant groups all sensors under one device.
type Device struct {
	Identifiers  string `json:"identifiers"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Name         string `json:"name"`
	ViaDevice    string `json:"via_device"`
}

// SensorConfig is a Home Assistant MQTT discovery descriptor: published
// retained to the sensor's config topic so the hub auto-registers the entity.
type SensorConfig struct {
	Name              string `json:"name"`
	UniqueID          string `json:"unique_id"`
	DeviceClass       string `json:"device_class,omitempty"`
	Device            Device `json:"device"`
	StateTopic        string `json:"state_topic"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	StateClass        string `json:"state_class"`
}

// Descriptor pairs a discovery config with the topic suffix it announces.
type Descriptor struct {
	Suffix string
	Config SensorConfig
}

// descriptorDef is the static part of a descriptor, before topics and the
// device block are filled in.
type descriptorDef struct {
	suffix      string
	name        string
	uniqueID    string
	deviceClass string
	unit        string
	stateClass  string
}

// descriptorDefs lists every announced sensor: the 18 station fields plus
// the derived feelsLike reading. windChill is announced even though the
// derived value is never published, because the station-reported windchillf
// is republished on that topic.
var descriptorDefs = []descriptorDef{
	{"temperature", "Outside Temperature", "ambw_mqtt_outside_temp", "temperature", "°F", "measurement"},
	{"feelsLike", "Outside Feels Like", "ambw_mqtt_outside_feels", "temperature", "°F", "measurement"},
	{"humidity", "Outside Humidity", "ambw_mqtt_outside_hum", "humidity", "%", "measurement"},
	{"dewPoint", "Outside Dew Point", "ambw_mqtt_outside_dew", "temperature", "°F", "measurement"},
	{"windChill", "Wind Chill", "ambw_mqtt_wind_chill", "temperature", "°F", "measurement"},
	{"windDir", "Wind Dir", "ambw_mqtt_wind_dir", "", "°", "measurement"},
	{"windSpeed", "Wind Speed", "ambw_mqtt_wind_speed", "wind_speed", "mph", "measurement"},
	{"windGust", "Wind Gust", "ambw_mqtt_wind_gust", "wind_speed", "mph", "measurement"},
	{"rainHourly", "Hourly Rain Rate", "ambw_mqtt_hourly_rain", "precipitation_intensity", "in/h", "measurement"},
	{"rainDaily", "Daily Rain", "ambw_mqtt_daily_rain", "precipitation", "in", "total_increasing"},
	{"rainWeekly", "Weekly Rain", "ambw_mqtt_weekly_rain", "precipitation", "in", "total_increasing"},
	{"rainMonthly", "Monthly Rain", "ambw_mqtt_monthly_rain", "precipitation", "in", "total_increasing"},
	{"rainLifetime", "Lifetime Rain", "ambw_mqtt_lifetime_rain", "precipitation", "in", "total_increasing"},
	{"solarRadiation", "Solar Radiation", "ambw_mqtt_solar_rad", "irradiance", "W/m²", "measurement"},
	{"UV", "UV Index", "ambw_mqtt_uv", "", "Index", "measurement"},
	{"kitchenTemperature", "Kitchen Temperature", "ambw_mqtt_indoor_temp", "temperature", "°F", "measurement"},
	{"kitchenHumidity", "Kitchen Humidity", "ambw_mqtt_indoor_hum", "humidity", "%", "measurement"},
	{"pressure", "Outside Pressure", "ambw_mqtt_abs_press", "atmospheric_pressure", "hPa", "measurement"},
	{"relativePressure", "Outside Relative Pressure", "ambw_mqtt_rel_press", "atmospheric_pressure", "hPa", "measurement"},
}

// Descriptors returns the discovery descriptors to announce at startup, in
// publish order. includeIndoorTemp mirrors the field-table flag: stations
// without an indoor probe must not register a kitchenTemperature entity.
func Descriptors(base, node string, includeIndoorTemp bool) []Descriptor {
	device := Device{
		Identifiers:  "ambw_mqtt",
		Manufacturer: "Ambient Weather",
		Model:        "WS-2902",
		Name:         "MQTT Weather Station",
		ViaDevice:    "weather-station-bridge",
	}

	out := make([]Descriptor, 0, len(descriptorDefs))
	for _, def := range descriptorDefs {
		if !includeIndoorTemp && def.suffix == "kitchenTemperature" {
			continue
		}
		out = append(out, Descriptor{
			Suffix: def.suffix,
			Config: SensorConfig{
				Name:              def.name,
				UniqueID:          def.uniqueID,
				DeviceClass:       def.deviceClass,
				Device:            device,
				StateTopic:        StateTopic(base, node, def.suffix),
				UnitOfMeasurement: def.unit,
				StateClass:        def.stateClass,
			},
		})
	}
	return out
}
