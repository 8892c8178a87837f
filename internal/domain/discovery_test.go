package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptors_CoversFieldTableAndFeelsLike(t *testing.T) {
	descriptors := Descriptors("homeassistant", "ambientWeather", true)
	require.Len(t, descriptors, 19)

	suffixes := make(map[string]bool, len(descriptors))
	uniqueIDs := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		assert.False(t, suffixes[d.Suffix], "duplicate suffix %s", d.Suffix)
		assert.False(t, uniqueIDs[d.Config.UniqueID], "duplicate unique_id %s", d.Config.UniqueID)
		suffixes[d.Suffix] = true
		uniqueIDs[d.Config.UniqueID] = true

		assert.Equal(t, StateTopic("homeassistant", "ambientWeather", d.Suffix), d.Config.StateTopic)
		assert.Equal(t, "WS-2902", d.Config.Device.Model)
		assert.NotEmpty(t, d.Config.StateClass)
	}

	// Every published field topic is announced, plus the derived feelsLike.
	for _, spec := range Fields(true) {
		assert.True(t, suffixes[spec.Topic], "no descriptor for %s", spec.Topic)
	}
	assert.True(t, suffixes["feelsLike"])
}

func TestDescriptors_IndoorTempOptional(t *testing.T) {
	descriptors := Descriptors("homeassistant", "ambientWeather", false)
	require.Len(t, descriptors, 18)
	for _, d := range descriptors {
		assert.NotEqual(t, "kitchenTemperature", d.Suffix)
	}
}

func TestSensorConfig_JSONShape(t *testing.T) {
	descriptors := Descriptors("homeassistant", "ambientWeather", true)

	t.Run("full descriptor", func(t *testing.T) {
		data, err := json.Marshal(descriptorBySuffix(t, descriptors, "temperature"))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Outside Temperature", decoded["name"])
		assert.Equal(t, "ambw_mqtt_outside_temp", decoded["unique_id"])
		assert.Equal(t, "temperature", decoded["device_class"])
		assert.Equal(t, "homeassistant/sensor/ambientWeather/temperature/state", decoded["state_topic"])
		assert.Equal(t, "°F", decoded["unit_of_measurement"])
		assert.Equal(t, "measurement", decoded["state_class"])

		device, ok := decoded["device"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ambient Weather", device["manufacturer"])
		assert.Equal(t, "ambw_mqtt", device["identifiers"])
	})

	t.Run("device_class omitted when unset", func(t *testing.T) {
		// Wind direction and UV index have no Home Assistant device class.
		for _, suffix := range []string{"windDir", "UV"} {
			data, err := json.Marshal(descriptorBySuffix(t, descriptors, suffix))
			require.NoError(t, err)
			assert.NotContains(t, string(data), "device_class")
		}
	})
}

func descriptorBySuffix(t *testing.T, descriptors []Descriptor, suffix string) SensorConfig {
	t.Helper()
	for _, d := range descriptors {
		if d.Suffix == suffix {
			return d.Config
		}
	}
	t.Fatalf("no descriptor for %s", suffix)
	return SensorConfig{}
}
