package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/weather-station-bridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeReport(t *testing.T) {
	receivedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report := domain.Report{
		"ID":       "local",
		"PASSWORD": "key",
		"tempf":    "71.2",
		"humidity": "45",
	}

	msg, err := serializeReport(report, "ambientWeather", receivedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("ambientWeather"), msg.Key)
	assert.Equal(t, receivedAt, msg.Time)
	assert.JSONEq(t, `{"tempf":"71.2","humidity":"45"}`, string(msg.Value))

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "source", msg.Headers[0].Key)
	assert.Equal(t, []byte("weather-station-bridge"), msg.Headers[0].Value)
	assert.Equal(t, "received_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-08-30T12:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeReport_DoesNotMutateInput(t *testing.T) {
	report := domain.Report{"ID": "local", "PASSWORD": "key", "tempf": "71.2"}

	_, err := serializeReport(report, "ambientWeather", time.Now())
	require.NoError(t, err)

	assert.Equal(t, domain.Report{"ID": "local", "PASSWORD": "key", "tempf": "71.2"}, report)
}
