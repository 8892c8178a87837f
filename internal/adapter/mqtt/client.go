// Package mqtt wraps the paho MQTT client behind the publish capability the
// pipeline consumes.
package mqtt

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/couchcryptid/weather-station-bridge/internal/config"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // milliseconds, per paho convention
)

// Client is a connected MQTT publisher.
// It implements pipeline.Publisher.
type Client struct {
	client pahomqtt.Client
	logger *slog.Logger
}

// Connect dials the configured broker, retrying with exponential backoff
// for up to 30 seconds before giving up.
func Connect(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.BrokerAddress)
	opts.SetClientID(cfg.MQTT.ClientID)
	opts.SetUsername(cfg.MQTT.Username)
	opts.SetPassword(cfg.MQTT.Password)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var client pahomqtt.Client
	err := backoff.Retry(func() error {
		client = pahomqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			logger.Warn("mqtt connect failed, retrying", "broker", cfg.MQTT.BrokerAddress, "error", token.Error())
			return token.Error()
		}
		return nil
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.MQTT.BrokerAddress, err)
	}

	logger.Info("connected to mqtt broker", "broker", cfg.MQTT.BrokerAddress, "client_id", cfg.MQTT.ClientID)
	return &Client{client: client, logger: logger}, nil
}

// Publish sends one payload at QoS 0. Sensor state is superseded by the
// next report within seconds.
func (c *Client) Publish(topic, payload string, retained bool) error {
	token := c.client.Publish(topic, 0, retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Connected reports whether the broker connection is currently up.
func (c *Client) Connected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker, allowing in-flight work to drain.
func (c *Client) Close() {
	if c.client.IsConnected() {
		c.client.Disconnect(disconnectQuiesce)
		c.logger.Info("mqtt connection closed")
	}
}
