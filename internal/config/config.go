package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/pelletier/go-toml/v2"
)

// MQTTConfig holds broker connection settings and the topic layout.
type MQTTConfig struct {
	BrokerAddress string `toml:"broker_address"`
	ClientID      string `toml:"client_id"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	// BaseTopic is the discovery prefix the automation hub watches.
	BaseTopic string `toml:"base_topic"`
	// NodeID is the per-station topic segment under <base>/sensor/.
	NodeID string `toml:"node_id"`
}

// StationConfig holds the shared-secret credentials the station sends with
// every report, and the optional-sensor toggles.
type StationConfig struct {
	ID  string `toml:"id"`
	Key string `toml:"key"`
	// OmitIndoorTemp drops the indoor temperature field and its discovery
	// descriptor for stations without an indoor probe.
	OmitIndoorTemp bool `toml:"omit_indoor_temp"`
}

// KafkaConfig holds the optional raw-report archive forwarding settings.
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Config holds all service settings. Station and broker settings come from
// the TOML config file; operational knobs come from environment variables.
type Config struct {
	MQTT    MQTTConfig    `toml:"mqtt"`
	Station StationConfig `toml:"station"`
	Kafka   KafkaConfig   `toml:"kafka"`

	HTTPAddr        string        `toml:"-"`
	LogLevel        string        `toml:"-"`
	LogFormat       string        `toml:"-"`
	ShutdownTimeout time.Duration `toml:"-"`
}

// Load reads the TOML config file named by CONFIG_PATH (default config.toml),
// applies defaults and environment overrides, and validates the result.
func Load() (*Config, error) {
	path := sharedcfg.EnvOrDefault("CONFIG_PATH", "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "weather-station-bridge"
	}
	if cfg.MQTT.BaseTopic == "" {
		cfg.MQTT.BaseTopic = "homeassistant"
	}
	if cfg.MQTT.NodeID == "" {
		cfg.MQTT.NodeID = "ambientWeather"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "raw-weather-reports"
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = sharedcfg.ParseBrokers(v)
	}

	cfg.HTTPAddr = sharedcfg.EnvOrDefault("HTTP_ADDR", ":8090")
	cfg.LogLevel = sharedcfg.EnvOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = sharedcfg.EnvOrDefault("LOG_FORMAT", "json")
	cfg.ShutdownTimeout = shutdownTimeout

	if cfg.MQTT.BrokerAddress == "" {
		return nil, errors.New("mqtt.broker_address is required")
	}
	if cfg.Station.ID == "" || cfg.Station.Key == "" {
		return nil, errors.New("station.id and station.key are required")
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return nil, errors.New("kafka.enabled is true but no kafka brokers are configured")
	}

	return cfg, nil
}
