// Package kafka forwards accepted raw station reports to a Kafka topic so
// the downstream weather-data ETL stack can archive and reprocess them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-station-bridge/internal/config"
	"github.com/couchcryptid/weather-station-bridge/internal/domain"
)

// Forwarder produces raw reports to the archive topic.
// It implements pipeline.Forwarder.
type Forwarder struct {
	writer *kafkago.Writer
	node   string
	logger *slog.Logger
}

// NewForwarder creates a Kafka producer for the configured archive topic.
func NewForwarder(cfg *config.Config, logger *slog.Logger) *Forwarder {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Forwarder{writer: w, node: cfg.MQTT.NodeID, logger: logger}
}

// Forward serializes one raw report and publishes it to the archive topic.
// Credentials are stripped: downstream consumers have no use for the
// station's shared secret.
func (f *Forwarder) Forward(ctx context.Context, report domain.Report, receivedAt time.Time) error {
	msg, err := serializeReport(report, f.node, receivedAt)
	if err != nil {
		return err
	}
	return f.writer.WriteMessages(ctx, msg)
}

func (f *Forwarder) Close() error {
	return f.writer.Close()
}

// serializeReport marshals a raw report into a Kafka message keyed by the
// station node so one station's reports stay in partition order.
func serializeReport(report domain.Report, node string, receivedAt time.Time) (kafkago.Message, error) {
	redacted := make(domain.Report, len(report))
	for k, v := range report {
		if k == "ID" || k == "PASSWORD" {
			continue
		}
		redacted[k] = v
	}

	data, err := json.Marshal(redacted)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(node),
		Value: data,
		Time:  receivedAt,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("weather-station-bridge")},
			{Key: "received_at", Value: []byte(receivedAt.Format(time.RFC3339))},
		},
	}, nil
}
