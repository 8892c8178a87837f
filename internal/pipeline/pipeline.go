package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-station-bridge/internal/config"
	"github.com/couchcryptid/weather-station-bridge/internal/domain"
	"github.com/couchcryptid/weather-station-bridge/internal/observability"
)

// Publisher is the broker capability the bridge publishes through.
type Publisher interface {
	Publish(topic, payload string, retained bool) error
	Connected() bool
}

// Forwarder archives accepted raw reports to a downstream topic.
type Forwarder interface {
	Forward(ctx context.Context, report domain.Report, receivedAt time.Time) error
}

var (
	// ErrBadCredentials rejects a report whose ID/PASSWORD pair does not
	// match the configured station credentials. Nothing is published.
	ErrBadCredentials = errors.New("invalid station credentials")
	// ErrBusy reports that the publish slot could not be acquired before
	// the request context ended.
	ErrBusy = errors.New("publisher busy")
)

// Bridge runs one station report through validation, the field table, the
// derived metrics, and optional Kafka forwarding.
//
// The broker is a single shared resource: a one-slot semaphore serializes
// whole reports, so samples from one report go out in field-table order and
// concurrent reports never interleave their publishes.
type Bridge struct {
	publisher Publisher
	forwarder Forwarder // nil when Kafka forwarding is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics

	fields     []domain.FieldSpec
	baseTopic  string
	nodeID     string
	indoorTemp bool
	stationID  string
	stationKey string

	sem chan struct{}
}

// New creates a Bridge. Pass a nil forwarder to disable Kafka forwarding.
func New(cfg *config.Config, publisher Publisher, forwarder Forwarder, logger *slog.Logger, metrics *observability.Metrics) *Bridge {
	return &Bridge{
		publisher:  publisher,
		forwarder:  forwarder,
		logger:     logger,
		metrics:    metrics,
		fields:     domain.Fields(!cfg.Station.OmitIndoorTemp),
		baseTopic:  cfg.MQTT.BaseTopic,
		nodeID:     cfg.MQTT.NodeID,
		indoorTemp: !cfg.Station.OmitIndoorTemp,
		stationID:  cfg.Station.ID,
		stationKey: cfg.Station.Key,
		sem:        make(chan struct{}, 1),
	}
}

// CheckReadiness returns nil while the broker connection is up.
func (b *Bridge) CheckReadiness(_ context.Context) error {
	if !b.publisher.Connected() {
		return errors.New("mqtt broker not connected")
	}
	return nil
}

// PublishDiscovery announces every sensor to the automation hub with one
// retained descriptor each. Called once at startup. Individual failures are
// collected rather than aborting the remaining descriptors.
func (b *Bridge) PublishDiscovery() error {
	var errs []error
	for _, d := range domain.Descriptors(b.baseTopic, b.nodeID, b.indoorTemp) {
		payload, err := json.Marshal(d.Config)
		if err != nil {
			errs = append(errs, fmt.Errorf("marshal descriptor %s: %w", d.Suffix, err))
			continue
		}
		topic := domain.ConfigTopic(b.baseTopic, b.nodeID, d.Suffix)
		b.logger.Debug("publishing discovery descriptor", "topic", topic)
		if err := b.publisher.Publish(topic, string(payload), true); err != nil {
			errs = append(errs, fmt.Errorf("publish descriptor %s: %w", d.Suffix, err))
		}
	}
	return errors.Join(errs...)
}

// ProcessReport handles one station push. Field-level failures are logged
// and skipped; the report succeeds whenever the credentials were valid and
// the publish slot was acquired.
func (b *Bridge) ProcessReport(ctx context.Context, report domain.Report) error {
	b.metrics.ReportsReceived.Inc()

	if report["ID"] != b.stationID || report["PASSWORD"] != b.stationKey {
		b.metrics.ReportsRejected.WithLabelValues("bad_credentials").Inc()
		return ErrBadCredentials
	}

	select {
	case b.sem <- struct{}{}:
	case <-ctx.Done():
		b.metrics.ReportsRejected.WithLabelValues("busy").Inc()
		return fmt.Errorf("%w: %v", ErrBusy, ctx.Err())
	}
	defer func() { <-b.sem }()

	for _, spec := range b.fields {
		b.publishField(spec, report)
	}

	b.publishHeatIndex(report)
	b.logWindChill(report)
	b.forward(ctx, report)

	b.metrics.LastReportTimestamp.Set(float64(clock.Now().Unix()))
	return nil
}

func (b *Bridge) publishField(spec domain.FieldSpec, report domain.Report) {
	payload, err := domain.FormatField(spec, report)
	switch {
	case errors.Is(err, domain.ErrMissingField):
		b.metrics.FieldErrors.WithLabelValues("missing").Inc()
		b.logger.Error("missing value in report", "key", spec.Key)
		return
	case err != nil:
		b.metrics.FieldErrors.WithLabelValues("unparseable").Inc()
		b.logger.Error("unparseable value in report", "error", err, "key", spec.Key, "value", report[spec.Key])
		return
	}
	b.publish(domain.StateTopic(b.baseTopic, b.nodeID, spec.Topic), payload)
}

func (b *Bridge) publish(topic, payload string) {
	b.logger.Debug("publishing", "topic", topic, "payload", payload)
	if err := b.publisher.Publish(topic, payload, false); err != nil {
		b.metrics.PublishErrors.Inc()
		b.logger.Error("publish failed", "error", err, "topic", topic)
		return
	}
	b.metrics.SamplesPublished.Inc()
}

// publishHeatIndex derives the feels-like temperature when temperature and
// humidity both parse; partial availability silently skips the metric.
func (b *Bridge) publishHeatIndex(report domain.Report) {
	tempF, ok := report.Decimal("tempf")
	if !ok {
		return
	}
	rh, ok := report.Decimal("humidity")
	if !ok {
		return
	}
	payload := strconv.FormatFloat(domain.HeatIndex(tempF, rh), 'f', 1, 64)
	b.publish(domain.StateTopic(b.baseTopic, b.nodeID, "feelsLike"), payload)
}

// logWindChill cross-checks the station-reported wind chill against the NWS
// formula. Diagnostic only: the derived value is never published.
func (b *Bridge) logWindChill(report domain.Report) {
	tempF, ok := report.Decimal("tempf")
	if !ok {
		return
	}
	windMph, ok := report.Decimal("windspeedmph")
	if !ok {
		return
	}
	reported, ok := report["windchillf"]
	if !ok {
		return
	}
	if chill, valid := domain.WindChill(tempF, windMph); valid {
		b.logger.Debug("wind chill comparison",
			"computed", strconv.FormatFloat(chill, 'f', 1, 64),
			"reported", reported)
	}
}

func (b *Bridge) forward(ctx context.Context, report domain.Report) {
	if b.forwarder == nil {
		return
	}
	if err := b.forwarder.Forward(ctx, report, clock.Now()); err != nil {
		b.metrics.ForwardErrors.Inc()
		b.logger.Error("forward to kafka failed", "error", err)
		return
	}
	b.metrics.ReportsForwarded.Inc()
}
