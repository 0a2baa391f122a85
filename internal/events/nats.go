package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/metrics"
)

// SubjectPrefix is the prefix for all conversation event subjects.
const SubjectPrefix = "casemate.conv"

// Config holds NATS connection configuration.
type Config struct {
	URL   string
	Token string
}

// NATSPublisher publishes events over a core NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// Connect establishes a connection to the NATS server.
func Connect(cfg Config, log *logger.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn, logger: log}, nil
}

// Publish emits the event on "casemate.conv.<type>".
func (p *NATSPublisher) Publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to encode event", zap.Error(err))
		metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "error").Inc()
		return
	}

	subject := fmt.Sprintf("%s.%s", SubjectPrefix, ev.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
		metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "error").Inc()
		return
	}

	metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "ok").Inc()
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// IsConnected reports whether the connection is up.
func (p *NATSPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}
