// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/logging"
	"github.com/tomtom215/loganalyzer/internal/metrics"
)

// Metadata keys set on every published message.
const (
	MetadataKind     = "kind"
	MetadataUsername = "username"
	MetadataRunID    = "run_id"
)

// ErrClosed is returned when publishing after Close.
var ErrClosed = errors.New("publisher is closed")

// Event is the JSON payload of one published finding.
type Event struct {
	RunID       string    `json:"run_id"`
	PublishedAt time.Time `json:"published_at"`
	detection.Finding
}

// Publisher delivers findings through a Watermill publisher, guarded by a
// circuit breaker and a rate limiter.
type Publisher struct {
	publisher     message.Publisher
	breaker       *gobreaker.CircuitBreaker[any]
	limiter       *rate.Limiter
	subjectPrefix string

	mu     sync.Mutex
	closed bool
}

// NewLogger returns a Watermill logger backed by the global zerolog logger.
func NewLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger())
}

// NewNATSPublisher connects to NATS and returns a Publisher for it.
// Core NATS subjects are used unless cfg.JetStream is set.
func NewNATSPublisher(cfg config.PublishConfig, logger watermill.LoggerAdapter) (*Publisher, error) {
	if logger == nil {
		logger = NewLogger()
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("log-analyzer"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.ReconnectBufSize(8 * 1024 * 1024),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
		natsgo.ErrorHandler(func(_ *natsgo.Conn, sub *natsgo.Subscription, err error) {
			fields := watermill.LogFields{}
			if sub != nil {
				fields["subject"] = sub.Subject
			}
			logger.Error("NATS error", err, fields)
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      !cfg.JetStream,
			AutoProvision: cfg.JetStream,
			TrackMsgId:    cfg.JetStream,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	return New(pub, cfg), nil
}

// New wraps an existing Watermill publisher.
func New(pub message.Publisher, cfg config.PublishConfig) *Publisher {
	limit := rate.Inf
	burst := 1
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		burst = max(1, int(cfg.RatePerSecond))
	}

	return &Publisher{
		publisher:     pub,
		breaker:       newCircuitBreaker("publisher", cfg.BreakerFailureThreshold, cfg.BreakerTimeout),
		limiter:       rate.NewLimiter(limit, burst),
		subjectPrefix: cfg.SubjectPrefix,
	}
}

// Subject returns the topic a finding of the given kind is published to.
func Subject(prefix string, kind detection.Kind) string {
	return prefix + "." + strings.ToLower(string(kind))
}

// PublishFindings publishes each finding as its own message. A failed message
// does not stop the rest; the returned error joins every failure. Cancelling
// ctx stops publishing and returns the context error with the earlier ones.
func (p *Publisher) PublishFindings(ctx context.Context, runID string, findings []detection.Finding) (int, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}

	log := logging.Ctx(ctx)
	published := 0
	var errs []error

	for i := range findings {
		if err := p.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("rate limiter: %w", err))
			break
		}

		if err := p.publish(runID, findings[i]); err != nil {
			log.Warn().Err(err).
				Str("kind", string(findings[i].Kind)).
				Str("username", findings[i].Username).
				Msg("Failed to publish finding")
			errs = append(errs, err)
			continue
		}
		published++
	}

	log.Debug().Int("published", published).Int("findings", len(findings)).Msg("Findings published")
	return published, errors.Join(errs...)
}

func (p *Publisher) publish(runID string, finding detection.Finding) error {
	data, err := json.Marshal(Event{
		RunID:       runID,
		PublishedAt: time.Now().UTC(),
		Finding:     finding,
	})
	if err != nil {
		metrics.RecordPublish(metrics.PublishFailure)
		return fmt.Errorf("marshal finding: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetadataKind, string(finding.Kind))
	msg.Metadata.Set(MetadataUsername, finding.Username)
	msg.Metadata.Set(MetadataRunID, runID)
	msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)

	topic := Subject(p.subjectPrefix, finding.Kind)
	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.publisher.Publish(topic, msg)
	})
	if err != nil {
		if isBreakerRejection(err) {
			metrics.RecordPublish(metrics.PublishRejected)
		} else {
			metrics.RecordPublish(metrics.PublishFailure)
		}
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	metrics.RecordPublish(metrics.PublishSuccess)
	return nil
}

// BreakerState reports the circuit breaker state for health output.
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close closes the underlying publisher. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
