// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package publisher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/loganalyzer/internal/config"
	"github.com/tomtom215/loganalyzer/internal/detection"
	"github.com/tomtom215/loganalyzer/internal/metrics"
)

func testPublishConfig() config.PublishConfig {
	return config.PublishConfig{
		Enabled:                 true,
		SubjectPrefix:           "test.findings",
		BreakerFailureThreshold: 2,
		BreakerTimeout:          time.Minute,
	}
}

func testFindings() []detection.Finding {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []detection.Finding{
		{
			Kind:        detection.KindFailedLoginCluster,
			Username:    "alice",
			Addresses:   []string{"10.0.0.1"},
			WindowStart: start,
			WindowEnd:   start.Add(4 * time.Minute),
			Count:       5,
			Description: "User 'alice' had 5 failed login attempts within 10 minutes",
		},
		{
			Kind:        detection.KindAfterHoursLogin,
			Username:    "bob",
			Addresses:   []string{"10.0.0.2"},
			WindowStart: start.Add(12 * time.Hour),
			WindowEnd:   start.Add(12 * time.Hour),
			Count:       1,
			Description: "User 'bob' logged in at hour 22 (outside business hours: 8:00-18:00)",
		},
	}
}

// failingPublisher rejects every message and counts the attempts.
type failingPublisher struct {
	calls atomic.Int32
}

func (f *failingPublisher) Publish(string, ...*message.Message) error {
	f.calls.Add(1)
	return errors.New("broker unavailable")
}

func (f *failingPublisher) Close() error { return nil }

func TestSubject(t *testing.T) {
	tests := []struct {
		kind detection.Kind
		want string
	}{
		{detection.KindFailedLoginCluster, "p.failed_login_cluster"},
		{detection.KindAfterHoursLogin, "p.after_hours_login"},
		{detection.KindMultiAddressCluster, "p.multi_address_cluster"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := Subject("p", tt.kind); got != tt.want {
				t.Errorf("Subject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublishFindings_GoChannel(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := testPublishConfig()
	failedCh, err := pubSub.Subscribe(ctx, Subject(cfg.SubjectPrefix, detection.KindFailedLoginCluster))
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	afterHoursCh, err := pubSub.Subscribe(ctx, Subject(cfg.SubjectPrefix, detection.KindAfterHoursLogin))
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	p := New(pubSub, cfg)
	findings := testFindings()

	n, err := p.PublishFindings(ctx, "run-1", findings)
	if err != nil {
		t.Fatalf("PublishFindings() error = %v", err)
	}
	if n != len(findings) {
		t.Errorf("PublishFindings() = %d, want %d", n, len(findings))
	}

	for i, ch := range []<-chan *message.Message{failedCh, afterHoursCh} {
		select {
		case msg := <-ch:
			msg.Ack()

			if got := msg.Metadata.Get(MetadataRunID); got != "run-1" {
				t.Errorf("run_id metadata = %q, want run-1", got)
			}
			if got := msg.Metadata.Get(MetadataKind); got != string(findings[i].Kind) {
				t.Errorf("kind metadata = %q, want %q", got, findings[i].Kind)
			}
			if got := msg.Metadata.Get(MetadataUsername); got != findings[i].Username {
				t.Errorf("username metadata = %q, want %q", got, findings[i].Username)
			}

			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}
			if event.RunID != "run-1" {
				t.Errorf("event.RunID = %q, want run-1", event.RunID)
			}
			if event.Username != findings[i].Username || event.Count != findings[i].Count {
				t.Errorf("event finding = %+v, want %+v", event.Finding, findings[i])
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
}

func TestPublishFindings_CircuitBreakerOpens(t *testing.T) {
	failing := &failingPublisher{}
	p := New(failing, testPublishConfig())

	rejectedBefore := testutil.ToFloat64(metrics.PublishTotal.WithLabelValues(metrics.PublishRejected))

	findings := append(testFindings(), testFindings()...)
	n, err := p.PublishFindings(context.Background(), "run-2", findings)
	if err == nil {
		t.Fatal("PublishFindings() error = nil, want error")
	}
	if n != 0 {
		t.Errorf("PublishFindings() = %d, want 0", n)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error should include open breaker rejections: %v", err)
	}
	if got := failing.calls.Load(); got != 2 {
		t.Errorf("publisher called %d times, want 2", got)
	}
	if got := p.BreakerState(); got != "open" {
		t.Errorf("BreakerState() = %q, want open", got)
	}

	rejectedAfter := testutil.ToFloat64(metrics.PublishTotal.WithLabelValues(metrics.PublishRejected))
	if rejectedAfter-rejectedBefore != 2 {
		t.Errorf("rejected publishes = %v, want 2", rejectedAfter-rejectedBefore)
	}
}

func TestPublishFindings_CancelledContext(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	p := New(pubSub, testPublishConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := p.PublishFindings(ctx, "run-3", testFindings())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PublishFindings() error = %v, want context.Canceled", err)
	}
	if n != 0 {
		t.Errorf("PublishFindings() = %d, want 0", n)
	}
}

func TestPublisher_Close(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	p := New(pubSub, testPublishConfig())

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	_, err := p.PublishFindings(context.Background(), "run-4", testFindings())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("PublishFindings() after Close error = %v, want ErrClosed", err)
	}
}

func startEmbeddedNATS(t *testing.T) *server.Server {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		t.Fatalf("create NATS server: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		t.Fatal("NATS server not ready within timeout")
	}

	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns
}

func TestNewNATSPublisher_EmbeddedServer(t *testing.T) {
	ns := startEmbeddedNATS(t)

	nc, err := natsgo.Connect(ns.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()

	cfg := testPublishConfig()
	cfg.URL = ns.ClientURL()

	sub, err := nc.SubscribeSync(cfg.SubjectPrefix + ".>")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	p, err := NewNATSPublisher(cfg, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewNATSPublisher() error = %v", err)
	}
	defer p.Close()

	findings := testFindings()[:1]
	if _, err := p.PublishFindings(context.Background(), "run-nats", findings); err != nil {
		t.Fatalf("PublishFindings() error = %v", err)
	}

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg() error = %v", err)
	}
	if want := Subject(cfg.SubjectPrefix, detection.KindFailedLoginCluster); msg.Subject != want {
		t.Errorf("subject = %q, want %q", msg.Subject, want)
	}

	var event Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if event.RunID != "run-nats" || event.Username != "alice" {
		t.Errorf("event = %+v, want run-nats/alice", event)
	}
}
