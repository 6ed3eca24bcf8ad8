// Log Analyzer - Suspicious Login Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/loganalyzer

package detection

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

// mixedRecords produces one finding of each kind.
func mixedRecords() []Record {
	records := failedAt("alice", 0, 1, 2, 3, 4)
	records = append(records,
		success("bob", "10.0.0.1", atHour(22, 0)),
		success("charlie", "172.16.0.1", atHour(14, 0)),
		success("charlie", "172.16.0.2", atHour(14, 5)),
	)
	return records
}

func TestEngine_DetectAll_KindOrder(t *testing.T) {
	engine := NewEngine(testConfig())

	findings, err := engine.DetectAll(context.Background(), mixedRecords())
	if err != nil {
		t.Fatalf("DetectAll: %v", err)
	}

	want := []Kind{KindFailedLoginCluster, KindAfterHoursLogin, KindMultiAddressCluster}
	if len(findings) != len(want) {
		t.Fatalf("got %d findings, want %d", len(findings), len(want))
	}
	for i, f := range findings {
		if f.Kind != want[i] {
			t.Errorf("finding %d kind = %s, want %s", i, f.Kind, want[i])
		}
	}
}

func TestEngine_DetectAll_LengthIsSumOfDetectors(t *testing.T) {
	cfg := testConfig()
	records := mixedRecords()
	records = append(records,
		success("alice", "192.168.1.2", atHour(6, 0)),
		success("alice", "192.168.1.3", atHour(6, 3)),
	)

	all := DetectAll(records, cfg)
	sum := len(DetectFailedLoginClusters(records, cfg)) +
		len(DetectAfterHoursLogins(records, cfg)) +
		len(DetectMultiAddressClusters(records, cfg))

	if len(all) != sum {
		t.Errorf("DetectAll returned %d findings, detectors returned %d", len(all), sum)
	}
}

func TestEngine_DetectAll_Empty(t *testing.T) {
	findings, err := NewEngine(testConfig()).DetectAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("DetectAll: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("got %d findings, want 0", len(findings))
	}
}

func TestEngine_ConcurrentMatchesSequential(t *testing.T) {
	records := mixedRecords()

	sequential, err := NewEngine(testConfig()).DetectAll(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}
	concurrent, err := NewEngine(testConfig(), WithConcurrency(true)).DetectAll(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(sequential, concurrent) {
		t.Errorf("concurrent output differs:\nseq: %+v\ncon: %+v", sequential, concurrent)
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(testConfig()).DetectAll(ctx, mixedRecords())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEngine_DoesNotModifyInput(t *testing.T) {
	records := []Record{
		failed("alice", at(4)),
		failed("alice", at(0)),
		success("bob", "10.0.0.2", at(1)),
		success("bob", "10.0.0.1", at(0)),
	}
	snapshot := append([]Record(nil), records...)

	DetectAll(records, testConfig())

	if !reflect.DeepEqual(records, snapshot) {
		t.Error("DetectAll modified its input")
	}
}

func TestEngine_SafeForConcurrentCallers(t *testing.T) {
	engine := NewEngine(testConfig(), WithConcurrency(true))
	records := mixedRecords()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			findings, err := engine.DetectAll(context.Background(), records)
			if err != nil || len(findings) != 3 {
				t.Errorf("DetectAll = %d findings, err %v", len(findings), err)
			}
		}()
	}
	wg.Wait()

	stats := engine.Stats()
	if stats.Runs != 8 {
		t.Errorf("Runs = %d, want 8", stats.Runs)
	}
	if stats.FindingsByKind[KindAfterHoursLogin] != 8 {
		t.Errorf("after-hours findings = %d, want 8", stats.FindingsByKind[KindAfterHoursLogin])
	}
	if stats.RecordsProcessed != int64(8*len(records)) {
		t.Errorf("RecordsProcessed = %d", stats.RecordsProcessed)
	}
}

func TestEngine_Detectors(t *testing.T) {
	detectors := NewEngine(testConfig()).Detectors()
	want := []Kind{KindFailedLoginCluster, KindAfterHoursLogin, KindMultiAddressCluster}
	for i, d := range detectors {
		if d.Kind() != want[i] {
			t.Errorf("detector %d = %s, want %s", i, d.Kind(), want[i])
		}
	}
}

func TestParseOutcome(t *testing.T) {
	tests := map[string]Outcome{
		"SUCCESS":   OutcomeSuccess,
		"success":   OutcomeSuccess,
		" Failed ":  OutcomeFailed,
		"LOCKED":    OutcomeUnknown,
		"":          OutcomeUnknown,
		"SUCCESSES": OutcomeUnknown,
	}
	for in, want := range tests {
		if got := ParseOutcome(in); got != want {
			t.Errorf("ParseOutcome(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestKindTitle(t *testing.T) {
	tests := map[Kind]string{
		KindFailedLoginCluster:  "Multiple Failed Login Attempts",
		KindAfterHoursLogin:     "Login Outside Business Hours",
		KindMultiAddressCluster: "Multiple IP Addresses",
		Kind("OTHER"):           "Unknown Event Type",
	}
	for k, want := range tests {
		if got := k.Title(); got != want {
			t.Errorf("%s.Title() = %q, want %q", k, got, want)
		}
	}
}
