package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweephound/sweephound/internal/sweep"
)

func testCapture() *sweep.Capture {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return &sweep.Capture{
		Source:          "north_20250101_120000.csv",
		SkippedRows:     2,
		SkippedReadings: 1,
		Samples: []sweep.SweepSample{
			{
				Timestamp: base,
				FreqLow:   758e6,
				FreqHigh:  761e6,
				BinWidth:  1e6,
				Readings:  []float64{-80, -70, -60},
			},
			{
				Timestamp: base.Add(time.Second),
				FreqLow:   758e6,
				FreqHigh:  761e6,
				BinWidth:  1e6,
				Readings:  []float64{-81, -71, -61},
			},
		},
	}
}

func TestStoreImportAndReadCapture(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "archive.sqlite"))
	defer store.Close()

	ctx := context.Background()
	capture := testCapture()

	sessionID, err := store.ImportCapture(ctx, "directional", sweep.North, capture)
	if err != nil {
		t.Fatalf("Failed to import capture: %v", err)
	}

	session, err := store.Session(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if session == nil {
		t.Fatalf("Expected session %d to exist", sessionID)
	}
	if session.Label != "directional" {
		t.Errorf("Expected label 'directional', got %q", session.Label)
	}
	if !session.Heading.Valid || session.Heading.String != "north" {
		t.Errorf("Expected heading 'north', got %+v", session.Heading)
	}
	if session.SkippedRows != 2 || session.SkippedReadings != 1 {
		t.Errorf("Expected skip counts 2/1, got %d/%d", session.SkippedRows, session.SkippedReadings)
	}

	restored, err := store.ReadCapture(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to read capture back: %v", err)
	}

	if len(restored.Samples) != len(capture.Samples) {
		t.Fatalf("Expected %d samples, got %d", len(capture.Samples), len(restored.Samples))
	}
	if restored.SkippedRows != 2 || restored.SkippedReadings != 1 {
		t.Errorf("Expected skip counts restored, got %d/%d", restored.SkippedRows, restored.SkippedReadings)
	}

	for i, sample := range restored.Samples {
		want := capture.Samples[i]
		if sample.FreqLow != want.FreqLow {
			t.Errorf("Sample %d: expected freq low %f, got %f", i, want.FreqLow, sample.FreqLow)
		}
		if sample.FreqHigh != want.FreqHigh {
			t.Errorf("Sample %d: expected freq high %f, got %f", i, want.FreqHigh, sample.FreqHigh)
		}
		if len(sample.Readings) != len(want.Readings) {
			t.Fatalf("Sample %d: expected %d readings, got %d", i, len(want.Readings), len(sample.Readings))
		}
		for k, power := range sample.Readings {
			if power != want.Readings[k] {
				t.Errorf("Sample %d reading %d: expected %f, got %f", i, k, want.Readings[k], power)
			}
		}
	}
}

func TestStoreSessionNotFound(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "archive.sqlite"))
	defer store.Close()

	ctx := context.Background()
	if _, err := store.ImportCapture(ctx, "scan", "", testCapture()); err != nil {
		t.Fatalf("Failed to import capture: %v", err)
	}

	session, err := store.Session(ctx, 42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if session != nil {
		t.Errorf("Expected nil for a missing session, got %+v", session)
	}
}

func TestStoreSessions(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "archive.sqlite"))
	defer store.Close()

	ctx := context.Background()
	if _, err := store.ImportCapture(ctx, "baseline", "", testCapture()); err != nil {
		t.Fatalf("Failed to import baseline: %v", err)
	}
	if _, err := store.ImportCapture(ctx, "directional", sweep.East, testCapture()); err != nil {
		t.Fatalf("Failed to import directional capture: %v", err)
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	for _, sess := range sessions {
		switch sess.Label {
		case "baseline":
			if sess.Heading.Valid {
				t.Errorf("Expected no heading on the baseline session, got %q", sess.Heading.String)
			}
		case "directional":
			if !sess.Heading.Valid || sess.Heading.String != "east" {
				t.Errorf("Expected heading 'east' on the directional session, got %+v", sess.Heading)
			}
		default:
			t.Errorf("Unexpected session label %q", sess.Label)
		}
	}
}

func TestStoreIterateSpans(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "archive.sqlite"))
	defer store.Close()

	ctx := context.Background()
	sessionID, err := store.ImportCapture(ctx, "scan", "", testCapture())
	if err != nil {
		t.Fatalf("Failed to import capture: %v", err)
	}

	it, err := store.IterateSpans(ctx, sessionID, WithMinFreq(759e6))
	if err != nil {
		t.Fatalf("Failed to create iterator: %v", err)
	}
	defer it.Close()

	var spans int
	for it.Next() {
		span := it.Span()
		spans++
		// The 758 MHz bin is filtered out.
		if len(span.Points) != 2 {
			t.Errorf("Expected 2 points per span, got %d", len(span.Points))
		}
		if span.FrequencyStart != 759e6 {
			t.Errorf("Expected span start 759 MHz, got %f", span.FrequencyStart)
		}
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Iteration failed: %v", err)
	}
	if spans != 2 {
		t.Errorf("Expected 2 spans, got %d", spans)
	}
}

func TestStoreVantages(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "archive.sqlite"))
	defer store.Close()

	ctx := context.Background()
	want := VantageRecord{
		Name:              "front-yard",
		NorthFeet:         10,
		EastFeet:          -25,
		AntennaHeightFeet: 2.5,
	}

	if _, err := store.StoreVantage(ctx, &want); err != nil {
		t.Fatalf("Failed to store vantage: %v", err)
	}

	vantages, err := store.Vantages(ctx)
	if err != nil {
		t.Fatalf("Failed to list vantages: %v", err)
	}
	if len(vantages) != 1 {
		t.Fatalf("Expected 1 vantage, got %d", len(vantages))
	}

	got := vantages[0]
	if got.Name != want.Name || got.NorthFeet != want.NorthFeet ||
		got.EastFeet != want.EastFeet || got.AntennaHeightFeet != want.AntennaHeightFeet {
		t.Errorf("Expected %+v, got %+v", want, *got)
	}
}
