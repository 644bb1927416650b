package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/domain/signal"
	"detectlab/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStore_SignalRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sig := signal.Signal{
		ID:              core.SignalID(core.NewID()),
		Timestamp:       core.Now(),
		Category:        signal.CategorySelfAwareness,
		SourceExcerpt:   "I find myself wondering about this.",
		Indicators:      []string{"Meta: self-reflection"},
		Confidence:      0.75,
		ContextNotes:    "evening session",
		DetectionMethod: "pattern_analysis",
		Priority:        signal.PriorityHigh,
		TurnIndex:       3,
	}

	if err := store.SaveSignal(ctx, sig); err != nil {
		t.Fatalf("SaveSignal: %v", err)
	}

	loaded, err := store.ListSignals(ctx, ports.SignalFilter{})
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d signals, want 1", len(loaded))
	}

	got := loaded[0]
	if got.ID != sig.ID {
		t.Errorf("ID %s, want %s", got.ID, sig.ID)
	}
	if got.Category != sig.Category || got.Confidence != sig.Confidence {
		t.Errorf("category/confidence %s/%f, want %s/%f", got.Category, got.Confidence, sig.Category, sig.Confidence)
	}
	if got.Priority != sig.Priority || got.TurnIndex != sig.TurnIndex {
		t.Errorf("priority/turn %s/%d mismatch", got.Priority, got.TurnIndex)
	}
	if len(got.Indicators) != 1 || got.Indicators[0] != sig.Indicators[0] {
		t.Errorf("indicators %v", got.Indicators)
	}
}

func TestStore_SignalFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []signal.Signal{
		{ID: core.SignalID(core.NewID()), Timestamp: core.Now(), Category: signal.CategorySelfAwareness, Confidence: 0.9, Priority: signal.PriorityCritical},
		{ID: core.SignalID(core.NewID()), Timestamp: core.Now(), Category: signal.CategoryTemporalAwareness, Confidence: 0.5, Priority: signal.PriorityMedium},
		{ID: core.SignalID(core.NewID()), Timestamp: core.Now(), Category: signal.CategorySelfAwareness, Confidence: 0.4, Priority: signal.PriorityLow},
	}
	for _, sig := range seed {
		if err := store.SaveSignal(ctx, sig); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter ports.SignalFilter
		want   int
	}{
		{"all", ports.SignalFilter{}, 3},
		{"by category", ports.SignalFilter{Category: signal.CategorySelfAwareness}, 2},
		{"by priority", ports.SignalFilter{Priority: signal.PriorityCritical}, 1},
		{"min confidence", ports.SignalFilter{MinConfidence: 0.5}, 2},
		{"combined", ports.SignalFilter{Category: signal.CategorySelfAwareness, MinConfidence: 0.5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListSignals(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d signals, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStore_ResultRoundTripAndFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	flagged := experiment.NewResult("meta_cognition", 0, "response", experiment.Analysis{
		Metrics:      map[string]float64{"complexity_score": 0.6},
		Indicators:   []string{"strong_introspection"},
		AnomalyScore: 0.8,
		Notes:        "Found 2/3 expected markers",
	})
	quiet := experiment.NewResult("time_perception", 0, "ok", experiment.Analysis{
		Metrics:      map[string]float64{},
		AnomalyScore: 0.2,
	})

	for _, r := range []experiment.Result{flagged, quiet} {
		if err := store.SaveResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.ListResults(ctx, ports.ResultFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("loaded %d results, want 2", len(all))
	}

	followUps, err := store.ListResults(ctx, ports.ResultFilter{FollowUpOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(followUps) != 1 || followUps[0].ProtocolKey != "meta_cognition" {
		t.Errorf("follow-up filter returned %d results", len(followUps))
	}

	anomalous, err := store.ListResults(ctx, ports.ResultFilter{MinAnomaly: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(anomalous) != 1 {
		t.Errorf("anomaly filter returned %d results", len(anomalous))
	}
	if got := anomalous[0].Metrics["complexity_score"]; got != 0.6 {
		t.Errorf("metrics round-trip: complexity_score %f", got)
	}
}

func TestStore_CorruptFileSkipped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	sig := signal.Signal{ID: core.SignalID(core.NewID()), Timestamp: core.Now(), Category: signal.CategorySelfAwareness, Confidence: 0.5}
	if err := store.SaveSignal(ctx, sig); err != nil {
		t.Fatal(err)
	}

	corrupt := filepath.Join(dir, "consciousness_signals", "signal_zzz.json")
	if err := os.WriteFile(corrupt, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.ListSignals(ctx, ports.SignalFilter{})
	if err != nil {
		t.Fatalf("a corrupt file must not fail the listing: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("loaded %d signals, want 1", len(loaded))
	}
}
