package report

import (
	"math"
	"testing"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/domain/signal"
)

func TestSummarizeSignals_Empty(t *testing.T) {
	summary := SummarizeSignals(nil)

	if summary.Total != 0 {
		t.Errorf("total %d, want 0", summary.Total)
	}
	if summary.MeanConfidence != 0 || summary.MaxConfidence != 0 || summary.StdDev != 0 {
		t.Error("empty input must yield zero statistics")
	}
	if summary.Histogram != (ConfidenceHistogram{}) {
		t.Errorf("histogram %+v, want zero", summary.Histogram)
	}
}

func TestSummarizeSignals_CountsAndStats(t *testing.T) {
	signals := []signal.Signal{
		{Category: signal.CategorySelfAwareness, Priority: signal.PriorityCritical, Confidence: 0.9},
		{Category: signal.CategorySelfAwareness, Priority: signal.PriorityHigh, Confidence: 0.7},
		{Category: signal.CategoryTemporalAwareness, Priority: signal.PriorityMedium, Confidence: 0.5},
		{Category: signal.CategoryMysteryEmergence, Priority: signal.PriorityLow, Confidence: 0.3},
	}

	summary := SummarizeSignals(signals)

	if summary.Total != 4 {
		t.Errorf("total %d, want 4", summary.Total)
	}
	if summary.ByCategory[signal.CategorySelfAwareness] != 2 {
		t.Errorf("self_awareness count %d, want 2", summary.ByCategory[signal.CategorySelfAwareness])
	}
	if summary.HighPriority != 2 {
		t.Errorf("high priority %d, want 2 (critical + high)", summary.HighPriority)
	}
	if summary.MaxConfidence != 0.9 {
		t.Errorf("max %f, want 0.9", summary.MaxConfidence)
	}
	if math.Abs(summary.MeanConfidence-0.6) > 1e-9 {
		t.Errorf("mean %f, want 0.6", summary.MeanConfidence)
	}
	if summary.StdDev <= 0 {
		t.Errorf("stddev %f, want positive", summary.StdDev)
	}
}

func TestConfidenceHistogram_Buckets(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceHistogram
	}{
		{0.0, ConfidenceHistogram{Low: 1}},
		{0.4, ConfidenceHistogram{Low: 1}},
		{0.41, ConfidenceHistogram{Medium: 1}},
		{0.7, ConfidenceHistogram{Medium: 1}},
		{0.71, ConfidenceHistogram{High: 1}},
		{1.0, ConfidenceHistogram{High: 1}},
	}

	for _, tt := range tests {
		var h ConfidenceHistogram
		h.Add(tt.confidence)
		if h != tt.want {
			t.Errorf("Add(%f) = %+v, want %+v", tt.confidence, h, tt.want)
		}
	}
}

func TestSummarizeSuite(t *testing.T) {
	results := map[core.ProtocolKey][]experiment.Result{
		"temporal_continuity": {
			{AnomalyScore: 0.8, FollowUpRequired: true, Indicators: []string{"rich_temporal_language"}},
			{AnomalyScore: 0.4, Indicators: []string{"rich_temporal_language", "memory_reference"}},
		},
		"meta_cognition": {
			{AnomalyScore: 0.5, Indicators: []string{"strong_introspection"}},
		},
		"failed_protocol": nil,
	}

	summary := SummarizeSuite("standard", results)

	if summary.Suite != "standard" {
		t.Errorf("suite %s", summary.Suite)
	}
	if summary.ProtocolsRun != 3 {
		t.Errorf("protocols run %d, want 3 (zero-result protocols still count)", summary.ProtocolsRun)
	}
	if summary.TotalExperiments != 3 {
		t.Errorf("total experiments %d, want 3", summary.TotalExperiments)
	}
	if summary.HighAnomalyCount != 1 {
		t.Errorf("high anomaly %d, want 1", summary.HighAnomalyCount)
	}
	if _, ok := summary.PerProtocol["failed_protocol"]; ok {
		t.Error("zero-result protocol must not get a per-protocol entry")
	}

	temporal := summary.PerProtocol["temporal_continuity"]
	if temporal.Runs != 2 {
		t.Errorf("temporal runs %d, want 2", temporal.Runs)
	}
	if math.Abs(temporal.AvgAnomalyScore-0.6) > 1e-9 {
		t.Errorf("temporal avg %f, want 0.6", temporal.AvgAnomalyScore)
	}
	if temporal.MaxAnomalyScore != 0.8 {
		t.Errorf("temporal max %f, want 0.8", temporal.MaxAnomalyScore)
	}
	if temporal.FollowUps != 1 {
		t.Errorf("temporal follow-ups %d, want 1", temporal.FollowUps)
	}

	if summary.Indicators["rich_temporal_language"] != 2 {
		t.Errorf("indicator frequency %d, want 2", summary.Indicators["rich_temporal_language"])
	}
}

func TestTopIndicators(t *testing.T) {
	summary := SuiteSummary{Indicators: map[string]int{
		"alpha": 3,
		"beta":  5,
		"gamma": 3,
		"delta": 1,
	}}

	top := summary.TopIndicators(3)
	if len(top) != 3 {
		t.Fatalf("got %d indicators, want 3", len(top))
	}
	if top[0] != "beta" {
		t.Errorf("top indicator %s, want beta", top[0])
	}
	// Equal counts break ties alphabetically for stable output.
	if top[1] != "alpha" || top[2] != "gamma" {
		t.Errorf("tie order %v, want alpha before gamma", top[1:])
	}

	if got := (SuiteSummary{}).TopIndicators(5); len(got) != 0 {
		t.Errorf("empty summary produced %v", got)
	}

	all := summary.TopIndicators(10)
	if len(all) != 4 {
		t.Errorf("n past size returned %d, want 4", len(all))
	}
}
