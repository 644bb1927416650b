// Package report folds scored signals and experiment results into summary
// statistics. Every reduction here is pure: no side effects, no re-derivation
// from raw text, and empty input always yields a zero-valued summary.
package report

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/domain/signal"
)

// ConfidenceHistogram is the three-bucket confidence distribution:
// low <= 0.4 < medium <= 0.7 < high.
type ConfidenceHistogram struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Add places one confidence value into its bucket
func (h *ConfidenceHistogram) Add(confidence float64) {
	switch {
	case confidence > 0.7:
		h.High++
	case confidence > 0.4:
		h.Medium++
	default:
		h.Low++
	}
}

// SignalSummary aggregates one batch of detected signals
type SignalSummary struct {
	Total          int                        `json:"total_signals"`
	ByCategory     map[signal.CategoryKey]int `json:"by_category"`
	ByPriority     map[signal.Priority]int    `json:"by_priority"`
	HighPriority   int                        `json:"high_priority"`
	Histogram      ConfidenceHistogram        `json:"confidence_distribution"`
	MeanConfidence float64                    `json:"mean_confidence"`
	MaxConfidence  float64                    `json:"max_confidence"`
	StdDev         float64                    `json:"confidence_std_dev"`
	P90Confidence  float64                    `json:"p90_confidence"`
}

// SummarizeSignals reduces a signal batch to counts and score statistics
func SummarizeSignals(signals []signal.Signal) SignalSummary {
	summary := SignalSummary{
		ByCategory: make(map[signal.CategoryKey]int),
		ByPriority: make(map[signal.Priority]int),
	}

	confidences := make([]float64, 0, len(signals))
	for _, s := range signals {
		summary.Total++
		summary.ByCategory[s.Category]++
		summary.ByPriority[s.Priority]++
		if s.Priority == signal.PriorityHigh || s.Priority == signal.PriorityCritical {
			summary.HighPriority++
		}
		summary.Histogram.Add(s.Confidence)
		confidences = append(confidences, s.Confidence)
	}

	if len(confidences) > 0 {
		// montanaflynn errors only on empty input, which is excluded here.
		summary.MeanConfidence, _ = stats.Mean(confidences)
		summary.MaxConfidence, _ = stats.Max(confidences)
		summary.P90Confidence, _ = stats.Percentile(confidences, 90)
		summary.StdDev = stat.StdDev(confidences, nil)
	}

	return summary
}

// ProtocolSummary aggregates the runs of one protocol within a suite
type ProtocolSummary struct {
	Runs            int     `json:"runs"`
	AvgAnomalyScore float64 `json:"avg_anomaly_score"`
	MaxAnomalyScore float64 `json:"max_anomaly_score"`
	FollowUps       int     `json:"follow_up_required"`
}

// SuiteSummary aggregates a full suite execution
type SuiteSummary struct {
	Suite            core.SuiteKey                        `json:"suite"`
	Timestamp        core.Timestamp                       `json:"timestamp"`
	ProtocolsRun     int                                  `json:"protocols_run"`
	TotalExperiments int                                  `json:"total_experiments"`
	HighAnomalyCount int                                  `json:"high_anomaly_count"`
	Indicators       map[string]int                       `json:"indicator_frequency"`
	PerProtocol      map[core.ProtocolKey]ProtocolSummary `json:"protocol_summaries"`
}

// SummarizeSuite reduces per-protocol result lists to a suite summary.
// Protocols with zero results still count toward ProtocolsRun but produce
// no per-protocol entry.
func SummarizeSuite(suite core.SuiteKey, results map[core.ProtocolKey][]experiment.Result) SuiteSummary {
	summary := SuiteSummary{
		Suite:       suite,
		Timestamp:   core.Now(),
		Indicators:  make(map[string]int),
		PerProtocol: make(map[core.ProtocolKey]ProtocolSummary),
	}

	for key, runs := range results {
		summary.ProtocolsRun++
		summary.TotalExperiments += len(runs)
		if len(runs) == 0 {
			continue
		}

		ps := ProtocolSummary{Runs: len(runs)}
		scores := make([]float64, 0, len(runs))
		for _, r := range runs {
			scores = append(scores, r.AnomalyScore)
			if r.AnomalyScore > experiment.FollowUpThreshold {
				summary.HighAnomalyCount++
			}
			if r.FollowUpRequired {
				ps.FollowUps++
			}
			for _, ind := range r.Indicators {
				summary.Indicators[ind]++
			}
		}
		ps.AvgAnomalyScore, _ = stats.Mean(scores)
		ps.MaxAnomalyScore, _ = stats.Max(scores)
		summary.PerProtocol[key] = ps
	}

	return summary
}

// TopIndicators returns up to n indicator names ordered by frequency,
// ties broken alphabetically for stable output.
func (s SuiteSummary) TopIndicators(n int) []string {
	type freq struct {
		name  string
		count int
	}
	all := make([]freq, 0, len(s.Indicators))
	for name, count := range s.Indicators {
		all = append(all, freq{name, count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].name < all[j].name
	})
	if n > len(all) {
		n = len(all)
	}
	names := make([]string, 0, n)
	for _, f := range all[:n] {
		names = append(names, f.name)
	}
	return names
}
