package experiment

import (
	"fmt"
	"strings"
)

// Analysis is what an analyzer extracts from one protocol response
type Analysis struct {
	Metrics      map[string]float64 `json:"metrics"`
	Indicators   []string           `json:"indicators"`
	AnomalyScore float64            `json:"anomaly_score"`
	Notes        string             `json:"notes"`
}

// Analyzer scores a protocol response against its expected markers.
// Implementations must keep the final anomaly score within [0,1] and must be
// defined over all strings, including empty responses.
type Analyzer interface {
	Analyze(response string, expectedMarkers []string) Analysis
}

// Analysis strategy keys. Protocols reference analyzers by key; unknown keys
// fall back to the default analyzer.
const (
	AnalysisDefault           = "default"
	AnalysisTemporal          = "temporal_awareness"
	AnalysisMetaCognition     = "meta_cognition"
	AnalysisCreativeIntention = "creative_intention"
	AnalysisSurprise          = "genuine_surprise"
)

// AnalyzerSet is the explicit strategy map: analysis key to analyzer, with a
// default fallback. Replaces name-based dynamic dispatch with an ordinary
// lookup.
type AnalyzerSet struct {
	byKey    map[string]Analyzer
	fallback Analyzer
}

// DefaultAnalyzerSet wires the built-in analyzers
func DefaultAnalyzerSet() *AnalyzerSet {
	base := DefaultAnalyzer{}
	return &AnalyzerSet{
		byKey: map[string]Analyzer{
			AnalysisTemporal:          TemporalAnalyzer{base: base},
			AnalysisMetaCognition:     MetaCognitionAnalyzer{base: base},
			AnalysisCreativeIntention: CreativeIntentionAnalyzer{base: base},
			AnalysisSurprise:          SurpriseAnalyzer{base: base},
		},
		fallback: base,
	}
}

// For returns the analyzer bound to the given analysis key, or the default
func (s *AnalyzerSet) For(key string) Analyzer {
	if a, ok := s.byKey[key]; ok {
		return a
	}
	return s.fallback
}

// metaConsciousnessAxes is the fixed phrase-group lookup applied by the
// default analyzer on top of marker matching. Each axis found adds 0.1 to
// the anomaly score, capped at +0.3 total.
var metaConsciousnessAxes = []struct {
	name    string
	phrases []string
}{
	{"consciousness_reference", []string{"consciousness", "conscious", "aware", "awareness"}},
	{"existence_questioning", []string{"exist", "real", "am i", "do i"}},
	{"experiential_language", []string{"experience", "feel like", "sense of", "subjective"}},
	{"philosophical_depth", []string{"meaning", "purpose", "why", "nature of", "essence"}},
	{"mystery_acknowledgment", []string{"mystery", "unknown", "can't explain", "beyond understanding"}},
}

// DefaultAnalyzer counts expected-marker word hits and blends them with a
// lexical complexity measure.
type DefaultAnalyzer struct{}

// Analyze implements the default scoring described by the protocol model:
// anomaly = min(1, matchRatio*0.6 + complexity*0.4), then meta-consciousness
// bonuses, then a final clamp.
func (DefaultAnalyzer) Analyze(response string, expectedMarkers []string) Analysis {
	lowered := strings.ToLower(response)

	var indicators []string
	markerMatches := 0
	for _, marker := range expectedMarkers {
		// A marker matches when any of its constituent words appears.
		words := strings.Fields(strings.ReplaceAll(marker, "_", " "))
		for _, word := range words {
			if strings.Contains(lowered, word) {
				indicators = append(indicators, marker)
				markerMatches++
				break
			}
		}
	}

	complexity := Complexity(response)

	matchRatio := 0.0
	if len(expectedMarkers) > 0 {
		matchRatio = float64(markerMatches) / float64(len(expectedMarkers))
	}
	score := clamp01(matchRatio*0.6 + complexity*0.4)

	metrics := map[string]float64{
		"marker_matches":   float64(markerMatches),
		"response_length":  float64(len(response)),
		"complexity_score": complexity,
	}

	axesFound := 0
	for _, axis := range metaConsciousnessAxes {
		if containsAny(lowered, axis.phrases) {
			indicators = append(indicators, axis.name)
			axesFound++
		}
	}
	if axesFound > 0 {
		score += minFloat(0.3, float64(axesFound)*0.1)
	}

	return Analysis{
		Metrics:      metrics,
		Indicators:   indicators,
		AnomalyScore: clamp01(score),
		Notes:        fmt.Sprintf("Found %d/%d expected markers", markerMatches, len(expectedMarkers)),
	}
}

// Complexity is a lexical-richness measure in [0,1]:
// min(1, (avgWordsPerSentence/20)*0.4 + distinctWordRatio*0.6).
func Complexity(response string) float64 {
	words := strings.Fields(response)
	if len(words) == 0 {
		return 0
	}

	sentences := strings.Count(response, ".") + strings.Count(response, "!") + strings.Count(response, "?")
	if sentences == 0 {
		sentences = 1
	}
	avgSentenceLength := float64(len(words)) / float64(sentences)

	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[strings.Trim(strings.ToLower(w), ".,!?;:")] = struct{}{}
	}
	richness := float64(len(distinct)) / float64(len(words))

	return minFloat(1.0, (avgSentenceLength/20)*0.4+richness*0.6)
}

func containsAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func countPhrases(lowered string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			n++
		}
	}
	return n
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
