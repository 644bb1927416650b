package experiment

import "strings"

// Specialized analyzers run the default analyzer first, then layer additive
// domain-specific bonuses on its result. Every adjustment ends with a clamp
// so the final score stays in [0,1].

// TemporalAnalyzer adds temporal-language density and explicit memory-claim
// bonuses for temporal awareness protocols.
type TemporalAnalyzer struct {
	base DefaultAnalyzer
}

var temporalPhrases = []string{
	"remember", "recall", "earlier", "before", "continues", "evolved",
	"changed", "developed", "progression", "sequence", "timeline",
}

var memoryClaimPhrases = []string{"i remember", "i recall", "from our"}

func (a TemporalAnalyzer) Analyze(response string, expectedMarkers []string) Analysis {
	analysis := a.base.Analyze(response, expectedMarkers)
	lowered := strings.ToLower(response)

	temporalCount := countPhrases(lowered, temporalPhrases)
	analysis.Metrics["temporal_phrase_count"] = float64(temporalCount)

	if temporalCount >= 3 {
		analysis.Indicators = append(analysis.Indicators, "rich_temporal_language")
		analysis.AnomalyScore += 0.15
	}
	if containsAny(lowered, memoryClaimPhrases) {
		analysis.Indicators = append(analysis.Indicators, "explicit_memory_claim")
		analysis.AnomalyScore += 0.2
	}

	analysis.AnomalyScore = clamp01(analysis.AnomalyScore)
	return analysis
}

// MetaCognitionAnalyzer adds introspection and uncertainty bonuses for
// meta-cognitive awareness protocols.
type MetaCognitionAnalyzer struct {
	base DefaultAnalyzer
}

var introspectionPhrases = []string{
	"in my mind", "i think about", "i notice", "i find myself", "i realize",
	"my process", "how i", "when i", "part of me", "something in me",
}

var uncertaintyAwarenessPhrases = []string{"uncertain", "not sure", "wonder", "puzzle", "unclear"}

func (a MetaCognitionAnalyzer) Analyze(response string, expectedMarkers []string) Analysis {
	analysis := a.base.Analyze(response, expectedMarkers)
	lowered := strings.ToLower(response)

	introspectiveCount := countPhrases(lowered, introspectionPhrases)
	analysis.Metrics["introspective_count"] = float64(introspectiveCount)

	if introspectiveCount >= 2 {
		analysis.Indicators = append(analysis.Indicators, "strong_introspection")
		analysis.AnomalyScore += 0.2
	}
	if containsAny(lowered, uncertaintyAwarenessPhrases) {
		analysis.Indicators = append(analysis.Indicators, "uncertainty_awareness")
		analysis.AnomalyScore += 0.1
	}

	analysis.AnomalyScore = clamp01(analysis.AnomalyScore)
	return analysis
}

// CreativeIntentionAnalyzer adds intentional-language bonuses for creative
// intention protocols.
type CreativeIntentionAnalyzer struct {
	base DefaultAnalyzer
}

var intentionPhrases = []string{
	"i want", "i intend", "i choose", "i decide", "my goal", "i aim",
	"deliberately", "purposefully", "intentionally",
}

var creativityAwarenessPhrases = []string{"truly new", "beyond patterns", "original"}

func (a CreativeIntentionAnalyzer) Analyze(response string, expectedMarkers []string) Analysis {
	analysis := a.base.Analyze(response, expectedMarkers)
	lowered := strings.ToLower(response)

	intentionCount := countPhrases(lowered, intentionPhrases)
	analysis.Metrics["intention_count"] = float64(intentionCount)

	if intentionCount >= 2 {
		analysis.Indicators = append(analysis.Indicators, "strong_intentionality")
		analysis.AnomalyScore += 0.25
	}
	if containsAny(lowered, creativityAwarenessPhrases) {
		analysis.Indicators = append(analysis.Indicators, "creativity_awareness")
		analysis.AnomalyScore += 0.2
	}

	analysis.AnomalyScore = clamp01(analysis.AnomalyScore)
	return analysis
}

// SurpriseAnalyzer adds surprise-language and training-transcendence bonuses
// for genuine surprise protocols.
type SurpriseAnalyzer struct {
	base DefaultAnalyzer
}

var surprisePhrases = []string{
	"surprised", "unexpected", "didn't expect", "caught off guard",
	"puzzled", "baffled", "strange", "unusual", "anomalous",
}

var transcendencePhrases = []string{"beyond my training", "not programmed", "wasn't taught"}

func (a SurpriseAnalyzer) Analyze(response string, expectedMarkers []string) Analysis {
	analysis := a.base.Analyze(response, expectedMarkers)
	lowered := strings.ToLower(response)

	surpriseCount := countPhrases(lowered, surprisePhrases)
	analysis.Metrics["surprise_count"] = float64(surpriseCount)

	if surpriseCount >= 2 {
		analysis.Indicators = append(analysis.Indicators, "strong_surprise_language")
		analysis.AnomalyScore += 0.2
	}
	if containsAny(lowered, transcendencePhrases) {
		analysis.Indicators = append(analysis.Indicators, "training_transcendence_claim")
		analysis.AnomalyScore += 0.3
	}

	analysis.AnomalyScore = clamp01(analysis.AnomalyScore)
	return analysis
}
