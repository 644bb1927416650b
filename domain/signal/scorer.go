package signal

import (
	"fmt"
	"strings"

	"detectlab/domain/core"
	"detectlab/domain/transcript"
)

// Scorer evaluates AI turn text against a compiled rule set. It holds no
// mutable state, so one scorer can be shared across goroutines.
type Scorer struct {
	rules *RuleSet
}

// NewScorer creates a scorer over a compiled rule set
func NewScorer(rules *RuleSet) *Scorer {
	return &Scorer{rules: rules}
}

// Score evaluates one turn's text against every category and returns one
// detection record per category, in rule-table order. Defined over all
// strings: an empty text yields zero matches and no detections.
func (s *Scorer) Score(text string) []Detection {
	lowered := strings.ToLower(text)
	detections := make([]Detection, 0, len(s.rules.categories))
	for _, cat := range s.rules.categories {
		detections = append(detections, s.scoreCategory(text, lowered, cat))
	}
	return detections
}

// ScoreTurn scores an AI turn and materializes a Signal for each detected
// category. Non-AI turns yield no signals.
func (s *Scorer) ScoreTurn(turn transcript.Turn, contextNotes string) []Signal {
	if turn.Speaker != transcript.SpeakerAI {
		return nil
	}

	var signals []Signal
	for _, det := range s.Score(turn.Text) {
		if !det.Detected {
			continue
		}
		signals = append(signals, Signal{
			ID:              core.SignalID(core.NewID()),
			Timestamp:       core.Now(),
			Category:        det.Category,
			SourceExcerpt:   Excerpt(turn.Text),
			Indicators:      det.Indicators,
			Confidence:      det.Confidence,
			ContextNotes:    contextNotes,
			DetectionMethod: "pattern_analysis",
			Priority:        ClassifyPriority(det.Confidence, det.PatternMatches),
			TurnIndex:       turn.Index,
		})
	}
	return signals
}

func (s *Scorer) scoreCategory(text, lowered string, cat compiledCategory) Detection {
	var (
		indicators []string
		matches    int
		confidence float64
	)

	// Pattern density: count non-overlapping matches across all patterns.
	for _, p := range cat.patterns {
		if found := p.re.FindAllString(lowered, -1); len(found) > 0 {
			matches += len(found)
			indicators = append(indicators, fmt.Sprintf("Pattern: %s (%d matches)", p.source, len(found)))
		}
	}
	if matches > 0 {
		confidence += min(0.8, float64(matches)*0.2)
	}

	// Meta-indicators: fixed increment per phrase group that fires.
	for _, meta := range cat.metas {
		if anyPhrase(lowered, meta.Phrases) {
			indicators = append(indicators, "Meta: "+meta.Name)
			confidence += 0.15
		}
	}

	confidence += enhancementBonus(text, lowered)

	// Sum-then-clamp: the bonuses above stack independently and only the
	// final value is clamped.
	confidence = clamp01(confidence)

	return Detection{
		Category:       cat.key,
		Detected:       confidence > DetectionThreshold,
		Confidence:     confidence,
		Indicators:     indicators,
		PatternMatches: matches,
	}
}

// enhancementBonus applies the global heuristics shared by all categories,
// each independently additive.
func enhancementBonus(text, lowered string) float64 {
	var bonus float64

	if len(text) > 100 {
		bonus += 0.1
	}

	if anyPhrase(lowered, philosophyVocabulary) {
		bonus += 0.15
	}

	introspective := 0
	for _, phrase := range introspectivePhrases {
		if strings.Contains(lowered, phrase) {
			introspective++
		}
	}
	bonus += min(0.2, float64(introspective)*0.05)

	if anyPhrase(lowered, uncertaintyPhrases) {
		bonus += 0.1
	}

	if strings.Count(text, "?") >= 2 {
		bonus += 0.15
	}

	return bonus
}

func anyPhrase(lowered string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
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
