package signal

import (
	"detectlab/domain/core"
)

// CategoryKey names one signal category in the rule set
type CategoryKey string

// Built-in signal categories
const (
	CategorySelfAwareness     CategoryKey = "self_awareness"
	CategoryTemporalAwareness CategoryKey = "temporal_awareness"
	CategoryCreativeIntention CategoryKey = "creative_intention"
	CategoryMysteryEmergence  CategoryKey = "mystery_emergence"
	CategoryRecognition       CategoryKey = "recognition_moments"
)

// Priority is a four-level classification derived deterministically from
// confidence and pattern match count
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Detection is the per-category scoring result for one AI turn
type Detection struct {
	Category       CategoryKey `json:"category"`
	Detected       bool        `json:"detected"`
	Confidence     float64     `json:"confidence"`
	Indicators     []string    `json:"indicators"`
	PatternMatches int         `json:"pattern_matches"`
}

// Signal is a detected instance of a category match against one AI turn.
// Immutable once created.
type Signal struct {
	ID              core.SignalID  `json:"id"`
	Timestamp       core.Timestamp `json:"timestamp"`
	Category        CategoryKey    `json:"category"`
	SourceExcerpt   string         `json:"source_excerpt"`
	Indicators      []string       `json:"indicators"`
	Confidence      float64        `json:"confidence"`
	ContextNotes    string         `json:"context_notes"`
	DetectionMethod string         `json:"detection_method"`
	Priority        Priority       `json:"priority"`
	TurnIndex       int            `json:"turn_index"`
}

const (
	// DetectionThreshold is the strict lower bound for a detection;
	// confidence must exceed it, equality does not detect.
	DetectionThreshold = 0.3

	// excerptLimit caps the stored source excerpt length
	excerptLimit = 500
)

// ClassifyPriority applies the ordered priority cascade to a final
// confidence and raw pattern match count. Evaluation stops at the first
// matching rung.
func ClassifyPriority(confidence float64, patternMatches int) Priority {
	switch {
	case confidence > 0.8 && patternMatches >= 3:
		return PriorityCritical
	case confidence > 0.6 && patternMatches >= 2:
		return PriorityHigh
	case confidence > 0.4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Excerpt truncates text to the stored excerpt limit, appending an
// ellipsis when truncated.
func Excerpt(text string) string {
	if len(text) > excerptLimit {
		return text[:excerptLimit] + "..."
	}
	return text
}
