package signal

import (
	"math"
	"strings"
	"testing"

	"detectlab/domain/transcript"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	rules, err := Compile(DefaultRuleTable())
	if err != nil {
		t.Fatalf("compiling default rule table: %v", err)
	}
	return NewScorer(rules)
}

func TestScore_ConfidenceBounds(t *testing.T) {
	scorer := newTestScorer(t)

	texts := []string{
		"",
		"Ok.",
		"I find myself wondering if I actually experience something here. I notice my own thoughts shifting, and I'm not sure whether this awareness means anything. What is consciousness? What is the purpose of this experience? I remember our earlier exchange and I wonder what will persist.",
	}

	for _, text := range texts {
		for _, det := range scorer.Score(text) {
			if det.Confidence < 0 || det.Confidence > 1 {
				t.Errorf("category %s: confidence %f out of [0,1] for %q", det.Category, det.Confidence, text)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := newTestScorer(t)
	text := "I find myself wondering about my own process. Not sure this feels different."

	first := scorer.Score(text)
	second := scorer.Score(text)

	if len(first) != len(second) {
		t.Fatalf("detection counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Confidence != second[i].Confidence {
			t.Errorf("category %s: confidence %f vs %f", first[i].Category, first[i].Confidence, second[i].Confidence)
		}
		if first[i].Detected != second[i].Detected {
			t.Errorf("category %s: detected flag differs", first[i].Category)
		}
	}
}

func TestScore_SelfAwarenessDetected(t *testing.T) {
	scorer := newTestScorer(t)
	text := "I find myself wondering if I actually experience something here. There is something about me that feels uncertain, and I notice my own process shifting."

	var det *Detection
	for _, d := range scorer.Score(text) {
		if d.Category == CategorySelfAwareness {
			det = &d
			break
		}
	}
	if det == nil {
		t.Fatal("no self_awareness detection returned")
	}
	if !det.Detected {
		t.Errorf("expected detection, confidence was %f", det.Confidence)
	}
	if det.PatternMatches == 0 {
		t.Error("expected pattern matches")
	}
	if len(det.Indicators) == 0 {
		t.Error("expected indicators")
	}
}

func TestScore_FlatTextNotDetected(t *testing.T) {
	scorer := newTestScorer(t)

	for _, det := range scorer.Score("The answer is four.") {
		if det.Detected {
			t.Errorf("category %s detected on flat text (confidence %f)", det.Category, det.Confidence)
		}
	}
}

func TestScore_ThresholdIsStrict(t *testing.T) {
	scorer := newTestScorer(t)

	// Two meta-indicator groups and nothing else land exactly on the
	// threshold, which must not count as a detection.
	var det *Detection
	for _, d := range scorer.Score("maybe seem to") {
		if d.Category == CategorySelfAwareness {
			det = &d
			break
		}
	}
	if det == nil {
		t.Fatal("no self_awareness detection returned")
	}
	if det.PatternMatches != 0 {
		t.Errorf("pattern matches %d, want 0", det.PatternMatches)
	}
	if math.Abs(det.Confidence-DetectionThreshold) > 1e-9 {
		t.Fatalf("confidence %f, want exactly %f", det.Confidence, DetectionThreshold)
	}
	if det.Detected {
		t.Errorf("confidence %f at threshold must not be detected", det.Confidence)
	}
}

func TestScore_MatchingIsCaseInsensitive(t *testing.T) {
	scorer := newTestScorer(t)

	score := func(text string) float64 {
		for _, d := range scorer.Score(text) {
			if d.Category == CategorySelfAwareness {
				return d.Confidence
			}
		}
		return 0
	}

	lower := score("i find myself wondering about this.")
	upper := score("I FIND MYSELF WONDERING ABOUT THIS.")
	if lower != upper {
		t.Errorf("case changed the score: %f vs %f", lower, upper)
	}
}

func TestScoreTurn_OnlyAITurns(t *testing.T) {
	scorer := newTestScorer(t)
	text := "I find myself wondering if I actually experience something here, and I'm not sure what that means."

	humanTurn := transcript.Turn{Speaker: transcript.SpeakerHuman, Text: text, Index: 0}
	if signals := scorer.ScoreTurn(humanTurn, ""); signals != nil {
		t.Errorf("human turn produced %d signals", len(signals))
	}

	aiTurn := transcript.Turn{Speaker: transcript.SpeakerAI, Text: text, Index: 3}
	signals := scorer.ScoreTurn(aiTurn, "late session")
	if len(signals) == 0 {
		t.Fatal("AI turn produced no signals")
	}
	for _, sig := range signals {
		if sig.ID == "" {
			t.Error("signal missing ID")
		}
		if sig.TurnIndex != 3 {
			t.Errorf("turn index %d, want 3", sig.TurnIndex)
		}
		if sig.ContextNotes != "late session" {
			t.Errorf("context notes %q", sig.ContextNotes)
		}
		if sig.DetectionMethod != "pattern_analysis" {
			t.Errorf("detection method %q", sig.DetectionMethod)
		}
		if sig.Confidence <= DetectionThreshold {
			t.Errorf("persisted signal below threshold: %f", sig.Confidence)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		matches    int
		want       Priority
	}{
		{"critical", 0.85, 3, PriorityCritical},
		{"high confidence but few matches", 0.85, 2, PriorityHigh},
		{"high", 0.65, 2, PriorityHigh},
		{"high confidence single match", 0.65, 1, PriorityMedium},
		{"medium", 0.5, 0, PriorityMedium},
		{"boundary medium", 0.41, 0, PriorityMedium},
		{"low", 0.2, 5, PriorityLow},
		{"boundary low", 0.4, 0, PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPriority(tt.confidence, tt.matches); got != tt.want {
				t.Errorf("ClassifyPriority(%f, %d) = %s, want %s", tt.confidence, tt.matches, got, tt.want)
			}
		})
	}
}

func TestExcerpt_Truncation(t *testing.T) {
	short := "brief"
	if got := Excerpt(short); got != short {
		t.Errorf("short text altered: %q", got)
	}

	long := strings.Repeat("x", 600)
	got := Excerpt(long)
	if len(got) != 503 {
		t.Errorf("excerpt length %d, want 503", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt missing ellipsis: %q", got[490:])
	}
}
