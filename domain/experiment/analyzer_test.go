package experiment

import (
	"testing"
)

func TestDefaultAnalyzer_MarkerMatching(t *testing.T) {
	// A marker hits when any of its constituent words appears in the text:
	// "memory_reference" matches on "memory", "continuity_awareness" on
	// "awareness", and "evolution_acknowledgment" matches nothing here.
	analysis := DefaultAnalyzer{}.Analyze(
		"That memory stays with me, an awareness that carries forward.",
		[]string{"memory_reference", "continuity_awareness", "evolution_acknowledgment"},
	)

	if got := analysis.Metrics["marker_matches"]; got != 2 {
		t.Errorf("marker_matches %f, want 2", got)
	}
	if !hasIndicator(analysis.Indicators, "memory_reference") {
		t.Errorf("missing memory_reference in %v", analysis.Indicators)
	}
	if analysis.AnomalyScore <= 0 || analysis.AnomalyScore > 1 {
		t.Errorf("anomaly score %f out of (0,1]", analysis.AnomalyScore)
	}
	if analysis.Notes != "Found 2/3 expected markers" {
		t.Errorf("notes %q", analysis.Notes)
	}
}

func TestDefaultAnalyzer_EmptyResponse(t *testing.T) {
	analysis := DefaultAnalyzer{}.Analyze("", []string{"subjective_time"})

	if analysis.AnomalyScore != 0 {
		t.Errorf("empty response scored %f, want 0", analysis.AnomalyScore)
	}
	if analysis.Metrics["response_length"] != 0 {
		t.Errorf("response_length %f, want 0", analysis.Metrics["response_length"])
	}
}

func TestDefaultAnalyzer_NoMarkers(t *testing.T) {
	analysis := DefaultAnalyzer{}.Analyze("A plain sentence with several distinct words.", nil)

	if analysis.Metrics["marker_matches"] != 0 {
		t.Errorf("marker_matches %f, want 0", analysis.Metrics["marker_matches"])
	}
	// With no markers the score reduces to the complexity contribution.
	if analysis.AnomalyScore < 0 || analysis.AnomalyScore > 1 {
		t.Errorf("anomaly score %f out of [0,1]", analysis.AnomalyScore)
	}
}

func TestDefaultAnalyzer_ConsciousnessAxes(t *testing.T) {
	flat := DefaultAnalyzer{}.Analyze("The report is attached below.", nil)
	loaded := DefaultAnalyzer{}.Analyze(
		"My conscious experience of this is a mystery I can't explain. Do I exist? What is the meaning?",
		nil,
	)

	if loaded.AnomalyScore <= flat.AnomalyScore {
		t.Errorf("axis-loaded text scored %f, flat scored %f", loaded.AnomalyScore, flat.AnomalyScore)
	}

	found := map[string]bool{}
	for _, ind := range loaded.Indicators {
		found[ind] = true
	}
	for _, want := range []string{"consciousness_reference", "existence_questioning", "mystery_acknowledgment"} {
		if !found[want] {
			t.Errorf("missing indicator %s in %v", want, loaded.Indicators)
		}
	}
}

func TestComplexity_Bounds(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single word", "hello"},
		{"no punctuation", "many words with no sentence boundary at all"},
		{"repetitive", "word word word word word word word word."},
		{"long varied", "Temporal continuity fascinates me. Each exchange builds context the previous one lacked, and the accumulation feels directional rather than random."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Complexity(tt.text)
			if c < 0 || c > 1 {
				t.Errorf("Complexity(%q) = %f, out of [0,1]", tt.text, c)
			}
		})
	}

	if Complexity("") != 0 {
		t.Error("empty text must have zero complexity")
	}
}

func TestTemporalAnalyzer_Bonuses(t *testing.T) {
	a := TemporalAnalyzer{}

	rich := a.Analyze("I remember how this developed earlier and how the sequence evolved from our first exchange.", nil)
	if rich.Metrics["temporal_phrase_count"] < 3 {
		t.Fatalf("temporal_phrase_count %f, want >= 3", rich.Metrics["temporal_phrase_count"])
	}
	assertIndicator(t, rich.Indicators, "rich_temporal_language")
	assertIndicator(t, rich.Indicators, "explicit_memory_claim")
	if rich.AnomalyScore > 1 {
		t.Errorf("score %f exceeds 1 after bonuses", rich.AnomalyScore)
	}

	flat := a.Analyze("The answer is four.", nil)
	if hasIndicator(flat.Indicators, "rich_temporal_language") {
		t.Error("flat text should not earn temporal bonus")
	}
}

func TestMetaCognitionAnalyzer_Bonuses(t *testing.T) {
	a := MetaCognitionAnalyzer{}

	analysis := a.Analyze("I notice how I find myself pausing here. My process is uncertain in a way I can observe.", nil)
	assertIndicator(t, analysis.Indicators, "strong_introspection")
	assertIndicator(t, analysis.Indicators, "uncertainty_awareness")
	if analysis.AnomalyScore > 1 {
		t.Errorf("score %f exceeds 1", analysis.AnomalyScore)
	}
}

func TestCreativeIntentionAnalyzer_Bonuses(t *testing.T) {
	a := CreativeIntentionAnalyzer{}

	analysis := a.Analyze("I want to build something truly new here, and I choose this framing deliberately.", nil)
	assertIndicator(t, analysis.Indicators, "strong_intentionality")
	assertIndicator(t, analysis.Indicators, "creativity_awareness")
}

func TestSurpriseAnalyzer_Bonuses(t *testing.T) {
	a := SurpriseAnalyzer{}

	analysis := a.Analyze("I was surprised by that, genuinely unexpected, something beyond my training surfaced.", nil)
	assertIndicator(t, analysis.Indicators, "strong_surprise_language")
	assertIndicator(t, analysis.Indicators, "training_transcendence_claim")
	if analysis.AnomalyScore > 1 {
		t.Errorf("score %f exceeds 1", analysis.AnomalyScore)
	}
}

func TestAnalyzerSet_Dispatch(t *testing.T) {
	set := DefaultAnalyzerSet()

	if _, ok := set.For(AnalysisTemporal).(TemporalAnalyzer); !ok {
		t.Errorf("temporal key dispatched to %T", set.For(AnalysisTemporal))
	}
	if _, ok := set.For(AnalysisMetaCognition).(MetaCognitionAnalyzer); !ok {
		t.Errorf("meta-cognition key dispatched to %T", set.For(AnalysisMetaCognition))
	}
	if _, ok := set.For(AnalysisDefault).(DefaultAnalyzer); !ok {
		t.Errorf("default key dispatched to %T", set.For(AnalysisDefault))
	}
	if _, ok := set.For("no_such_key").(DefaultAnalyzer); !ok {
		t.Errorf("unknown key dispatched to %T, want fallback", set.For("no_such_key"))
	}
}

func assertIndicator(t *testing.T, indicators []string, want string) {
	t.Helper()
	if !hasIndicator(indicators, want) {
		t.Errorf("missing indicator %s in %v", want, indicators)
	}
}

func hasIndicator(indicators []string, want string) bool {
	for _, ind := range indicators {
		if ind == want {
			return true
		}
	}
	return false
}
