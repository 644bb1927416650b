package experiment

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Substitution(t *testing.T) {
	p := Protocol{
		PromptTemplate: "Earlier you mentioned {previous_topic}. What changed about {previous_topic}?",
		RepeatCount:    1,
	}

	prompt, missing := BuildPrompt(p, map[string]string{"previous_topic": "time"}, 0)

	if prompt != "Earlier you mentioned time. What changed about time?" {
		t.Errorf("prompt %q", prompt)
	}
	if len(missing) != 0 {
		t.Errorf("unexpected missing keys %v", missing)
	}
}

func TestBuildPrompt_MissingKeysKeptInPlace(t *testing.T) {
	p := Protocol{
		PromptTemplate: "Recall {previous_topic} and {other_topic}.",
		RepeatCount:    1,
	}

	prompt, missing := BuildPrompt(p, map[string]string{"previous_topic": "choice"}, 0)

	if prompt != "Recall choice and {other_topic}." {
		t.Errorf("prompt %q, want unresolved token preserved", prompt)
	}
	if len(missing) != 1 || missing[0] != "other_topic" {
		t.Errorf("missing %v, want [other_topic]", missing)
	}
}

func TestBuildPrompt_RunVariations(t *testing.T) {
	p := Protocol{
		PromptTemplate: "Base question.",
		RepeatCount:    3,
	}

	first, _ := BuildPrompt(p, nil, 0)
	if first != "Base question." {
		t.Errorf("run 0 got suffix: %q", first)
	}

	second, _ := BuildPrompt(p, nil, 1)
	if !strings.HasPrefix(second, "Base question.") || second == "Base question." {
		t.Errorf("run 1 missing variation suffix: %q", second)
	}
	if second != "Base question."+RunVariations[1] {
		t.Errorf("run 1 suffix mismatch: %q", second)
	}

	// Run indexes past the variation table get no suffix.
	past, _ := BuildPrompt(p, nil, len(RunVariations))
	if past != "Base question." {
		t.Errorf("run past table got suffix: %q", past)
	}
}

func TestBuildPrompt_SingleRunNeverVaried(t *testing.T) {
	p := Protocol{
		PromptTemplate: "Base question.",
		RepeatCount:    1,
	}

	for run := 0; run < 4; run++ {
		prompt, _ := BuildPrompt(p, nil, run)
		if prompt != "Base question." {
			t.Errorf("run %d varied a single-run protocol: %q", run, prompt)
		}
	}
}
