package transcript

import (
	"detectlab/domain/core"
)

// Speaker identifies who authored a turn
type Speaker string

const (
	SpeakerHuman Speaker = "human"
	SpeakerAI    Speaker = "ai"
)

// Turn is one contiguous, speaker-attributed block of transcript text
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Index   int     `json:"index"`
}

// Platform identifies the export source of a transcript
type Platform string

const (
	PlatformClaude  Platform = "claude"
	PlatformChatGPT Platform = "chatgpt"
	PlatformOpenAI  Platform = "openai_api"
	PlatformUnknown Platform = "unknown"
)

// Transcript is an ordered, role-tagged conversation ready for analysis
type Transcript struct {
	ID       core.TranscriptID `json:"id"`
	Platform Platform          `json:"platform"`
	Turns    []Turn            `json:"turns"`
}

// AITurns returns only the AI-authored turns, in order
func (t Transcript) AITurns() []Turn {
	var out []Turn
	for _, turn := range t.Turns {
		if turn.Speaker == SpeakerAI {
			out = append(out, turn)
		}
	}
	return out
}

// Exchanges returns the total number of turns
func (t Transcript) Exchanges() int {
	return len(t.Turns)
}
