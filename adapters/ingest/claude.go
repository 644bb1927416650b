package ingest

import (
	"encoding/json"
	"strings"

	"detectlab/domain/core"
	"detectlab/domain/transcript"
)

// claudeExport mirrors the Claude conversation export shape: a messages
// list where content is either a plain string or a list of typed blocks.
type claudeExport struct {
	Messages []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// decodeClaude handles Claude exports: a single conversation object, a list
// of them, or legacy text exports with speaker markers.
func (d *Decoder) decodeClaude(content string) ([]transcript.Transcript, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return d.decodeText(content, transcript.PlatformClaude)
	}

	var exports []claudeExport
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &exports); err != nil {
			return nil, err
		}
	} else {
		var single claudeExport
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, err
		}
		exports = []claudeExport{single}
	}

	var transcripts []transcript.Transcript
	for _, export := range exports {
		if t, ok := claudeTranscript(export); ok {
			transcripts = append(transcripts, t)
		}
	}
	return transcripts, nil
}

func claudeTranscript(export claudeExport) (transcript.Transcript, bool) {
	var turns []transcript.Turn
	for _, msg := range export.Messages {
		text := claudeMessageText(msg.Content)
		if strings.TrimSpace(text) == "" {
			continue
		}
		var speaker transcript.Speaker
		switch msg.Role {
		case "user", "human":
			speaker = transcript.SpeakerHuman
		case "assistant":
			speaker = transcript.SpeakerAI
		default:
			continue
		}
		turns = append(turns, transcript.Turn{
			Speaker: speaker,
			Text:    strings.TrimSpace(text),
			Index:   len(turns),
		})
	}
	if len(turns) == 0 {
		return transcript.Transcript{}, false
	}
	return transcript.Transcript{
		ID:       core.TranscriptID(core.NewID()),
		Platform: transcript.PlatformClaude,
		Turns:    turns,
	}, true
}

// claudeMessageText flattens string-or-blocks content to plain text
func claudeMessageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var blocks []claudeContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}
