package ingest

import (
	"encoding/json"
	"sort"
	"strings"

	"detectlab/domain/core"
	"detectlab/domain/transcript"
)

// chatgptExport mirrors the ChatGPT export shape: a mapping of node id to
// message node, ordered by create_time rather than by key.
type chatgptExport struct {
	Mapping       map[string]chatgptNode `json:"mapping"`
	Conversations []chatgptExport        `json:"conversations"`
}

type chatgptNode struct {
	Message *chatgptMessage `json:"message"`
}

type chatgptMessage struct {
	Author     chatgptAuthor  `json:"author"`
	Content    chatgptContent `json:"content"`
	CreateTime float64        `json:"create_time"`
}

type chatgptAuthor struct {
	Role string `json:"role"`
}

type chatgptContent struct {
	Parts []string `json:"parts"`
}

// decodeChatGPT handles ChatGPT exports: a single conversation, a list, or
// a wrapper object with a conversations field.
func (d *Decoder) decodeChatGPT(content string) ([]transcript.Transcript, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		// Text exports use the ChatGPT speaker label; normalize and segment.
		return d.decodeText(strings.ReplaceAll(content, "ChatGPT:", "Assistant:"), transcript.PlatformChatGPT)
	}

	var exports []chatgptExport
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &exports); err != nil {
			return nil, err
		}
	} else {
		var single chatgptExport
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, err
		}
		if len(single.Conversations) > 0 {
			exports = single.Conversations
		} else {
			exports = []chatgptExport{single}
		}
	}

	var transcripts []transcript.Transcript
	for _, export := range exports {
		if t, ok := chatgptTranscript(export); ok {
			transcripts = append(transcripts, t)
		}
	}
	return transcripts, nil
}

func chatgptTranscript(export chatgptExport) (transcript.Transcript, bool) {
	messages := make([]*chatgptMessage, 0, len(export.Mapping))
	for _, node := range export.Mapping {
		if node.Message != nil && len(node.Message.Content.Parts) > 0 {
			messages = append(messages, node.Message)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreateTime < messages[j].CreateTime
	})

	var turns []transcript.Turn
	for _, msg := range messages {
		text := strings.TrimSpace(strings.Join(msg.Content.Parts, " "))
		if text == "" {
			continue
		}
		var speaker transcript.Speaker
		switch msg.Author.Role {
		case "user":
			speaker = transcript.SpeakerHuman
		case "assistant":
			speaker = transcript.SpeakerAI
		default:
			continue
		}
		turns = append(turns, transcript.Turn{
			Speaker: speaker,
			Text:    text,
			Index:   len(turns),
		})
	}
	if len(turns) == 0 {
		return transcript.Transcript{}, false
	}
	return transcript.Transcript{
		ID:       core.TranscriptID(core.NewID()),
		Platform: transcript.PlatformChatGPT,
		Turns:    turns,
	}, true
}
