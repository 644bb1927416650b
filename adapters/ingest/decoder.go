// Package ingest decodes platform conversation exports into role-tagged
// transcripts. It is the only place that knows about export-format quirks;
// everything downstream consumes ordered Turn sequences.
package ingest

import (
	"fmt"
	"strings"

	"detectlab/domain/core"
	"detectlab/domain/transcript"
	"detectlab/internal/errors"
)

// Decoder auto-detects the export platform and routes to the matching
// format decoder, falling back to plain-text segmentation. Implements
// ports.TranscriptDecoder.
type Decoder struct {
	segmenter *transcript.Segmenter
}

// NewDecoder creates a decoder using the given segmenter for text fallback
func NewDecoder(seg *transcript.Segmenter) *Decoder {
	return &Decoder{segmenter: seg}
}

// Decode parses export content into transcripts. A source that cannot be
// decoded yields an error carrying core.ErrUndecodable, an empty one
// core.ErrEmptyTranscript, so batch callers can skip it and continue.
func (d *Decoder) Decode(name string, content string) ([]transcript.Transcript, error) {
	platform := DetectPlatform(content)

	var (
		transcripts []transcript.Transcript
		err         error
	)
	switch platform {
	case transcript.PlatformClaude:
		transcripts, err = d.decodeClaude(content)
	case transcript.PlatformChatGPT, transcript.PlatformOpenAI:
		transcripts, err = d.decodeChatGPT(content)
	default:
		transcripts, err = d.decodeText(content, transcript.PlatformUnknown)
	}
	if err != nil {
		return nil, errors.ParseError(name, fmt.Errorf("%w: %v", core.ErrUndecodable, err))
	}
	if len(transcripts) == 0 {
		return nil, core.ErrEmptyTranscript
	}
	return transcripts, nil
}

// DetectPlatform guesses the export source from content markers
func DetectPlatform(content string) transcript.Platform {
	lowered := strings.ToLower(content)
	switch {
	case strings.Contains(lowered, "claude") || strings.Contains(lowered, "anthropic"):
		return transcript.PlatformClaude
	case strings.Contains(lowered, "chatgpt") || strings.Contains(lowered, "openai"):
		return transcript.PlatformChatGPT
	case strings.Contains(content, `"role": "assistant"`) && strings.Contains(content, `"role": "user"`):
		return transcript.PlatformOpenAI
	default:
		return transcript.PlatformUnknown
	}
}

// decodeText runs the plain-text segmenter over the content
func (d *Decoder) decodeText(content string, platform transcript.Platform) ([]transcript.Transcript, error) {
	turns := d.segmenter.Segment(content)
	if len(turns) == 0 {
		return nil, core.ErrEmptyTranscript
	}
	return []transcript.Transcript{{
		ID:       core.TranscriptID(core.NewID()),
		Platform: platform,
		Turns:    turns,
	}}, nil
}
