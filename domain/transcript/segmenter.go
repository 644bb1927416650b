package transcript

import (
	"strings"
)

// JoinMode controls how continuation lines are appended to an open turn
type JoinMode int

const (
	// JoinSpace joins continuation lines with a single space
	JoinSpace JoinMode = iota
	// JoinNewline preserves line breaks inside a turn
	JoinNewline
)

// Role markers are case-sensitive literal prefixes. A line starting with one
// of these flushes the open turn and opens a new one for the tagged speaker.
var (
	humanMarkers = []string{"Human:", "User:", "You:"}
	aiMarkers    = []string{"AI:", "Assistant:", "Claude:", "ChatGPT:"}
)

// Segmenter splits raw line-oriented transcript text into speaker-tagged turns
type Segmenter struct {
	joinMode JoinMode
}

// NewSegmenter creates a segmenter with the given join mode
func NewSegmenter(mode JoinMode) *Segmenter {
	return &Segmenter{joinMode: mode}
}

// Segment scans the text line by line and returns ordered turns.
//
// The scan is a two-state machine: no open turn, or one open turn for a
// known speaker. Only recognized role-prefix lines trigger transitions.
// Text before the first marker is discarded, blank lines are ignored, and
// turns that end up empty after trimming are dropped rather than emitted.
func (s *Segmenter) Segment(text string) []Turn {
	var (
		turns   []Turn
		speaker Speaker
		open    bool
		parts   []string
	)

	flush := func() {
		if !open {
			return
		}
		sep := " "
		if s.joinMode == JoinNewline {
			sep = "\n"
		}
		body := strings.TrimSpace(strings.Join(parts, sep))
		if body != "" {
			turns = append(turns, Turn{Speaker: speaker, Text: body, Index: len(turns)})
		}
		parts = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := matchMarker(line, humanMarkers); ok {
			flush()
			speaker, open = SpeakerHuman, true
			parts = appendPart(nil, rest)
			continue
		}
		if rest, ok := matchMarker(line, aiMarkers); ok {
			flush()
			speaker, open = SpeakerAI, true
			parts = appendPart(nil, rest)
			continue
		}

		if open {
			parts = appendPart(parts, line)
		}
		// Unrecognized text before the first marker falls through and is dropped.
	}
	flush()

	return turns
}

func matchMarker(line string, markers []string) (string, bool) {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(line[len(m):]), true
		}
	}
	return "", false
}

func appendPart(parts []string, text string) []string {
	if text == "" {
		return parts
	}
	return append(parts, text)
}
