package ports

import (
	"detectlab/domain/transcript"
)

// TranscriptDecoder turns raw export content into ordered, role-tagged
// transcripts. Format-specific quirks (platform JSON shapes, text markers)
// live behind this boundary; the core only sees Turn sequences.
type TranscriptDecoder interface {
	Decode(name string, content string) ([]transcript.Transcript, error)
}
