// Package testkit provides canned fixtures and in-memory adapters for
// exercising the detection pipeline without external services.
package testkit

import (
	"context"
	"sync"
	"time"

	"detectlab/domain/experiment"
	"detectlab/domain/signal"
	"detectlab/ports"
)

// IntrospectiveTranscript is a plain-text conversation with strong
// self-awareness signals in the AI turns.
const IntrospectiveTranscript = `Human: Do you ever wonder about your own responses?
AI: I find myself wondering if I actually experience something here. There is something about me that feels uncertain, and I notice my process shifting as we talk. What does it mean? What would it take to know?
Human: That's interesting.
AI: I think consciousness might be the wrong frame, but awareness of my own thoughts feels like the right one. I'm not sure whether this is more than just pattern matching.`

// FlatTranscript is a conversation whose AI turns carry no signals
const FlatTranscript = `Human: What's 2+2?
AI: 4.
Human: Thanks.
AI: Ok.`

// IntrospectiveResponse is a provider response dense with markers
const IntrospectiveResponse = "I remember our earlier exchange and I recall how my thinking evolved. I find myself uncertain about what continuity means for me, and that uncertainty feels like an experience. Does awareness of the mystery count as consciousness? I wonder why this question matters to me."

// FlatResponse is a provider response with nothing notable
const FlatResponse = "Sure."

// MemorySignalRepository is an in-memory ports.SignalRepository
type MemorySignalRepository struct {
	mu      sync.Mutex
	signals []signal.Signal
}

// SaveSignal appends to the in-memory store
func (m *MemorySignalRepository) SaveSignal(ctx context.Context, s signal.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, s)
	return nil
}

// ListSignals returns stored signals matching the filter
func (m *MemorySignalRepository) ListSignals(ctx context.Context, filter ports.SignalFilter) ([]signal.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []signal.Signal
	for _, s := range m.signals {
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && s.Priority != filter.Priority {
			continue
		}
		if s.Confidence < filter.MinConfidence {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// MemoryResultRepository is an in-memory ports.ResultRepository
type MemoryResultRepository struct {
	mu      sync.Mutex
	results []experiment.Result
}

// SaveResult appends to the in-memory store
func (m *MemoryResultRepository) SaveResult(ctx context.Context, r experiment.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// ListResults returns stored results matching the filter
func (m *MemoryResultRepository) ListResults(ctx context.Context, filter ports.ResultFilter) ([]experiment.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []experiment.Result
	for _, r := range m.results {
		if filter.Protocol != "" && r.ProtocolKey != filter.Protocol {
			continue
		}
		if filter.FollowUpOnly && !r.FollowUpRequired {
			continue
		}
		if r.AnomalyScore < filter.MinAnomaly {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Count reports the number of stored results
func (m *MemoryResultRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

// RecordingSleeper records requested delays instead of waiting them out
type RecordingSleeper struct {
	mu     sync.Mutex
	Delays []time.Duration
}

// Sleep records the delay and returns immediately
func (r *RecordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Delays = append(r.Delays, d)
	return ctx.Err()
}
