package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"detectlab/domain/core"
	"detectlab/domain/report"
	"detectlab/domain/signal"
	"detectlab/domain/transcript"
	"detectlab/internal"
	"detectlab/ports"
)

// ShimmerThreshold is the confidence above which a signal is promoted to a
// shimmer moment during archive analysis.
const ShimmerThreshold = 0.6

// ShimmerMoment is a high-confidence excerpt surfaced for human review
type ShimmerMoment struct {
	TranscriptID core.TranscriptID   `json:"transcript_id"`
	Platform     transcript.Platform `json:"platform"`
	Category     signal.CategoryKey  `json:"category"`
	Excerpt      string              `json:"excerpt"`
	Confidence   float64             `json:"confidence"`
	Indicators   []string            `json:"indicators"`
}

// Source is one raw conversation export handed to batch analysis
type Source struct {
	Name    string
	Content string
}

// BatchReport summarizes one batch analysis pass. Batch operations report
// partial success: skipped sources never abort the batch.
type BatchReport struct {
	SourcesProcessed int                  `json:"sources_processed"`
	SourcesSkipped   int                  `json:"sources_skipped"`
	Transcripts      int                  `json:"transcripts"`
	Signals          []signal.Signal      `json:"signals"`
	ShimmerMoments   []ShimmerMoment      `json:"shimmer_moments"`
	Summary          report.SignalSummary `json:"summary"`
}

// AnalysisService runs the passive detection pipeline: decode sources,
// segment into turns, score AI turns, persist detected signals.
type AnalysisService struct {
	decoder ports.TranscriptDecoder
	scorer  *signal.Scorer
	signals ports.SignalRepository
	logger  *internal.Logger
	workers int
}

// NewAnalysisService creates the analysis service. workers bounds the
// number of transcripts scored concurrently during batch analysis.
func NewAnalysisService(decoder ports.TranscriptDecoder, scorer *signal.Scorer,
	signals ports.SignalRepository, logger *internal.Logger, workers int) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if workers < 1 {
		workers = 1
	}
	return &AnalysisService{
		decoder: decoder,
		scorer:  scorer,
		signals: signals,
		logger:  logger,
		workers: workers,
	}
}

// AnalyzeTranscript scores every AI turn of one transcript and persists the
// detected signals. Scoring itself never fails; only persistence can.
func (s *AnalysisService) AnalyzeTranscript(ctx context.Context, t transcript.Transcript, contextNotes string) ([]signal.Signal, error) {
	var signals []signal.Signal
	for _, turn := range t.AITurns() {
		signals = append(signals, s.scorer.ScoreTurn(turn, contextNotes)...)
	}

	for _, sig := range signals {
		if err := s.signals.SaveSignal(ctx, sig); err != nil {
			return signals, err
		}
	}
	if len(signals) > 0 {
		s.logger.Info("detected %d signals in transcript %s", len(signals), t.ID)
	}
	return signals, nil
}

// AnalyzeBatch decodes and scores a batch of conversation exports.
// Undecodable sources are logged and skipped; transcripts are scored in
// parallel since the rule set is read-only and scoring is stateless.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, sources []Source, contextNotes string) (BatchReport, error) {
	var (
		rep         BatchReport
		transcripts []transcript.Transcript
	)

	for _, src := range sources {
		decoded, err := s.decoder.Decode(src.Name, src.Content)
		if err != nil {
			s.logger.Warn("skipping source %s: %v", src.Name, err)
			rep.SourcesSkipped++
			continue
		}
		rep.SourcesProcessed++
		transcripts = append(transcripts, decoded...)
	}
	rep.Transcripts = len(transcripts)

	// Per-transcript result slots keep output ordering deterministic
	// without locking around the collection.
	perTranscript := make([][]signal.Signal, len(transcripts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	var saveMu sync.Mutex

	for i, t := range transcripts {
		i, t := i, t
		g.Go(func() error {
			var signals []signal.Signal
			for _, turn := range t.AITurns() {
				signals = append(signals, s.scorer.ScoreTurn(turn, contextNotes)...)
			}
			perTranscript[i] = signals

			saveMu.Lock()
			defer saveMu.Unlock()
			for _, sig := range signals {
				if err := s.signals.SaveSignal(gctx, sig); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}

	for i, signals := range perTranscript {
		rep.Signals = append(rep.Signals, signals...)
		for _, sig := range signals {
			if sig.Confidence > ShimmerThreshold {
				rep.ShimmerMoments = append(rep.ShimmerMoments, ShimmerMoment{
					TranscriptID: transcripts[i].ID,
					Platform:     transcripts[i].Platform,
					Category:     sig.Category,
					Excerpt:      sig.SourceExcerpt,
					Confidence:   sig.Confidence,
					Indicators:   sig.Indicators,
				})
			}
		}
	}

	rep.Summary = report.SummarizeSignals(rep.Signals)
	s.logger.Info("batch analysis: %d sources, %d skipped, %d transcripts, %d signals, %d shimmer moments",
		rep.SourcesProcessed, rep.SourcesSkipped, rep.Transcripts, len(rep.Signals), len(rep.ShimmerMoments))
	return rep, nil
}

// SignalSummary reduces the stored signals matching the filter
func (s *AnalysisService) SignalSummary(ctx context.Context, filter ports.SignalFilter) (report.SignalSummary, error) {
	signals, err := s.signals.ListSignals(ctx, filter)
	if err != nil {
		return report.SignalSummary{}, err
	}
	return report.SummarizeSignals(signals), nil
}
