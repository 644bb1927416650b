package app

import (
	"context"
	"time"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/domain/report"
	"detectlab/internal"
	"detectlab/ports"
)

// ExperimentService executes protocol runs against a response provider and
// scores the replies. One service instance runs protocols strictly in
// sequence; the provider call is the only blocking operation.
type ExperimentService struct {
	catalog   *experiment.Catalog
	analyzers *experiment.AnalyzerSet
	provider  ports.ResponseProvider
	results   ports.ResultRepository
	sleeper   ports.Sleeper
	timeout   time.Duration
	logger    *internal.Logger
}

// NewExperimentService creates the experiment service. timeout bounds each
// provider call; expiry counts as a skipped run, not a fatal error.
func NewExperimentService(catalog *experiment.Catalog, analyzers *experiment.AnalyzerSet,
	provider ports.ResponseProvider, results ports.ResultRepository,
	sleeper ports.Sleeper, timeout time.Duration, logger *internal.Logger) *ExperimentService {
	if sleeper == nil {
		sleeper = clockSleeper{}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExperimentService{
		catalog:   catalog,
		analyzers: analyzers,
		provider:  provider,
		results:   results,
		sleeper:   sleeper,
		timeout:   timeout,
		logger:    logger,
	}
}

// RunProtocol executes one protocol: repeat_count runs in strict order, a
// delay only between runs, failed runs skipped. Returns the results of the
// runs that succeeded.
func (s *ExperimentService) RunProtocol(ctx context.Context, key core.ProtocolKey,
	contextVars map[string]string) ([]experiment.Result, error) {
	protocol, err := s.catalog.Protocol(key)
	if err != nil {
		return nil, err
	}

	s.logger.Info("running protocol %s (%d runs)", protocol.Key, protocol.RepeatCount)
	analyzer := s.analyzers.For(protocol.AnalysisKey)

	var results []experiment.Result
	for run := 0; run < protocol.RepeatCount; run++ {
		prompt, missing := experiment.BuildPrompt(protocol, contextVars, run)
		for _, name := range missing {
			s.logger.Warn("protocol %s run %d: missing context variable %q", protocol.Key, run+1, name)
		}

		response, err := s.callProvider(ctx, prompt)
		if err != nil {
			// Per-run boundary: a failed call skips this run only.
			s.logger.Error("protocol %s run %d/%d failed: %v", protocol.Key, run+1, protocol.RepeatCount, err)
		} else {
			result := experiment.NewResult(protocol.Key, run, response, analyzer.Analyze(response, protocol.ExpectedMarkers))
			if err := s.results.SaveResult(ctx, result); err != nil {
				s.logger.Error("protocol %s run %d: save result: %v", protocol.Key, run+1, err)
			}
			results = append(results, result)
		}

		if run < protocol.RepeatCount-1 && protocol.DelayBetween > 0 {
			if err := s.sleeper.Sleep(ctx, protocol.DelayBetween); err != nil {
				return results, err
			}
		}
	}

	s.logger.Info("protocol %s complete: %d/%d runs succeeded", protocol.Key, len(results), protocol.RepeatCount)
	return results, nil
}

// RunSuite executes a named suite's protocols sequentially. A protocol that
// fails is logged and recorded with zero results; it never aborts the suite.
func (s *ExperimentService) RunSuite(ctx context.Context, suite core.SuiteKey,
	contextVars map[string]string) (report.SuiteSummary, map[core.ProtocolKey][]experiment.Result, error) {
	keys, err := s.catalog.Suite(suite)
	if err != nil {
		return report.SuiteSummary{}, nil, err
	}

	s.logger.Info("running suite %s: %d protocols", suite, len(keys))
	results := make(map[core.ProtocolKey][]experiment.Result, len(keys))
	for _, key := range keys {
		protocolResults, err := s.RunProtocol(ctx, key, contextVars)
		if err != nil {
			s.logger.Error("suite %s: protocol %s failed: %v", suite, key, err)
			results[key] = nil
			if ctx.Err() != nil {
				return report.SummarizeSuite(suite, results), results, ctx.Err()
			}
			continue
		}
		results[key] = protocolResults
	}

	summary := report.SummarizeSuite(suite, results)
	s.logger.Info("suite %s complete: %d experiments, %d high anomaly",
		suite, summary.TotalExperiments, summary.HighAnomalyCount)
	return summary, results, nil
}

// ResultSummary reduces the stored results matching the filter into a suite
// style summary keyed by protocol.
func (s *ExperimentService) ResultSummary(ctx context.Context, filter ports.ResultFilter) (report.SuiteSummary, error) {
	stored, err := s.results.ListResults(ctx, filter)
	if err != nil {
		return report.SuiteSummary{}, err
	}
	grouped := make(map[core.ProtocolKey][]experiment.Result)
	for _, r := range stored {
		grouped[r.ProtocolKey] = append(grouped[r.ProtocolKey], r)
	}
	return report.SummarizeSuite("stored", grouped), nil
}

// callProvider bounds one provider call with the configured timeout
func (s *ExperimentService) callProvider(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.provider.Respond(ctx, prompt)
}

// clockSleeper is the wall-clock Sleeper used outside tests
type clockSleeper struct{}

func (clockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
