// Package jsonfile persists signals and experiment results as one JSON file
// per record, the lab's on-disk archive format.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"detectlab/domain/experiment"
	"detectlab/domain/signal"
	"detectlab/internal"
	"detectlab/internal/errors"
	"detectlab/ports"
)

const (
	signalsDirName = "consciousness_signals"
	resultsDirName = "experiment_results"
)

// Store implements ports.SignalRepository and ports.ResultRepository over a
// directory tree of per-record JSON files.
type Store struct {
	signalsDir string
	resultsDir string
	logger     *internal.Logger
}

// NewStore creates the store rooted at dir, creating subdirectories as needed
func NewStore(dir string, logger *internal.Logger) (*Store, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Store{
		signalsDir: filepath.Join(dir, signalsDirName),
		resultsDir: filepath.Join(dir, resultsDirName),
		logger:     logger,
	}
	for _, d := range []string{s.signalsDir, s.resultsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, errors.StoreError("create store directory", err)
		}
	}
	return s, nil
}

// SaveSignal writes one signal record
func (s *Store) SaveSignal(ctx context.Context, sig signal.Signal) error {
	path := filepath.Join(s.signalsDir, fmt.Sprintf("signal_%s.json", sig.ID))
	return writeRecord(path, sig)
}

// ListSignals loads all stored signals matching the filter, ordered by ID
// (UUIDv7 IDs sort chronologically). Corrupt files are skipped with a
// warning, never failing the listing.
func (s *Store) ListSignals(ctx context.Context, filter ports.SignalFilter) ([]signal.Signal, error) {
	paths, err := sortedGlob(s.signalsDir, "signal_*.json")
	if err != nil {
		return nil, errors.StoreError("list signals", err)
	}

	var out []signal.Signal
	for _, path := range paths {
		var sig signal.Signal
		if err := readRecord(path, &sig); err != nil {
			s.logger.Warn("skipping corrupt signal file %s: %v", path, err)
			continue
		}
		if !matchSignal(sig, filter) {
			continue
		}
		out = append(out, sig)
	}
	return out, nil
}

// SaveResult writes one experiment result record
func (s *Store) SaveResult(ctx context.Context, r experiment.Result) error {
	path := filepath.Join(s.resultsDir, fmt.Sprintf("experiment_%s.json", r.ID))
	return writeRecord(path, r)
}

// ListResults loads all stored results matching the filter, ordered by ID
func (s *Store) ListResults(ctx context.Context, filter ports.ResultFilter) ([]experiment.Result, error) {
	paths, err := sortedGlob(s.resultsDir, "experiment_*.json")
	if err != nil {
		return nil, errors.StoreError("list results", err)
	}

	var out []experiment.Result
	for _, path := range paths {
		var r experiment.Result
		if err := readRecord(path, &r); err != nil {
			s.logger.Warn("skipping corrupt result file %s: %v", path, err)
			continue
		}
		if !matchResult(r, filter) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func matchSignal(sig signal.Signal, f ports.SignalFilter) bool {
	if f.Category != "" && sig.Category != f.Category {
		return false
	}
	if f.Priority != "" && sig.Priority != f.Priority {
		return false
	}
	if sig.Confidence < f.MinConfidence {
		return false
	}
	if !f.Since.IsZero() && sig.Timestamp.Time().Before(f.Since) {
		return false
	}
	return true
}

func matchResult(r experiment.Result, f ports.ResultFilter) bool {
	if f.Protocol != "" && r.ProtocolKey != f.Protocol {
		return false
	}
	if f.FollowUpOnly && !r.FollowUpRequired {
		return false
	}
	if r.AnomalyScore < f.MinAnomaly {
		return false
	}
	if !f.Since.IsZero() && r.Timestamp.Time().Before(f.Since) {
		return false
	}
	return true
}

func writeRecord(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.StoreError("encode record", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.StoreError("write record", err)
	}
	return nil
}

func readRecord(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func sortedGlob(dir, pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
