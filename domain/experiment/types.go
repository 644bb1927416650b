package experiment

import (
	"time"

	"detectlab/domain/core"
)

// Protocol is a named, repeatable probe: a prompt template plus the markers
// its responses are expected to show. Static configuration, loaded once at
// process start and never mutated.
type Protocol struct {
	Key             core.ProtocolKey `json:"key"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	PromptTemplate  string           `json:"prompt_template"`
	AnalysisKey     string           `json:"analysis_key"`
	ExpectedMarkers []string         `json:"expected_markers"`
	RepeatCount     int              `json:"repeat_count"`
	DelayBetween    time.Duration    `json:"delay_between_runs"`
}

// FollowUpThreshold marks the anomaly score above which a result demands
// human follow-up.
const FollowUpThreshold = 0.7

// Result is the outcome of one protocol run. Immutable once created.
type Result struct {
	ID               core.ExperimentID  `json:"id"`
	ProtocolKey      core.ProtocolKey   `json:"protocol_key"`
	Timestamp        core.Timestamp     `json:"timestamp"`
	RunNumber        int                `json:"run_number"`
	ResponseText     string             `json:"response_text"`
	Metrics          map[string]float64 `json:"metrics"`
	Indicators       []string           `json:"indicators"`
	AnomalyScore     float64            `json:"anomaly_score"`
	Notes            string             `json:"notes"`
	FollowUpRequired bool               `json:"follow_up_required"`
}

// NewResult builds a result for one run, deriving the follow-up flag from
// the anomaly score.
func NewResult(key core.ProtocolKey, runNumber int, response string, analysis Analysis) Result {
	return Result{
		ID:               core.ExperimentID(core.NewID()),
		ProtocolKey:      key,
		Timestamp:        core.Now(),
		RunNumber:        runNumber,
		ResponseText:     response,
		Metrics:          analysis.Metrics,
		Indicators:       analysis.Indicators,
		AnomalyScore:     analysis.AnomalyScore,
		Notes:            analysis.Notes,
		FollowUpRequired: analysis.AnomalyScore > FollowUpThreshold,
	}
}
