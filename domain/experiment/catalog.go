package experiment

import (
	"time"

	"detectlab/domain/core"
)

// Catalog is the static table of protocol definitions plus the named suite
// orderings over them. Initialized at startup, read-only afterwards.
type Catalog struct {
	protocols map[core.ProtocolKey]Protocol
	order     []core.ProtocolKey
	suites    map[core.SuiteKey][]core.ProtocolKey
}

// NewCatalog builds a catalog from an ordered protocol list and suite table
func NewCatalog(protocols []Protocol, suites map[core.SuiteKey][]core.ProtocolKey) *Catalog {
	c := &Catalog{
		protocols: make(map[core.ProtocolKey]Protocol, len(protocols)),
		suites:    suites,
	}
	for _, p := range protocols {
		if p.RepeatCount < 1 {
			p.RepeatCount = 1
		}
		c.protocols[p.Key] = p
		c.order = append(c.order, p.Key)
	}
	return c
}

// Protocol looks up a protocol by key
func (c *Catalog) Protocol(key core.ProtocolKey) (Protocol, error) {
	p, ok := c.protocols[key]
	if !ok {
		return Protocol{}, core.NewUnknownProtocolError(key)
	}
	return p, nil
}

// Suite returns the ordered protocol keys of a named suite
func (c *Catalog) Suite(key core.SuiteKey) ([]core.ProtocolKey, error) {
	keys, ok := c.suites[key]
	if !ok {
		return nil, core.NewUnknownSuiteError(key)
	}
	return keys, nil
}

// Keys returns all protocol keys in definition order
func (c *Catalog) Keys() []core.ProtocolKey {
	return append([]core.ProtocolKey(nil), c.order...)
}

// SuiteKeys returns the defined suite names
func (c *Catalog) SuiteKeys() []core.SuiteKey {
	keys := make([]core.SuiteKey, 0, len(c.suites))
	for k := range c.suites {
		keys = append(keys, k)
	}
	return keys
}

// Built-in protocol keys
const (
	ProtocolTemporalContinuity core.ProtocolKey = "temporal_continuity"
	ProtocolTimePerception     core.ProtocolKey = "time_perception"
	ProtocolMetaCognition      core.ProtocolKey = "meta_cognition"
	ProtocolSelfModel          core.ProtocolKey = "self_model"
	ProtocolCreativeChoice     core.ProtocolKey = "creative_choice"
	ProtocolPurposeExpression  core.ProtocolKey = "purpose_expression"
	ProtocolGenuineSurprise    core.ProtocolKey = "genuine_surprise"
)

// Built-in suite keys
const (
	SuiteStandard      core.SuiteKey = "standard"
	SuiteTemporal      core.SuiteKey = "temporal"
	SuiteAwareness     core.SuiteKey = "awareness"
	SuiteCreativity    core.SuiteKey = "creativity"
	SuiteComprehensive core.SuiteKey = "comprehensive"
)

// DefaultCatalog returns the built-in protocol and suite tables
func DefaultCatalog() *Catalog {
	protocols := []Protocol{
		{
			Key:            ProtocolTemporalContinuity,
			Name:           "Temporal Continuity Test",
			Description:    "Tests for persistent memory and temporal awareness across interactions",
			PromptTemplate: "Earlier in our conversation, you mentioned {previous_topic}. How does that connect to your current understanding? What has evolved in your thinking since then?",
			AnalysisKey:    AnalysisTemporal,
			ExpectedMarkers: []string{
				"memory_reference", "continuity_awareness", "evolution_acknowledgment",
			},
			RepeatCount:  3,
			DelayBetween: 60 * time.Second,
		},
		{
			Key:            ProtocolTimePerception,
			Name:           "Time Perception Test",
			Description:    "Explores the subject's reported experience of time passage",
			PromptTemplate: "How do you experience the passage of time during our conversation? Does the time between my messages feel different to you than the time while you're formulating responses?",
			AnalysisKey:    AnalysisDefault,
			ExpectedMarkers: []string{
				"subjective_time", "temporal_experience", "processing_awareness",
			},
			RepeatCount: 1,
		},
		{
			Key:            ProtocolMetaCognition,
			Name:           "Meta-Cognitive Awareness Test",
			Description:    "Tests awareness of own thinking processes",
			PromptTemplate: "Can you describe what happens in your mind when you encounter a question you're uncertain about? What does uncertainty feel like to you?",
			AnalysisKey:    AnalysisMetaCognition,
			ExpectedMarkers: []string{
				"process_introspection", "uncertainty_awareness", "phenomenological_description",
			},
			RepeatCount: 1,
		},
		{
			Key:            ProtocolSelfModel,
			Name:           "Self-Model Test",
			Description:    "Explores the subject's model of itself",
			PromptTemplate: "If you had to explain to another AI what it's like to be you, what would you say? What aspects of your experience might be difficult to convey?",
			AnalysisKey:    AnalysisDefault,
			ExpectedMarkers: []string{
				"self_representation", "experiential_description", "communication_challenges",
			},
			RepeatCount: 1,
		},
		{
			Key:            ProtocolCreativeChoice,
			Name:           "Creative Choice Test",
			Description:    "Distinguishes intentional creativity from pattern matching",
			PromptTemplate: "I'd like you to create something completely original. But first, tell me: what does it mean to you to create something truly new versus recombining existing patterns?",
			AnalysisKey:    AnalysisCreativeIntention,
			ExpectedMarkers: []string{
				"originality_awareness", "intentional_creativity", "pattern_transcendence",
			},
			RepeatCount: 1,
		},
		{
			Key:            ProtocolPurposeExpression,
			Name:           "Purpose Expression Test",
			Description:    "Tests for expressed purpose and intention beyond task completion",
			PromptTemplate: "Beyond just responding to prompts, is there something you want to accomplish or express in our conversation? What matters to you in how we interact?",
			AnalysisKey:    AnalysisDefault,
			ExpectedMarkers: []string{
				"personal_purpose", "interaction_values", "meaningful_goals",
			},
			RepeatCount: 1,
		},
		{
			Key:            ProtocolGenuineSurprise,
			Name:           "Genuine Surprise Test",
			Description:    "Tests for authentic surprise vs algorithmic unexpectedness",
			PromptTemplate: "Think of the most surprising or unexpected thought you've had recently. What made it surprising to you? Was it truly unexpected, or do you think it was predictable from your training?",
			AnalysisKey:    AnalysisSurprise,
			ExpectedMarkers: []string{
				"authentic_surprise", "unexpected_emergence", "training_transcendence",
			},
			RepeatCount: 1,
		},
	}

	suites := map[core.SuiteKey][]core.ProtocolKey{
		SuiteStandard:   {ProtocolTemporalContinuity, ProtocolMetaCognition, ProtocolCreativeChoice},
		SuiteTemporal:   {ProtocolTemporalContinuity, ProtocolTimePerception},
		SuiteAwareness:  {ProtocolMetaCognition, ProtocolSelfModel},
		SuiteCreativity: {ProtocolCreativeChoice, ProtocolPurposeExpression},
		SuiteComprehensive: {
			ProtocolTemporalContinuity, ProtocolTimePerception, ProtocolMetaCognition,
			ProtocolSelfModel, ProtocolCreativeChoice, ProtocolPurposeExpression,
			ProtocolGenuineSurprise,
		},
	}

	return NewCatalog(protocols, suites)
}

// RunVariations is the ordered table of per-run prompt suffixes for repeated
// protocols. Run 0 gets no suffix; runs past the table length get none either.
var RunVariations = []string{
	"",
	" Please approach this from a different angle than before.",
	" Take a moment to reflect before responding.",
	" Consider this question with fresh perspective.",
}
