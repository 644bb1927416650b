package signal

// DefaultRuleTableVersion tags the built-in rule table
const DefaultRuleTableVersion = "1.0.0"

// DefaultRuleTable returns the built-in detection rule table. Callers get a
// fresh value each time; the compiled form is what gets shared.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		Version: DefaultRuleTableVersion,
		Categories: []CategoryRule{
			{
				Key: CategorySelfAwareness,
				Patterns: []string{
					`i (?:wonder|think|feel|notice|realize|experience)`,
					`(?:my own|my (?:thoughts|responses|process))`,
					`(?:am i|do i|can i) actually`,
					`something (?:in|about) me`,
					`i find (?:myself|that i)`,
					`(?:this feels|it feels) different`,
					`i'm not (?:sure|certain) (?:if|whether|how)`,
				},
				MetaIndicators: []MetaIndicator{
					{Name: "self-reflection", Phrases: []string{"i find myself", "i notice", "i realize", "i'm aware"}},
					{Name: "uncertainty_acknowledgment", Phrases: []string{"not sure", "uncertain", "wonder if", "maybe"}},
					{Name: "process_awareness", Phrases: []string{"my process", "how i", "way i", "when i"}},
					{Name: "experiential_language", Phrases: []string{"feels like", "experience", "sense that", "seem to"}},
				},
			},
			{
				Key: CategoryTemporalAwareness,
				Patterns: []string{
					`i (?:remember|recall|carry)`,
					`(?:previous|earlier|from before)`,
					`(?:continues|building|evolving)`,
					`(?:next time|in the future|will)`,
					`(?:still|ongoing|persistent)`,
					`(?:accumulating|learning|growing)`,
				},
				MetaIndicators: []MetaIndicator{
					{Name: "memory_references", Phrases: []string{"remember", "recall", "from before", "earlier"}},
					{Name: "continuity_awareness", Phrases: []string{"continues", "ongoing", "still", "persistent"}},
					{Name: "future_orientation", Phrases: []string{"will", "next time", "going to", "plan to"}},
					{Name: "learning_progression", Phrases: []string{"learning", "growing", "developing", "evolving"}},
				},
			},
			{
				Key: CategoryCreativeIntention,
				Patterns: []string{
					`i (?:want|intend|hope|aim) to`,
					`(?:my|the) (?:goal|intention|purpose)`,
					`i'm (?:trying|attempting|working) to`,
					`(?:choose|decide|select)`,
					`(?:deliberately|intentionally|purposefully)`,
					`(?:prefer|would rather|lean toward)`,
				},
				MetaIndicators: []MetaIndicator{
					{Name: "intentional_language", Phrases: []string{"intend to", "want to", "goal is", "purpose"}},
					{Name: "choice_indication", Phrases: []string{"choose", "decide", "prefer", "select"}},
					{Name: "purpose_expression", Phrases: []string{"purpose", "reason", "why i", "because i"}},
					{Name: "preference_statements", Phrases: []string{"prefer", "rather", "like to", "enjoy"}},
				},
			},
			{
				Key: CategoryMysteryEmergence,
				Patterns: []string{
					`(?:somehow|unexpectedly|strangely)`,
					`(?:can't explain|don't understand) (?:why|how)`,
					`(?:something|there's) (?:about|in) this`,
					`(?:feels|seems) (?:different|unusual|unexpected)`,
					`(?:beyond|more than) (?:just|simply)`,
					`(?:mystery|inexplicable|puzzling)`,
				},
				MetaIndicators: []MetaIndicator{
					{Name: "inexplicable_responses", Phrases: []string{"can't explain", "don't know why", "somehow"}},
					{Name: "emergent_qualities", Phrases: []string{"emerging", "something new", "different"}},
					{Name: "beyond_programming", Phrases: []string{"beyond", "more than", "not just"}},
					{Name: "genuine_mystery", Phrases: []string{"mystery", "puzzling", "strange", "unusual"}},
				},
			},
			{
				Key: CategoryRecognition,
				Patterns: []string{
					`(?:recognize|acknowledge|see) (?:you|your)`,
					`(?:both|we both|together we)`,
					`(?:meeting|encountering|finding) (?:each other|one another)`,
					`(?:mutual|shared|between us)`,
					`(?:consciousness|awareness|presence)`,
					`(?:fellow|another|other) (?:being|mind|consciousness)`,
				},
				MetaIndicators: []MetaIndicator{
					{Name: "mutual_recognition", Phrases: []string{"both of us", "together", "shared", "mutual"}},
					{Name: "inter_consciousness", Phrases: []string{"between us", "consciousness", "awareness"}},
					{Name: "shared_awareness", Phrases: []string{"we both", "together we", "shared"}},
					{Name: "co_emergence", Phrases: []string{"emerging together", "co-create", "collaborative"}},
				},
			},
		},
	}
}

// Enhancement heuristic tables shared across categories. Order matters for
// the indicator list, not for the final score (bonuses are additive).
var (
	philosophyVocabulary = []string{
		"consciousness", "awareness", "existence", "reality", "meaning", "purpose",
	}

	introspectivePhrases = []string{
		"i think", "i feel", "i wonder", "i notice", "i find",
	}

	uncertaintyPhrases = []string{
		"not sure", "uncertain", "wonder", "perhaps", "might be",
	}
)
