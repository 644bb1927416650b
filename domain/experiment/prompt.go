package experiment

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// BuildPrompt renders the protocol's template for one run. Named
// {placeholder} tokens are substituted from context; tokens without a
// context value are left in place and reported as missing rather than
// failing the run. Repeated protocols get a per-run variation suffix from
// the RunVariations table; run indexes past the table get no suffix.
func BuildPrompt(p Protocol, context map[string]string, runNumber int) (string, []string) {
	var missing []string

	prompt := placeholderRe.ReplaceAllStringFunc(p.PromptTemplate, func(token string) string {
		key := strings.Trim(token, "{}")
		if val, ok := context[key]; ok {
			return val
		}
		missing = append(missing, key)
		return token
	})

	if p.RepeatCount > 1 && runNumber < len(RunVariations) {
		prompt += RunVariations[runNumber]
	}

	return prompt, missing
}
