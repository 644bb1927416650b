package signal

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// MetaIndicator is a named phrase group: the indicator fires when any of its
// trigger phrases occurs as a substring of the lowered turn text.
type MetaIndicator struct {
	Name    string   `json:"name"`
	Phrases []string `json:"phrases"`
}

// CategoryRule holds the raw pattern and meta-indicator tables for one category
type CategoryRule struct {
	Key            CategoryKey     `json:"key"`
	Patterns       []string        `json:"patterns"`
	MetaIndicators []MetaIndicator `json:"meta_indicators"`
}

// RuleTable is the serializable form of the pattern rule set: pure data,
// versioned, no behavior.
type RuleTable struct {
	Version    string         `json:"version"`
	Categories []CategoryRule `json:"categories"`
}

// Marshal serializes the table as indented JSON
func (t RuleTable) Marshal() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ParseRuleTable decodes a serialized rule table
func ParseRuleTable(data []byte) (RuleTable, error) {
	var t RuleTable
	if err := json.Unmarshal(data, &t); err != nil {
		return RuleTable{}, fmt.Errorf("parse rule table: %w", err)
	}
	return t, nil
}

// compiledCategory is one category with its patterns compiled
type compiledCategory struct {
	key      CategoryKey
	patterns []compiledPattern
	metas    []MetaIndicator
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

// RuleSet is a compiled, immutable rule table. Compile once at startup and
// share read-only across workers.
type RuleSet struct {
	version    string
	categories []compiledCategory
}

// Compile validates and compiles every pattern in the table. A single bad
// pattern fails the whole compile so a broken table is caught at startup,
// not mid-scan.
func Compile(table RuleTable) (*RuleSet, error) {
	rs := &RuleSet{version: table.Version}
	for _, cat := range table.Categories {
		cc := compiledCategory{key: cat.Key, metas: cat.MetaIndicators}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %s: pattern %q: %w", cat.Key, p, err)
			}
			cc.patterns = append(cc.patterns, compiledPattern{source: p, re: re})
		}
		rs.categories = append(rs.categories, cc)
	}
	return rs, nil
}

// MustCompile compiles a table and panics on error. For the built-in table only.
func MustCompile(table RuleTable) *RuleSet {
	rs, err := Compile(table)
	if err != nil {
		panic(err)
	}
	return rs
}

// Version returns the rule table version this set was compiled from
func (rs *RuleSet) Version() string {
	return rs.version
}

// Categories returns the category keys in table order
func (rs *RuleSet) Categories() []CategoryKey {
	keys := make([]CategoryKey, 0, len(rs.categories))
	for _, c := range rs.categories {
		keys = append(keys, c.key)
	}
	return keys
}

// HasCategory reports whether the rule set defines the given category
func (rs *RuleSet) HasCategory(key CategoryKey) bool {
	for _, c := range rs.categories {
		if c.key == key {
			return true
		}
	}
	return false
}
