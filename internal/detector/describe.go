package detector

import (
	"github.com/petrarca/snippet-lang/internal/matchers"
	"github.com/petrarca/snippet-lang/internal/types"
)

// RuleSummary is the compiled form of one rule, for display
type RuleSummary struct {
	Language         types.Language      `json:"language" yaml:"language"`
	Name             string              `json:"name" yaml:"name"`
	Stage            string              `json:"stage" yaml:"stage"`
	Position         int                 `json:"position" yaml:"position"`
	CaseInsensitive  bool                `json:"case_insensitive,omitempty" yaml:"case_insensitive,omitempty"`
	KeywordThreshold int                 `json:"keyword_threshold,omitempty" yaml:"keyword_threshold,omitempty"`
	Keywords         []string            `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Discounts        []string            `json:"discounts,omitempty" yaml:"discounts,omitempty"`
	Patterns         []string            `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	FeatureThreshold int                 `json:"feature_threshold,omitempty" yaml:"feature_threshold,omitempty"`
	MinKeywords      int                 `json:"min_keywords,omitempty" yaml:"min_keywords,omitempty"`
	Features         []string            `json:"features,omitempty" yaml:"features,omitempty"`
	Exclusions       []string            `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
	Refinements      map[string][]string `json:"refinements,omitempty" yaml:"refinements,omitempty"`
	Prefixes         string              `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	Groups           []string            `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Describe returns the compiled rule for lang
func (d *Detector) Describe(lang types.Language) (RuleSummary, bool) {
	rule, ok := d.rules[lang]
	if !ok {
		return RuleSummary{}, false
	}

	position := 0
	for i, l := range d.priority {
		if l == lang {
			position = i + 1
			break
		}
	}

	s := RuleSummary{
		Language:         lang,
		Name:             lang.PrettyName(),
		Stage:            rule.stage,
		Position:         position,
		CaseInsensitive:  rule.caseInsensitive,
		KeywordThreshold: rule.keywordThreshold,
		Discounts:        sources(rule.discounts),
		Patterns:         sources(rule.patterns),
		FeatureThreshold: rule.featureThreshold,
		MinKeywords:      rule.minKeywords,
		Features:         sources(rule.features),
		Exclusions:       sources(rule.exclusions),
		Groups:           sources(rule.groups),
	}
	for _, kw := range rule.keywords {
		s.Keywords = append(s.Keywords, matchers.KeywordExpr(kw.String()))
	}
	if len(rule.refinements) > 0 {
		s.Refinements = make(map[string][]string, len(rule.refinements))
		for _, r := range rule.refinements {
			s.Refinements[string(r.language)] = sources(r.patterns)
		}
	}
	if rule.stage == types.StageLinear {
		s.Prefixes = rule.prefixes.String()
	}
	return s, true
}

func sources(ms []matchers.CompiledMatcher) []string {
	if len(ms) == 0 {
		return nil
	}
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}
