package detector

import (
	"fmt"
	"strings"

	"github.com/petrarca/snippet-lang/internal/matchers"
	"github.com/petrarca/snippet-lang/internal/types"
)

// compiledRule is a DetectionRule with every expression compiled
type compiledRule struct {
	language        types.Language
	stage           string
	caseInsensitive bool

	keywords         []matchers.CompiledMatcher
	keywordThreshold int
	discounts        []matchers.CompiledMatcher

	patterns []matchers.CompiledMatcher

	features         []matchers.CompiledMatcher
	featureThreshold int
	minKeywords      int

	exclusions  []matchers.CompiledMatcher
	refinements []compiledRefinement

	prefixes *matchers.PrefixMatcher
	groups   []matchers.CompiledMatcher
}

type compiledRefinement struct {
	language types.Language
	patterns []matchers.CompiledMatcher
}

func compileRule(rule types.DetectionRule) (*compiledRule, error) {
	ci := rule.CaseInsensitive
	c := &compiledRule{
		language:         rule.Language,
		stage:            rule.GetStage(),
		caseInsensitive:  ci,
		keywordThreshold: rule.Keywords.Threshold,
		featureThreshold: rule.Features.Threshold,
		minKeywords:      rule.Features.MinKeywords,
		prefixes:         matchers.NewPrefixMatcher(rule.Prefixes),
	}

	var err error
	if c.keywords, err = matchers.CompileKeywords(rule.Keywords.Terms, ci); err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	for _, d := range rule.Keywords.Discounts {
		m, err := matchers.CompileDiscount(d.Term, d.Unless, ci)
		if err != nil {
			return nil, fmt.Errorf("discounts: %w", err)
		}
		c.discounts = append(c.discounts, m)
	}
	if c.patterns, err = matchers.CompileRegexes(rule.Patterns, ci); err != nil {
		return nil, fmt.Errorf("patterns: %w", err)
	}
	for _, f := range rule.Features.Items {
		m, err := matchers.CompileFeature(f.Name, f.Pattern, f.Unless, ci)
		if err != nil {
			return nil, fmt.Errorf("features: %w", err)
		}
		c.features = append(c.features, m)
	}
	if c.exclusions, err = matchers.CompileRegexes(rule.Exclusions, ci); err != nil {
		return nil, fmt.Errorf("exclusions: %w", err)
	}
	for _, r := range rule.Refinements {
		patterns, err := matchers.CompileRegexes(r.Patterns, ci)
		if err != nil {
			return nil, fmt.Errorf("refinement %s: %w", r.Language, err)
		}
		c.refinements = append(c.refinements, compiledRefinement{language: r.Language, patterns: patterns})
	}
	for _, g := range rule.Groups {
		m, err := matchers.NewGroupMatcher(g)
		if err != nil {
			return nil, fmt.Errorf("groups: %w", err)
		}
		c.groups = append(c.groups, m)
	}

	return c, nil
}

// match runs the rule against the lowercased text (or the original text for
// case-insensitive rules) and returns the language and the reason on a hit
func (c *compiledRule) match(lower, original string) (types.Language, string, bool) {
	if c.stage == types.StageLinear {
		return c.matchLinear(lower)
	}

	text := lower
	if c.caseInsensitive {
		text = original
	}

	if vetoed, _ := matchers.FirstMatch(text, c.exclusions); vetoed {
		return "", "", false
	}

	// Keyword pass
	discounted, _ := matchers.CountMatches(text, c.discounts)
	hits := -discounted
	var found []string
	for _, kw := range c.keywords {
		ok, _ := kw.Match(text)
		if !ok {
			continue
		}
		hits++
		found = append(found, kw.String())
		if c.keywordThreshold > 0 && hits >= c.keywordThreshold {
			return c.refine(text, fmt.Sprintf("keywords %d/%d: %s", hits, c.keywordThreshold, strings.Join(found, ", ")))
		}
	}

	// Structural-pattern pass
	if ok, reason := matchers.FirstMatch(text, c.patterns); ok {
		return c.refine(text, reason)
	}

	// Composite-feature pass
	if c.featureThreshold > 0 && hits >= c.minKeywords {
		count, reasons := matchers.CountMatches(text, c.features)
		if count >= c.featureThreshold {
			return c.refine(text, fmt.Sprintf("features %d/%d: %s", count, c.featureThreshold, strings.Join(reasons, ", ")))
		}
	}

	return "", "", false
}

func (c *compiledRule) matchLinear(lower string) (types.Language, string, bool) {
	ok, prefix := c.prefixes.Match(lower)
	if !ok {
		return "", "", false
	}
	matched, reason := matchers.FirstMatch(lower, c.groups)
	if !matched {
		return "", "", false
	}
	if prefix != "" {
		reason = prefix + ", " + reason
	}
	return c.language, reason, true
}

func (c *compiledRule) refine(text, reason string) (types.Language, string, bool) {
	for _, r := range c.refinements {
		if ok, why := matchers.FirstMatch(text, r.patterns); ok {
			return r.language, reason + "; refined by " + why, true
		}
	}
	return c.language, reason, true
}
