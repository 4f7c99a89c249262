package matchers

import (
	"fmt"
	"regexp"
)

// RegexMatcher matches content against a regular expression
type RegexMatcher struct {
	source  string
	pattern *regexp.Regexp
}

// CompileRegex compiles pattern, prefixing (?i) when caseInsensitive is set
func CompileRegex(pattern string, caseInsensitive bool) (*RegexMatcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("regex matcher requires pattern")
	}

	expr := pattern
	if caseInsensitive {
		expr = "(?i)" + expr
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	return &RegexMatcher{source: pattern, pattern: compiled}, nil
}

// CompileRegexes compiles every pattern, stopping at the first invalid one
func CompileRegexes(patterns []string, caseInsensitive bool) ([]CompiledMatcher, error) {
	out := make([]CompiledMatcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := CompileRegex(p, caseInsensitive)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (m *RegexMatcher) Match(content string) (bool, string) {
	if m.pattern.MatchString(content) {
		return true, "content matched: " + m.source
	}
	return false, ""
}

func (m *RegexMatcher) String() string {
	return m.source
}
