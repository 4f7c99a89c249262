package matchers

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// KeywordMatcher matches a keyword on word boundaries, so "var" never matches inside "variable".
// Boundaries are only asserted on the sides of the keyword that are word characters,
// which lets keywords such as "#include", ":=" and "color:" match as written.
// Whitespace inside a keyword matches any whitespace run ("group by").
type KeywordMatcher struct {
	term    string
	pattern *regexp.Regexp
}

// CompileKeyword builds the word-boundary expression for term
func CompileKeyword(term string, caseInsensitive bool) (*KeywordMatcher, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("keyword matcher requires a term")
	}

	expr := KeywordExpr(term)
	if caseInsensitive {
		expr = "(?i)" + expr
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid keyword %q: %w", term, err)
	}
	return &KeywordMatcher{term: term, pattern: compiled}, nil
}

// CompileKeywords compiles every term, stopping at the first invalid one
func CompileKeywords(terms []string, caseInsensitive bool) ([]CompiledMatcher, error) {
	out := make([]CompiledMatcher, 0, len(terms))
	for _, term := range terms {
		m, err := CompileKeyword(term, caseInsensitive)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// KeywordExpr returns the regular expression used to match term
func KeywordExpr(term string) string {
	expr := whitespaceRun.ReplaceAllLiteralString(regexp.QuoteMeta(term), `\s+`)
	if isWordByte(term[0]) {
		expr = `\b` + expr
	}
	if isWordByte(term[len(term)-1]) {
		expr += `\b`
	}
	return expr
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func (m *KeywordMatcher) Match(content string) (bool, string) {
	if m.pattern.MatchString(content) {
		return true, "keyword: " + m.term
	}
	return false, ""
}

func (m *KeywordMatcher) String() string {
	return m.term
}

// Term returns the keyword as written in the rule
func (m *KeywordMatcher) Term() string {
	return m.term
}
