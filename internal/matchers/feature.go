package matchers

import (
	"fmt"
)

// FeatureMatcher is a named boolean signal: the pattern matches and the unless pattern, if any, does not
type FeatureMatcher struct {
	name    string
	pattern *RegexMatcher
	unless  *RegexMatcher
}

// CompileFeature compiles a named feature
func CompileFeature(name, pattern, unless string, caseInsensitive bool) (*FeatureMatcher, error) {
	p, err := CompileRegex(pattern, caseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("feature %s: %w", name, err)
	}

	f := &FeatureMatcher{name: name, pattern: p}
	if unless != "" {
		f.unless, err = CompileRegex(unless, caseInsensitive)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", name, err)
		}
	}
	return f, nil
}

func (f *FeatureMatcher) Match(content string) (bool, string) {
	if ok, _ := f.pattern.Match(content); !ok {
		return false, ""
	}
	if f.unless != nil {
		if vetoed, _ := f.unless.Match(content); vetoed {
			return false, ""
		}
	}
	return true, "feature: " + f.name
}

func (f *FeatureMatcher) String() string {
	return f.name
}

// DiscountMatcher matches when a keyword is present but not in its expected shape.
// Each match takes one hit off the keyword count.
type DiscountMatcher struct {
	keyword *KeywordMatcher
	shape   *RegexMatcher
}

// CompileDiscount compiles a keyword discount
func CompileDiscount(term, shape string, caseInsensitive bool) (*DiscountMatcher, error) {
	k, err := CompileKeyword(term, caseInsensitive)
	if err != nil {
		return nil, err
	}
	s, err := CompileRegex(shape, caseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("discount %s: %w", term, err)
	}
	return &DiscountMatcher{keyword: k, shape: s}, nil
}

func (d *DiscountMatcher) Match(content string) (bool, string) {
	if ok, _ := d.keyword.Match(content); !ok {
		return false, ""
	}
	if ok, _ := d.shape.Match(content); ok {
		return false, ""
	}
	return true, "discounted keyword: " + d.keyword.Term()
}

func (d *DiscountMatcher) String() string {
	return d.keyword.Term()
}
