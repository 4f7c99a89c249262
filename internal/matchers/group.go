package matchers

import (
	"fmt"
	"strings"
)

// GroupMatcher matches when content contains every substring of the group
type GroupMatcher struct {
	parts []string
}

// NewGroupMatcher creates a matcher for an all-of substring group
func NewGroupMatcher(parts []string) (*GroupMatcher, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("substring group must not be empty")
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("substring group contains an empty entry")
		}
	}
	return &GroupMatcher{parts: append([]string(nil), parts...)}, nil
}

func (g *GroupMatcher) Match(content string) (bool, string) {
	for _, p := range g.parts {
		if !strings.Contains(content, p) {
			return false, ""
		}
	}
	return true, "contains " + g.String()
}

func (g *GroupMatcher) String() string {
	quoted := make([]string, len(g.parts))
	for i, p := range g.parts {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// PrefixMatcher matches when the trimmed content starts with one of the prefixes
type PrefixMatcher struct {
	prefixes []string
}

// NewPrefixMatcher creates a prefix matcher; a matcher without prefixes matches everything
func NewPrefixMatcher(prefixes []string) *PrefixMatcher {
	return &PrefixMatcher{prefixes: append([]string(nil), prefixes...)}
}

func (p *PrefixMatcher) Match(content string) (bool, string) {
	if len(p.prefixes) == 0 {
		return true, ""
	}
	trimmed := strings.TrimSpace(content)
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true, fmt.Sprintf("starts with %q", prefix)
		}
	}
	return false, ""
}

func (p *PrefixMatcher) String() string {
	return strings.Join(p.prefixes, " | ")
}
