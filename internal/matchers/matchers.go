package matchers

// CompiledMatcher is a pre-compiled matcher ready for matching
type CompiledMatcher interface {
	// Match checks if the content matches, returns (matched, reason)
	Match(content string) (bool, string)

	// String returns the source expression the matcher was compiled from
	String() string
}

// CountMatches returns how many matchers match content, with the reasons of the ones that did
func CountMatches(content string, matchers []CompiledMatcher) (int, []string) {
	count := 0
	var reasons []string
	for _, m := range matchers {
		if ok, reason := m.Match(content); ok {
			count++
			reasons = append(reasons, reason)
		}
	}
	return count, reasons
}

// FirstMatch returns the reason of the first matcher that matches content
func FirstMatch(content string, matchers []CompiledMatcher) (bool, string) {
	for _, m := range matchers {
		if ok, reason := m.Match(content); ok {
			return true, reason
		}
	}
	return false, ""
}
