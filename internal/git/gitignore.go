package git

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadPatternsFromGitignore loads patterns from a specific .gitignore file.
// A missing file yields no patterns.
func LoadPatternsFromGitignore(gitignorePath string) ([]string, error) {
	file, err := os.Open(gitignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}
	defer file.Close()

	return ParsePatterns(file)
}

// ParsePatterns reads .gitignore content, dropping comments, negations and anchors
func ParsePatterns(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Remove trailing slashes for consistency (dir/ -> dir)
		pattern := strings.TrimSuffix(line, "/")

		// Negation patterns are not supported by the glob matcher
		if strings.HasPrefix(pattern, "!") {
			continue
		}

		// Anchored patterns are relative to the .gitignore directory
		pattern = strings.TrimPrefix(pattern, "/")
		if pattern == "" {
			continue
		}

		patterns = append(patterns, pattern)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading .gitignore: %w", err)
	}

	return patterns, nil
}

// GitignoreStack represents a stack of .gitignore pattern sets, one per directory being walked
type GitignoreStack struct {
	stack []*PatternSet
}

// PatternSet represents patterns from a single .gitignore file
type PatternSet struct {
	Directory string   // Directory, relative to the scan root, where this .gitignore was found
	Patterns  []string // Patterns from this .gitignore
}

// NewGitignoreStack creates a new empty gitignore stack
func NewGitignoreStack() *GitignoreStack {
	return &GitignoreStack{}
}

// Push adds patterns from a .gitignore file to the stack.
// Returns false when there was nothing to push, so callers know not to Pop.
func (gs *GitignoreStack) Push(directory string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	gs.stack = append(gs.stack, &PatternSet{Directory: directory, Patterns: patterns})
	return true
}

// Pop removes the top pattern set from the stack
func (gs *GitignoreStack) Pop() {
	if len(gs.stack) > 0 {
		gs.stack = gs.stack[:len(gs.stack)-1]
	}
}

// Depth returns the current depth of the stack
func (gs *GitignoreStack) Depth() int {
	return len(gs.stack)
}

// ShouldExclude checks if a file or directory should be excluded by any pattern on the stack.
// relativePath is relative to the scan root and uses forward slashes.
func (gs *GitignoreStack) ShouldExclude(name, relativePath string) bool {
	for _, set := range gs.stack {
		local := relativePath
		if set.Directory != "" && set.Directory != "." {
			local = strings.TrimPrefix(relativePath, filepath.ToSlash(set.Directory)+"/")
		}
		for _, pattern := range set.Patterns {
			if MatchPattern(pattern, name, local) {
				return true
			}
		}
	}
	return false
}

// MatchPattern reports whether a glob matches the relative path or just the file name
func MatchPattern(pattern, name, relativePath string) bool {
	if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
		return true
	}
	matched, err := doublestar.Match(pattern, name)
	return err == nil && matched
}
