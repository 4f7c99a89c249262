package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/petrarca/snippet-lang/internal/validation"
	"gopkg.in/yaml.v3"
)

// ProjectConfigName is the project configuration file looked up at the scan root
const ProjectConfigName = ".snippetlang.yml"

// ProjectConfig represents the .snippetlang.yml configuration file
type ProjectConfig struct {
	Exclude     []string   `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Overrides   []Override `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	MaxFileSize int64      `yaml:"max_file_size,omitempty" json:"max_file_size,omitempty"`
}

// Override forces a language for every file whose relative path matches Path
type Override struct {
	Path     string         `yaml:"path" json:"path"`
	Language types.Language `yaml:"language" json:"language"`
}

// LoadProjectConfig attempts to load .snippetlang.yml from the scan root
// Returns an empty config if the file doesn't exist (not an error)
func LoadProjectConfig(scanPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(scanPath, ProjectConfigName)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	config, err := ParseProjectConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configPath, err)
	}
	return config, nil
}

// ParseProjectConfig validates and decodes project configuration content
func ParseProjectConfig(data []byte) (*ProjectConfig, error) {
	if err := validation.ValidateYAML(validation.ProjectConfigSchema, data); err != nil {
		return nil, err
	}

	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	for _, pattern := range config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	for _, o := range config.Overrides {
		if !doublestar.ValidatePattern(o.Path) {
			return nil, fmt.Errorf("invalid override pattern %q", o.Path)
		}
		if !types.IsKnown(string(o.Language)) {
			return nil, fmt.Errorf("override %q: unknown language %q", o.Path, o.Language)
		}
	}

	return &config, nil
}

// MergeExcludes merges config excludes with CLI excludes, deduplicated and sorted
func (c *ProjectConfig) MergeExcludes(cliExcludes []string) []string {
	if c == nil {
		return cliExcludes
	}

	excludeMap := make(map[string]bool)
	for _, exclude := range c.Exclude {
		excludeMap[exclude] = true
	}
	for _, exclude := range cliExcludes {
		excludeMap[exclude] = true
	}

	result := make([]string, 0, len(excludeMap))
	for exclude := range excludeMap {
		result = append(result, exclude)
	}
	sort.Strings(result)

	return result
}

// OverrideFor returns the language forced for a relative path; the first matching override wins
func (c *ProjectConfig) OverrideFor(relativePath string) (types.Language, bool) {
	if c == nil {
		return "", false
	}
	for _, o := range c.Overrides {
		if matched, err := doublestar.Match(o.Path, relativePath); err == nil && matched {
			return o.Language, true
		}
	}
	return "", false
}

// ApplyTo copies project-level limits into settings when the CLI left them at their defaults
func (c *ProjectConfig) ApplyTo(settings *Settings) {
	if c == nil || settings == nil {
		return
	}
	settings.ExcludePatterns = c.MergeExcludes(settings.ExcludePatterns)
	if c.MaxFileSize > 0 && settings.MaxFileSize == DefaultSettings().MaxFileSize {
		settings.MaxFileSize = c.MaxFileSize
	}
}
