package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte(content), 0644))
	return dir
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	config, err := LoadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, config.Exclude)
	assert.Empty(t, config.Overrides)
}

func TestLoadProjectConfig_Valid(t *testing.T) {
	dir := writeProjectConfig(t, `
exclude:
  - "drafts/**"
  - "*.bak"
overrides:
  - path: "gists/**/*.txt"
    language: python
  - path: "*.tpl"
    language: html
max_file_size: 4096
`)

	config, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"drafts/**", "*.bak"}, config.Exclude)
	require.Len(t, config.Overrides, 2)
	assert.Equal(t, types.Python, config.Overrides[0].Language)
	assert.Equal(t, int64(4096), config.MaxFileSize)
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown field", "techs: [go]\n", "not allowed"},
		{"absolute exclude", "exclude: [\"/etc/**\"]\n", "does not match pattern"},
		{"override without language", "overrides:\n  - path: \"*.txt\"\n", "missing properties"},
		{"unknown language", "overrides:\n  - path: \"*.txt\"\n    language: cobol\n", "unknown language"},
		{"bad glob", "exclude: [\"drafts/[\"]\n", "invalid exclude pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProjectConfig(writeProjectConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProjectConfig_MergeExcludes(t *testing.T) {
	config := &ProjectConfig{Exclude: []string{"drafts/**", "*.bak"}}

	merged := config.MergeExcludes([]string{"*.bak", "vendor/**"})
	assert.Equal(t, []string{"*.bak", "drafts/**", "vendor/**"}, merged)

	var nilConfig *ProjectConfig
	assert.Equal(t, []string{"x"}, nilConfig.MergeExcludes([]string{"x"}))
}

func TestProjectConfig_OverrideFor(t *testing.T) {
	config := &ProjectConfig{Overrides: []Override{
		{Path: "gists/**/*.txt", Language: types.Python},
		{Path: "**/*.txt", Language: types.Bash},
	}}

	lang, ok := config.OverrideFor("gists/2024/sort.txt")
	assert.True(t, ok)
	assert.Equal(t, types.Python, lang, "first matching override wins")

	lang, ok = config.OverrideFor("notes/deploy.txt")
	assert.True(t, ok)
	assert.Equal(t, types.Bash, lang)

	_, ok = config.OverrideFor("notes/deploy.md")
	assert.False(t, ok)
}

func TestProjectConfig_ApplyTo(t *testing.T) {
	config := &ProjectConfig{Exclude: []string{"drafts/**"}, MaxFileSize: 512}

	settings := DefaultSettings()
	config.ApplyTo(settings)
	assert.Equal(t, []string{"drafts/**"}, settings.ExcludePatterns)
	assert.Equal(t, int64(512), settings.MaxFileSize)

	settings = DefaultSettings()
	settings.MaxFileSize = 100
	config.ApplyTo(settings)
	assert.Equal(t, int64(100), settings.MaxFileSize, "explicit setting wins over project config")
}
