package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/petrarca/snippet-lang/internal/validation"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestName is the well-known file name of the bundled classifier
const ManifestName = "language-classifier.yaml"

// SupportedMajor is the only manifest format major version this build reads
const SupportedMajor = "v1"

// Backend identifiers
const (
	BackendEnryBayes = "enry-bayes"
)

// Strategy identifiers, tried in the order the manifest lists them
const (
	StrategyShebang    = "shebang"
	StrategyModeline   = "modeline"
	StrategyClassifier = "classifier"
)

// ErrNoManifest reports that no classifier is bundled. This is the normal state.
var ErrNoManifest = errors.New("model manifest not found")

// Manifest describes the bundled classifier
type Manifest struct {
	FormatVersion string   `yaml:"format_version" json:"format_version"`
	Backend       string   `yaml:"backend" json:"backend"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Labels        []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Strategies    []string `yaml:"strategies,omitempty" json:"strategies,omitempty"`
}

// LoadManifest reads and validates the manifest in dir
func LoadManifest(dir string) (*Manifest, error) {
	if dir == "" {
		return nil, ErrNoManifest
	}

	path := filepath.Join(dir, ManifestName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, path)
		}
		return nil, fmt.Errorf("failed to read model manifest %s: %w", path, err)
	}

	return ParseManifest(content)
}

// ParseManifest validates manifest content against the schema and the supported format version
func ParseManifest(content []byte) (*Manifest, error) {
	if err := validation.ValidateYAML(validation.ModelManifestSchema, content); err != nil {
		return nil, fmt.Errorf("invalid model manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}

	if !semver.IsValid(m.FormatVersion) {
		return nil, fmt.Errorf("invalid model manifest format_version %q", m.FormatVersion)
	}
	if major := semver.Major(m.FormatVersion); major != SupportedMajor {
		return nil, fmt.Errorf("unsupported model manifest format %s (supported: %s)", major, SupportedMajor)
	}

	if len(m.Strategies) == 0 {
		m.Strategies = []string{StrategyShebang, StrategyModeline, StrategyClassifier}
	}
	return &m, nil
}
