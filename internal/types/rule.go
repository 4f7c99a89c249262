package types

// Stage names where a rule runs in the fallback cascade
const (
	StageDetector = "detector" // scored per-language detector
	StageLinear   = "linear"   // single-pass substring check
)

// DetectionRule represents one language's detection rule as loaded from YAML
type DetectionRule struct {
	Language    Language `yaml:"language" json:"language"`
	Stage       string   `yaml:"stage,omitempty" json:"stage,omitempty"` // "detector" (default) or "linear"
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`

	// CaseInsensitive matches against the original text with (?i) instead of the lowercased copy
	CaseInsensitive bool `yaml:"case_insensitive,omitempty" json:"case_insensitive,omitempty"`

	Keywords    KeywordRule      `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Patterns    []string         `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Features    FeatureRule      `yaml:"features,omitempty" json:"features,omitempty"`
	Exclusions  []string         `yaml:"exclusions,omitempty" json:"exclusions,omitempty"`
	Refinements []RefinementRule `yaml:"refinements,omitempty" json:"refinements,omitempty"`

	// Linear-stage checks: the trimmed text must start with one of Prefixes (when set)
	// and contain every substring of at least one group (when set)
	Prefixes []string   `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Groups   [][]string `yaml:"groups,omitempty" json:"groups,omitempty"`
}

// KeywordRule is the keyword pass of a detector
type KeywordRule struct {
	Threshold int        `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Terms     []string   `yaml:"terms,omitempty" json:"terms,omitempty"`
	Discounts []Discount `yaml:"discounts,omitempty" json:"discounts,omitempty"`
}

// Discount removes a keyword hit unless the keyword also appears in the expected shape
type Discount struct {
	Term   string `yaml:"term" json:"term"`
	Unless string `yaml:"unless" json:"unless"`
}

// FeatureRule is the composite-feature pass of a detector
type FeatureRule struct {
	Threshold   int       `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	MinKeywords int       `yaml:"min_keywords,omitempty" json:"min_keywords,omitempty"`
	Items       []Feature `yaml:"items,omitempty" json:"items,omitempty"`
}

// Feature is a named boolean signal: Pattern matches and Unless (if set) does not
type Feature struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Unless  string `yaml:"unless,omitempty" json:"unless,omitempty"`
}

// RefinementRule relabels a positive match when any of its patterns matches
type RefinementRule struct {
	Language Language `yaml:"language" json:"language"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// GetStage returns the rule stage, defaulting to "detector" if not specified
func (r *DetectionRule) GetStage() string {
	if r.Stage == "" {
		return StageDetector
	}
	return r.Stage
}
