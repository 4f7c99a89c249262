package rules

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/petrarca/snippet-lang/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed all:languages
var coreRulesFS embed.FS

// LoadEmbeddedRules loads all rules from the embedded filesystem
func LoadEmbeddedRules() ([]types.DetectionRule, error) {
	rules, err := loadFS(coreRulesFS, "languages")
	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded rules: %w", err)
	}
	return rules, nil
}

// LoadExternalRules loads rules from an external directory
func LoadExternalRules(rulesDir string) ([]types.DetectionRule, error) {
	rules, err := loadFS(os.DirFS(rulesDir), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to walk external rules in %s: %w", rulesDir, err)
	}
	return rules, nil
}

// Load returns the embedded rules, with rules from rulesDir replacing embedded
// rules of the same language. An empty rulesDir loads the embedded rules only.
func Load(rulesDir string) ([]types.DetectionRule, error) {
	rules, err := LoadEmbeddedRules()
	if err != nil {
		return nil, err
	}
	if rulesDir == "" {
		return rules, nil
	}

	external, err := LoadExternalRules(rulesDir)
	if err != nil {
		return nil, err
	}
	return Merge(rules, external), nil
}

// Merge replaces base rules with overrides of the same language.
// Overrides for languages without a base rule are appended.
func Merge(base, overrides []types.DetectionRule) []types.DetectionRule {
	merged := make([]types.DetectionRule, len(base))
	copy(merged, base)

	index := make(map[types.Language]int, len(merged))
	for i, rule := range merged {
		index[rule.Language] = i
	}

	for _, rule := range overrides {
		if i, ok := index[rule.Language]; ok {
			merged[i] = rule
			continue
		}
		index[rule.Language] = len(merged)
		merged = append(merged, rule)
	}
	return merged
}

func loadFS(fsys fs.FS, root string) ([]types.DetectionRule, error) {
	var rules []types.DetectionRule
	seen := make(map[types.Language]string)

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// Only load YAML files
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read rule file %s: %w", path, err)
		}

		rule, err := parseRule(content)
		if err != nil {
			return fmt.Errorf("failed to parse rule file %s: %w", path, err)
		}

		// Derive language from file name if not specified
		if rule.Language == "" {
			rule.Language = deriveLanguageFromPath(path)
		}

		if err := validateRule(&rule); err != nil {
			return fmt.Errorf("invalid rule in %s: %w", path, err)
		}

		if other, dup := seen[rule.Language]; dup {
			return fmt.Errorf("duplicate rule for %s in %s and %s", rule.Language, other, path)
		}
		seen[rule.Language] = path

		rules = append(rules, rule)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].Language < rules[j].Language })
	return rules, nil
}

func parseRule(content []byte) (types.DetectionRule, error) {
	var rule types.DetectionRule
	if err := validation.ValidateYAML(validation.DetectionRuleSchema, content); err != nil {
		return rule, err
	}
	if err := yaml.Unmarshal(content, &rule); err != nil {
		return rule, err
	}
	return rule, nil
}

// deriveLanguageFromPath extracts the language from the file name
// e.g., "languages/objective-c.yaml" -> "objective-c"
func deriveLanguageFromPath(path string) types.Language {
	base := filepath.Base(path)
	return types.Language(strings.TrimSuffix(base, filepath.Ext(base)))
}

// validateRule validates a rule definition
func validateRule(rule *types.DetectionRule) error {
	if !types.IsKnown(string(rule.Language)) {
		return fmt.Errorf("unknown language %q", rule.Language)
	}
	if rule.Language == types.PlainText {
		return fmt.Errorf("%s is the fallback and cannot have a rule", types.PlainText)
	}

	switch rule.GetStage() {
	case types.StageDetector:
		if len(rule.Keywords.Terms) == 0 && len(rule.Patterns) == 0 && len(rule.Features.Items) == 0 {
			return fmt.Errorf("detector needs keywords, patterns or features")
		}
		if len(rule.Keywords.Terms) > 0 && rule.Keywords.Threshold == 0 {
			return fmt.Errorf("keywords.threshold is required")
		}
		if len(rule.Prefixes) > 0 || len(rule.Groups) > 0 {
			return fmt.Errorf("prefixes and groups are only valid for linear rules")
		}
	case types.StageLinear:
		if len(rule.Groups) == 0 {
			return fmt.Errorf("linear rule needs at least one group")
		}
		if len(rule.Keywords.Terms) > 0 || len(rule.Patterns) > 0 || len(rule.Features.Items) > 0 {
			return fmt.Errorf("keywords, patterns and features are only valid for detector rules")
		}
	}

	for i, ref := range rule.Refinements {
		if !types.IsKnown(string(ref.Language)) {
			return fmt.Errorf("refinement %d: unknown language %q", i, ref.Language)
		}
	}

	return nil
}
