package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ruleFormat string

var ruleCmd = &cobra.Command{
	Use:   "rule <language>",
	Short: "Show the compiled detection rule of a language",
	Long: `Display the compiled detection rule for a language identifier or display name:
its cascade position, thresholds, keywords, patterns, features and exclusions.`,
	Args: cobra.ExactArgs(1),
	Run:  runRule,
}

func init() {
	setupFormatFlag(ruleCmd, &ruleFormat)
}

// RuleResult wraps a compiled rule for output
type RuleResult struct {
	Rule detector.RuleSummary
}

func (r *RuleResult) ToJSON() interface{} {
	return &r.Rule
}

func (r *RuleResult) ToText(w io.Writer) {
	// For text, use YAML as it's more readable
	data, err := yaml.Marshal(&r.Rule)
	if err != nil {
		fmt.Fprintf(w, "failed to marshal rule: %v\n", err)
		return
	}
	fmt.Fprint(w, string(data))
}

func runRule(cmd *cobra.Command, args []string) {
	d, err := newDetector(slog.Default())
	exitOnError("Failed to initialize detector", err)

	result, err := buildRuleResult(d, args[0])
	if err != nil {
		slog.Error("Rule not found", "language", args[0], "error", err)
		os.Exit(1)
	}
	exitOnError("Failed to write output", OutputToFile(result, ruleFormat, ""))
}

// buildRuleResult resolves an identifier or display name to its compiled rule
func buildRuleResult(d *detector.Detector, name string) (*RuleResult, error) {
	lang := types.Normalize(name)
	if lang == types.TypeScript {
		// TypeScript is produced by the JavaScript rule's refinement
		lang = types.JavaScript
	}
	summary, ok := d.Describe(lang)
	if !ok {
		return nil, fmt.Errorf("no detection rule for %q", name)
	}
	return &RuleResult{Rule: summary}, nil
}
