package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/petrarca/snippet-lang/internal/codestats"
	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/spf13/cobra"
)

var (
	detectFormat  string
	detectOutput  string
	detectText    string
	detectNoStats bool
	detectPattern bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Detect the language of a snippet",
	Long: `Detect reads a snippet from a file, from stdin ("-" or no argument) or from --text
and prints its language, display name, the stage that decided and why.

Examples:
  snippetlang detect main.go.txt
  pbpaste | snippetlang detect
  snippetlang detect --text 'SELECT id FROM users WHERE active = 1'
  snippetlang detect --patterns -f json snippet.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	setupOutputFlags(detectCmd, &detectFormat, &detectOutput)
	detectCmd.Flags().StringVarP(&detectText, "text", "t", "", "Snippet text to classify instead of a file")
	detectCmd.Flags().BoolVar(&detectNoStats, "no-code-stats", settings.NoCodeStats, "Disable code statistics")
	detectCmd.Flags().BoolVar(&detectPattern, "patterns", false, "Skip the model and run the pattern cascade only")
}

// DetectResult is the output of the detect command
type DetectResult struct {
	Source string `json:"source" yaml:"source"`
	detector.Result `yaml:",inline"`
	Stats           *codestats.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

func (r *DetectResult) ToJSON() interface{} {
	return r
}

func (r *DetectResult) ToText(w io.Writer) {
	st := stylesFor(w)
	fmt.Fprintf(w, "%s %s (%s)\n", st.header.Render("Language:"), st.language(r.Language), r.Language)
	fmt.Fprintf(w, "%s %s\n", st.header.Render("Stage:   "), r.Stage)
	if r.Reason != "" {
		fmt.Fprintf(w, "%s %s\n", st.header.Render("Reason:  "), st.dim.Render(r.Reason))
	}
	if r.Confidence > 0 {
		fmt.Fprintf(w, "%s %.2f\n", st.header.Render("Score:   "), r.Confidence)
	}
	if r.Stats != nil {
		fmt.Fprintf(w, "%s %d lines, %d code, %d comments, %d blanks, complexity %d (%s)\n",
			st.header.Render("Stats:   "), r.Stats.Lines, r.Stats.Code, r.Stats.Comments,
			r.Stats.Blanks, r.Stats.Complexity, r.Stats.Analyzer)
	}
}

func runDetect(cmd *cobra.Command, args []string) {
	logger := slog.Default()

	source, content, err := readSnippet(cmd, args)
	exitOnError("Failed to read snippet", err)

	d, err := newDetector(logger)
	exitOnError("Failed to initialize detector", err)

	result := buildDetectResult(d, source, content, !detectNoStats, detectPattern)
	exitOnError("Failed to write output", OutputToFile(result, detectFormat, detectOutput))
}

// readSnippet returns the snippet from --text, a file or stdin
func readSnippet(cmd *cobra.Command, args []string) (string, []byte, error) {
	if cmd.Flags().Changed("text") {
		if len(args) > 0 {
			return "", nil, fmt.Errorf("--text cannot be combined with a file argument")
		}
		return "text", []byte(detectText), nil
	}
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		return "stdin", content, err
	}
	content, err := os.ReadFile(args[0])
	return args[0], content, err
}

// buildDetectResult classifies content and optionally counts it
func buildDetectResult(d *detector.Detector, source string, content []byte, withStats, patternsOnly bool) *DetectResult {
	var result detector.Result
	if patternsOnly {
		result = d.DetectByPatterns(string(content))
	} else {
		result = d.Detect(string(content))
	}

	out := &DetectResult{Source: source, Result: result}
	if withStats {
		stats := codestats.Count(result.Language, content)
		out.Stats = &stats
	}
	return out
}
