package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/petrarca/snippet-lang/internal/config"
	"github.com/petrarca/snippet-lang/internal/progress"
	"github.com/petrarca/snippet-lang/internal/provider"
	"github.com/petrarca/snippet-lang/internal/scan"
	"github.com/spf13/cobra"
)

var (
	scanFormat    string
	scanShowFiles bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Classify every snippet file below a directory",
	Long: `Scan walks a directory, classifies each file and prints per-language totals.
It honours .gitignore files, --exclude globs and a .snippetlang.yml at the root,
which may add excludes and force languages for paths.

Examples:
  snippetlang scan ~/snippets
  snippetlang scan --files -f json -o snippets.json ~/snippets
  snippetlang scan --exclude "drafts/**" --exclude "*.bak" ~/snippets`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	setupOutputFlags(scanCmd, &scanFormat, &settings.OutputFile)

	scanCmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Pretty print JSON output")
	scanCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show progress on stderr")
	scanCmd.Flags().BoolVar(&scanShowFiles, "files", false, "List every file in text output")

	// Exclude patterns - support multiple flags or comma-separated values
	scanCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Glob patterns to exclude (doublestar syntax, can be specified multiple times)")
	scanCmd.Flags().Int64Var(&settings.MaxFileSize, "max-file-size", settings.MaxFileSize, "Skip files larger than this many bytes")
	scanCmd.Flags().IntVarP(&settings.Workers, "workers", "w", settings.Workers, "Number of files classified concurrently")
	scanCmd.Flags().BoolVar(&settings.NoCodeStats, "no-code-stats", settings.NoCodeStats, "Disable code statistics (lines of code, comments, blanks, complexity)")
}

// ScanResult wraps a scan report for output
type ScanResult struct {
	Report    *scan.Report
	ShowFiles bool
}

func (r *ScanResult) ToJSON() interface{} {
	return r.Report
}

func (r *ScanResult) ToText(w io.Writer) {
	st := stylesFor(w)
	rep := r.Report

	fmt.Fprintf(w, "%s %s\n", st.header.Render("Root:"), rep.Metadata.ScanPath)
	if rep.Git != nil {
		dirty := ""
		if rep.Git.IsDirty {
			dirty = st.warning.Render(" (dirty)")
		}
		fmt.Fprintf(w, "%s %s@%s%s\n", st.header.Render("Git: "), rep.Git.Branch, shortCommit(rep.Git.Commit), dirty)
	}

	if r.ShowFiles && len(rep.Files) > 0 {
		fmt.Fprintln(w)
		for _, f := range rep.Files {
			fmt.Fprintf(w, "%-40s %s %s\n", f.Path, st.language(f.Language), st.dim.Render("("+f.Stage+")"))
		}
	}

	fmt.Fprintln(w)
	for _, ls := range rep.Summary.ByLanguage {
		name := fmt.Sprintf("%-14s", ls.Name)
		if st.color {
			name = st.language(ls.Language) + strings.Repeat(" ", max(0, 14-len(ls.Name)))
		}
		fmt.Fprintf(w, "%s %6d files %8d lines %8d code\n", name, ls.Files, ls.Lines, ls.Code)
	}

	total := rep.Summary.Total
	fmt.Fprintf(w, "\n%s %d files in %d directories, %d lines, %d skipped (%dms)\n",
		st.header.Render("Total:"), total.Files, rep.Metadata.DirCount, total.Lines, len(rep.Skipped), rep.Metadata.DurationMs)
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

func runScan(cmd *cobra.Command, args []string) {
	logger := slog.Default()
	absPath := resolveScanPath(args)

	// Handle special case: -o - means stdout
	if settings.OutputFile == "-" {
		settings.OutputFile = ""
	}
	settings.Format = scanFormat

	project, err := config.LoadProjectConfig(absPath)
	exitOnError("Failed to load project config", err)
	if !cmd.Flags().Changed("max-file-size") {
		project.ApplyTo(settings)
	} else {
		settings.ExcludePatterns = project.MergeExcludes(settings.ExcludePatterns)
	}
	exitOnError("Invalid settings", settings.Validate())

	d, err := newDetector(logger)
	exitOnError("Failed to initialize detector", err)

	var prog *progress.Progress
	if settings.Verbose {
		prog = progress.New(true, progress.NewSimpleHandler(os.Stderr))
	}

	logger.Debug("Initializing scanner",
		"path", absPath,
		"exclude_patterns", settings.ExcludePatterns,
		"workers", settings.Workers,
		"code_stats", !settings.NoCodeStats)

	s := scan.New(provider.NewFSProvider(absPath), d, scan.Options{
		Excludes:    settings.ExcludePatterns,
		Project:     project,
		MaxFileSize: settings.MaxFileSize,
		Workers:     settings.Workers,
		CodeStats:   !settings.NoCodeStats,
		Provenance:  true,
		Progress:    prog,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := s.Scan(ctx)
	exitOnError("Failed to scan", err)

	result := &ScanResult{Report: report, ShowFiles: scanShowFiles}
	exitOnError("Failed to write output", OutputToFile(result, settings.Format, settings.OutputFile))
}

// resolveScanPath resolves and validates the scan directory from args
func resolveScanPath(args []string) string {
	path := "."
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}

	absPath, err := filepath.Abs(path)
	exitOnError("Invalid path", err)

	info, err := os.Stat(absPath)
	exitOnError("Path does not exist", err)
	if !info.IsDir() {
		exitOnError("Invalid path", fmt.Errorf("%s is not a directory (use detect for single files)", absPath))
	}
	return absPath
}
