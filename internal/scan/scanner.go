// Package scan classifies every snippet file below a directory
package scan

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-enry/go-enry/v2"
	"github.com/petrarca/snippet-lang/internal/codestats"
	"github.com/petrarca/snippet-lang/internal/config"
	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/petrarca/snippet-lang/internal/git"
	"github.com/petrarca/snippet-lang/internal/metadata"
	"github.com/petrarca/snippet-lang/internal/progress"
	"github.com/petrarca/snippet-lang/internal/provider"
	"github.com/petrarca/snippet-lang/internal/spec"
	"github.com/petrarca/snippet-lang/internal/types"
	"golang.org/x/sync/errgroup"
)

// StageOverride marks results forced by a project override
const StageOverride = "override"

// Skip reasons
const (
	SkipExcluded   = "excluded"
	SkipGitignore  = "gitignore"
	SkipTooLarge   = "too large"
	SkipBinary     = "binary"
	SkipUnreadable = "unreadable"
)

// Classifier is what the scanner needs from a detector
type Classifier interface {
	Detect(code string) detector.Result
}

// Options controls a scan
type Options struct {
	Excludes    []string              // doublestar globs matched against relative paths and names
	Project     *config.ProjectConfig // .snippetlang.yml of the scan root, may be nil
	MaxFileSize int64                 // larger files are skipped; 0 means no limit
	Workers     int                   // concurrent classifications; <1 means 1
	CodeStats   bool
	Provenance  bool // attach git information of the scan root
	Progress    *progress.Progress
	Logger      *slog.Logger
}

// FileResult is the classification of one file
type FileResult struct {
	Path       string           `json:"path" yaml:"path"`
	Language   types.Language   `json:"language" yaml:"language"`
	Name       string           `json:"name" yaml:"name"`
	Stage      string           `json:"stage" yaml:"stage"`
	Reason     string           `json:"reason,omitempty" yaml:"reason,omitempty"`
	Confidence float64          `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Size       int64            `json:"size" yaml:"size"`
	Stats      *codestats.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// SkippedFile is a file that was not classified
type SkippedFile struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report is the outcome of a scan
type Report struct {
	Metadata *metadata.ScanMetadata `json:"metadata" yaml:"metadata"`
	Git      *git.GitInfo           `json:"git,omitempty" yaml:"git,omitempty"`
	Files    []FileResult           `json:"files" yaml:"files"`
	Skipped  []SkippedFile          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Summary  codestats.Summary      `json:"summary" yaml:"summary"`
}

// Scanner walks a provider and classifies its files
type Scanner struct {
	provider   provider.Provider
	classifier Classifier
	opts       Options
	logger     *slog.Logger
}

// New creates a scanner
func New(p provider.Provider, c Classifier, opts Options) *Scanner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{provider: p, classifier: c, opts: opts, logger: logger}
}

// walkState is the sequential part of a scan
type walkState struct {
	gitignore *git.GitignoreStack
	files     []provider.File
	skipped   []SkippedFile
	dirs      int
}

// outcome of one classification; exactly one field is set
type outcome struct {
	result *FileResult
	skip   *SkippedFile
}

// Scan walks the tree, then classifies the collected files on a bounded worker pool.
// Files are reported in walk order regardless of worker scheduling.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	basePath := s.provider.GetBasePath()
	startTime := time.Now()
	s.opts.Progress.ScanStart(basePath, strings.Join(s.opts.Excludes, ", "))

	report := &Report{Metadata: metadata.NewScanMetadata(basePath, spec.Version)}
	report.Metadata.Workers = s.opts.Workers
	if s.opts.Provenance {
		t1 := time.Now()
		report.Git = git.GetGitInfo(basePath)
		s.logger.Debug("Retrieved git info", "duration", time.Since(t1))
		if report.Git != nil {
			s.opts.Progress.Info(fmt.Sprintf("Git: branch %q, commit %q, dirty %t",
				report.Git.Branch, report.Git.Commit, report.Git.IsDirty))
		}
	}

	state := &walkState{gitignore: git.NewGitignoreStack()}
	if err := s.recurse(ctx, state, "."); err != nil {
		return nil, err
	}
	s.logger.Debug("Completed directory walk", "files", len(state.files), "dirs", state.dirs, "skipped", len(state.skipped))

	s.opts.Progress.Info(fmt.Sprintf("Classifying %d files with %d workers", len(state.files), s.opts.Workers))
	outcomes, err := s.classifyAll(ctx, state.files)
	if err != nil {
		return nil, err
	}

	aggregator := codestats.NewAggregator()
	report.Files = make([]FileResult, 0, len(outcomes))
	report.Skipped = state.skipped
	for _, o := range outcomes {
		if o.skip != nil {
			report.Skipped = append(report.Skipped, *o.skip)
			continue
		}
		report.Files = append(report.Files, *o.result)
		if o.result.Stage == detector.StageModel {
			report.Metadata.Model = true
		}
		var stats codestats.Stats
		if o.result.Stats != nil {
			stats = *o.result.Stats
		}
		aggregator.Add(o.result.Language, stats)
	}
	report.Summary = aggregator.Summary()

	duration := time.Since(startTime)
	report.Metadata.SetDuration(duration)
	report.Metadata.SetCounts(len(report.Files), len(report.Skipped), state.dirs)
	report.Metadata.SetLanguageCount(len(report.Summary.ByLanguage))
	s.opts.Progress.ScanComplete(len(report.Files), state.dirs, duration)

	return report, nil
}

// recurse collects the files of dir and its subdirectories, honouring excludes and .gitignore files
func (s *Scanner) recurse(ctx context.Context, state *walkState, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.opts.Progress.EnterDirectory(dir)
	state.dirs++

	if patterns := s.loadGitignore(dir); state.gitignore.Push(dir, patterns) {
		defer state.gitignore.Pop()
	}

	files, err := s.provider.ListDir(dir)
	if err != nil {
		if dir == "." {
			return fmt.Errorf("failed to list scan root: %w", err)
		}
		// Continue with other directories even if one fails
		s.logger.Warn("Cannot list directory", "path", dir, "error", err)
		return nil
	}

	for _, file := range files {
		if reason, skip := s.shouldSkip(state, file); skip {
			if reason != "" {
				s.opts.Progress.Skipped(file.Path, reason)
				if !file.IsDir() {
					state.skipped = append(state.skipped, SkippedFile{Path: file.Path, Reason: reason})
				}
			}
			continue
		}

		if file.IsDir() {
			if err := s.recurse(ctx, state, file.Path); err != nil {
				return err
			}
			continue
		}
		state.files = append(state.files, file)
	}

	return nil
}

// shouldSkip decides whether an entry is left out. An empty reason means a silent skip.
func (s *Scanner) shouldSkip(state *walkState, file provider.File) (string, bool) {
	if file.IsDir() && file.Name == ".git" {
		return "", true
	}
	if !file.IsDir() && (file.Name == ".gitignore" || file.Path == config.ProjectConfigName) {
		return "", true
	}
	for _, pattern := range s.opts.Excludes {
		if git.MatchPattern(pattern, file.Name, file.Path) {
			return SkipExcluded, true
		}
	}
	if state.gitignore.ShouldExclude(file.Name, file.Path) {
		return SkipGitignore, true
	}
	if !file.IsDir() && s.opts.MaxFileSize > 0 && file.Size > s.opts.MaxFileSize {
		return SkipTooLarge, true
	}
	return "", false
}

func (s *Scanner) loadGitignore(dir string) []string {
	gitignorePath := path.Join(dir, ".gitignore")
	exists, err := s.provider.Exists(gitignorePath)
	if err != nil || !exists {
		return nil
	}
	content, err := s.provider.ReadFile(gitignorePath)
	if err != nil {
		s.logger.Warn("Cannot read .gitignore", "path", gitignorePath, "error", err)
		return nil
	}
	patterns, err := git.ParsePatterns(bytes.NewReader(content))
	if err != nil {
		s.logger.Warn("Cannot parse .gitignore", "path", gitignorePath, "error", err)
		return nil
	}
	return patterns
}

// classifyAll classifies files concurrently; outcomes[i] belongs to files[i]
func (s *Scanner) classifyAll(ctx context.Context, files []provider.File) ([]outcome, error) {
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.classifyFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Scanner) classifyFile(file provider.File) outcome {
	content, err := s.provider.ReadFile(file.Path)
	if err != nil {
		s.logger.Warn("Cannot read file", "path", file.Path, "error", err)
		s.opts.Progress.Skipped(file.Path, SkipUnreadable)
		return outcome{skip: &SkippedFile{Path: file.Path, Reason: SkipUnreadable}}
	}
	if enry.IsBinary(content) {
		s.opts.Progress.Skipped(file.Path, SkipBinary)
		return outcome{skip: &SkippedFile{Path: file.Path, Reason: SkipBinary}}
	}

	result := &FileResult{Path: file.Path, Size: int64(len(content))}
	if lang, ok := s.opts.Project.OverrideFor(file.Path); ok {
		result.Language = lang
		result.Name = lang.PrettyName()
		result.Stage = StageOverride
		result.Reason = "project override"
	} else {
		r := s.classifier.Detect(string(content))
		result.Language = r.Language
		result.Name = r.Name
		result.Stage = r.Stage
		result.Reason = r.Reason
		result.Confidence = r.Confidence
	}

	if s.opts.CodeStats {
		stats := codestats.Count(result.Language, content)
		result.Stats = &stats
	}

	s.opts.Progress.FileClassified(file.Path, string(result.Language), result.Stage)
	return outcome{result: result}
}
