// Package codestats provides code statistics for snippets (lines of code, comments, blanks, complexity)
package codestats

import (
	"bytes"
	"math"
	"sort"
	"sync"

	"github.com/boyter/scc/v3/processor"
	"github.com/petrarca/snippet-lang/internal/types"
)

var initOnce sync.Once

// Analyzer names reported in Stats
const (
	AnalyzerSCC   = "scc"
	AnalyzerLines = "lines"
)

// round2 rounds a float to 2 decimal places
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Stats holds code statistics for one snippet
type Stats struct {
	Lines      int64  `json:"lines" yaml:"lines"`
	Code       int64  `json:"code" yaml:"code"`
	Comments   int64  `json:"comments" yaml:"comments"`
	Blanks     int64  `json:"blanks" yaml:"blanks"`
	Complexity int64  `json:"complexity" yaml:"complexity"`
	Analyzer   string `json:"analyzer" yaml:"analyzer"` // "scc" or "lines" when scc does not know the language
}

// Count analyzes content as the given language.
// scc picks its comment and string syntax from the language's canonical extension.
func Count(lang types.Language, content []byte) Stats {
	initOnce.Do(func() {
		processor.ProcessConstants()
	})

	sccLang, filename := sccLanguage(lang)
	if sccLang == "" {
		return countLines(content)
	}

	filejob := &processor.FileJob{
		Filename: filename,
		Language: sccLang,
		Content:  content,
		Bytes:    int64(len(content)),
	}
	processor.CountStats(filejob)

	return Stats{
		Lines:      filejob.Lines,
		Code:       filejob.Code,
		Comments:   filejob.Comment,
		Blanks:     filejob.Blank,
		Complexity: filejob.Complexity,
		Analyzer:   AnalyzerSCC,
	}
}

func sccLanguage(lang types.Language) (string, string) {
	info, ok := types.Lookup(string(lang))
	if !ok {
		return "", ""
	}
	filename := "snippet" + info.Extension
	sccLangs, _ := processor.DetectLanguage(filename)
	if len(sccLangs) == 0 {
		return "", filename
	}
	return sccLangs[0], filename
}

// countLines is the fallback for languages scc cannot parse: every non-blank line counts as code
func countLines(content []byte) Stats {
	s := Stats{Analyzer: AnalyzerLines}
	if len(content) == 0 {
		return s
	}
	for _, line := range bytes.Split(bytes.TrimSuffix(content, []byte("\n")), []byte("\n")) {
		s.Lines++
		if len(bytes.TrimSpace(line)) == 0 {
			s.Blanks++
		} else {
			s.Code++
		}
	}
	return s
}

// LanguageStats holds aggregated stats for one language
type LanguageStats struct {
	Language   types.Language `json:"language" yaml:"language"`
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type" yaml:"type"`
	Files      int            `json:"files" yaml:"files"`
	Lines      int64          `json:"lines" yaml:"lines"`
	Code       int64          `json:"code" yaml:"code"`
	Comments   int64          `json:"comments" yaml:"comments"`
	Blanks     int64          `json:"blanks" yaml:"blanks"`
	Complexity int64          `json:"complexity" yaml:"complexity"`
}

// Metrics holds derived code metrics
type Metrics struct {
	CommentRatio float64 `json:"comment_ratio" yaml:"comment_ratio"` // comments / code
	CodeDensity  float64 `json:"code_density" yaml:"code_density"`   // code / lines
	AvgFileSize  float64 `json:"avg_file_size" yaml:"avg_file_size"` // lines / files
}

// Summary holds statistics aggregated over many snippets
type Summary struct {
	Total      LanguageStats   `json:"total" yaml:"total"`
	ByLanguage []LanguageStats `json:"by_language" yaml:"by_language"` // Sorted by files, then lines, descending
	ByType     map[string]int  `json:"by_type" yaml:"by_type"`         // files per Linguist type
	Metrics    Metrics         `json:"metrics" yaml:"metrics"`
}

// Aggregator collects per-snippet stats. It is safe for concurrent use.
type Aggregator struct {
	mu         sync.Mutex
	byLanguage map[types.Language]*LanguageStats
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{byLanguage: make(map[types.Language]*LanguageStats)}
}

// Add records one snippet
func (a *Aggregator) Add(lang types.Language, s Stats) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ls, ok := a.byLanguage[lang]
	if !ok {
		ls = &LanguageStats{Language: lang, Name: lang.PrettyName(), Type: lang.LanguageType()}
		a.byLanguage[lang] = ls
	}
	ls.Files++
	ls.Lines += s.Lines
	ls.Code += s.Code
	ls.Comments += s.Comments
	ls.Blanks += s.Blanks
	ls.Complexity += s.Complexity
}

// Summary returns the totals, per-language stats and derived metrics
func (a *Aggregator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summary := Summary{
		ByLanguage: make([]LanguageStats, 0, len(a.byLanguage)),
		ByType:     make(map[string]int),
	}
	for _, ls := range a.byLanguage {
		summary.ByLanguage = append(summary.ByLanguage, *ls)
		summary.ByType[ls.Type] += ls.Files

		summary.Total.Files += ls.Files
		summary.Total.Lines += ls.Lines
		summary.Total.Code += ls.Code
		summary.Total.Comments += ls.Comments
		summary.Total.Blanks += ls.Blanks
		summary.Total.Complexity += ls.Complexity
	}
	sort.Slice(summary.ByLanguage, func(i, j int) bool {
		x, y := summary.ByLanguage[i], summary.ByLanguage[j]
		if x.Files != y.Files {
			return x.Files > y.Files
		}
		if x.Lines != y.Lines {
			return x.Lines > y.Lines
		}
		return x.Language < y.Language
	})

	total := summary.Total
	if total.Code > 0 {
		summary.Metrics.CommentRatio = round2(float64(total.Comments) / float64(total.Code))
	}
	if total.Lines > 0 {
		summary.Metrics.CodeDensity = round2(float64(total.Code) / float64(total.Lines))
	}
	if total.Files > 0 {
		summary.Metrics.AvgFileSize = round2(float64(total.Lines) / float64(total.Files))
	}
	return summary
}
