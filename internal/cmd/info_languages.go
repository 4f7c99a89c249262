package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/go-enry/go-enry/v2/data"
	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/spf13/cobra"
)

var languagesFormat string
var languagesOutput string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported language identifiers",
	Long: `List every language identifier the detector can return, with its display name,
GitHub Linguist type, color and file extensions.`,
	Run: runLanguages,
}

func init() {
	setupOutputFlags(languagesCmd, &languagesFormat, &languagesOutput)
}

// LanguageInfo holds information about a supported language
type LanguageInfo struct {
	ID         types.Language `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Linguist   string         `json:"linguist" yaml:"linguist"`
	Type       string         `json:"type" yaml:"type"`
	Color      string         `json:"color,omitempty" yaml:"color,omitempty"`
	Stage      string         `json:"stage" yaml:"stage"`
	Extensions []string       `json:"extensions" yaml:"extensions"`
}

// LanguagesSummary holds summary statistics
type LanguagesSummary struct {
	Total  int            `json:"total" yaml:"total"`
	ByType map[string]int `json:"by_type" yaml:"by_type"`
}

// LanguagesResult is the output for the languages command
type LanguagesResult struct {
	Languages []LanguageInfo   `json:"languages" yaml:"languages"`
	Summary   LanguagesSummary `json:"summary" yaml:"summary"`
}

func (r *LanguagesResult) ToJSON() interface{} {
	return r
}

func (r *LanguagesResult) ToText(w io.Writer) {
	st := stylesFor(w)
	for _, lang := range r.Languages {
		// Pad before styling so escape codes do not break the columns
		name := fmt.Sprintf("%-14s", lang.Name)
		if st.color {
			name = st.language(lang.ID) + strings.Repeat(" ", max(0, 14-len(lang.Name)))
		}
		fmt.Fprintf(w, "%-13s %s %-12s %-9s %s\n", lang.ID, name, lang.Type, lang.Stage,
			st.dim.Render(strings.Join(lang.Extensions, " ")))
	}
	fmt.Fprintf(w, "\nTotal: %d languages\n", r.Summary.Total)
	fmt.Fprintf(w, "By type: programming=%d, data=%d, markup=%d, prose=%d\n",
		r.Summary.ByType["programming"], r.Summary.ByType["data"],
		r.Summary.ByType["markup"], r.Summary.ByType["prose"])
}

func runLanguages(cmd *cobra.Command, args []string) {
	result := buildLanguagesResult(detector.DefaultPriority)
	exitOnError("Failed to write output", OutputToFile(result, languagesFormat, languagesOutput))
}

// buildLanguagesResult lists the identifier table; stage tells where the cascade produces each one
func buildLanguagesResult(priority []types.Language) *LanguagesResult {
	stages := make(map[types.Language]string, len(priority))
	for i, lang := range priority {
		stages[lang] = fmt.Sprintf("#%d", i+1)
	}
	// Refined and default results have no slot of their own
	stages[types.TypeScript] = "refined"
	stages[types.PlainText] = "fallback"

	table := types.Languages()
	languages := make([]LanguageInfo, 0, len(table))
	byType := make(map[string]int)

	for _, info := range table {
		typeName := info.ID.LanguageType()
		languages = append(languages, LanguageInfo{
			ID:         info.ID,
			Name:       info.DisplayName,
			Linguist:   info.LinguistName,
			Type:       typeName,
			Color:      enry.GetColor(info.LinguistName),
			Stage:      stages[info.ID],
			Extensions: getExtensionsForLanguage(info.LinguistName),
		})
		byType[typeName]++
	}

	// Sort by identifier
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].ID < languages[j].ID
	})

	return &LanguagesResult{
		Languages: languages,
		Summary: LanguagesSummary{
			Total:  len(languages),
			ByType: byType,
		},
	}
}

// getExtensionsForLanguage returns file extensions for a Linguist language
func getExtensionsForLanguage(lang string) []string {
	var extensions []string
	for ext, langs := range data.LanguagesByExtension {
		for _, l := range langs {
			if l == lang {
				extensions = append(extensions, ext)
				break
			}
		}
	}
	sort.Strings(extensions)
	return extensions
}
