package cmd

import (
	"fmt"
	"io"

	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/spf13/cobra"
)

var nameFormat string

var nameCmd = &cobra.Command{
	Use:   "name <identifier>...",
	Short: "Print the display name of language identifiers",
	Long: `Name maps language identifiers to their display names (cpp -> C++, csharp -> C#).
Unknown identifiers are printed capitalized.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runName,
}

func init() {
	rootCmd.AddCommand(nameCmd)
	setupFormatFlag(nameCmd, &nameFormat)
}

// NameEntry is one resolved identifier
type NameEntry struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Known bool   `json:"known" yaml:"known"`
}

// NameResult is the output of the name command
type NameResult struct {
	Names []NameEntry `json:"names" yaml:"names"`
}

func (r *NameResult) ToJSON() interface{} {
	return r
}

func (r *NameResult) ToText(w io.Writer) {
	for _, n := range r.Names {
		fmt.Fprintln(w, n.Name)
	}
}

func runName(cmd *cobra.Command, args []string) {
	exitOnError("Failed to write output", OutputToFile(buildNameResult(args), nameFormat, ""))
}

func buildNameResult(ids []string) *NameResult {
	result := &NameResult{Names: make([]NameEntry, 0, len(ids))}
	for _, id := range ids {
		result.Names = append(result.Names, NameEntry{
			ID:    id,
			Name:  types.PrettyName(id),
			Known: types.IsKnown(id),
		})
	}
	return result
}
