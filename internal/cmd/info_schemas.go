package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/petrarca/snippet-lang/internal/validation"
	"github.com/spf13/cobra"
)

var schemasFormat string

var schemasCmd = &cobra.Command{
	Use:   "schemas [schema file]",
	Short: "List the embedded JSON schemas or validate a file against one",
	Long: `Without arguments, list the embedded JSON schemas. With --schema and a file,
validate a rule file, model manifest or .snippetlang.yml against the schema.

Examples:
  snippetlang info schemas
  snippetlang info schemas --schema detection-rule.json my-rules/go.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSchemas,
}

var schemaName string

func init() {
	setupFormatFlag(schemasCmd, &schemasFormat)
	schemasCmd.Flags().StringVar(&schemaName, "schema", validation.DetectionRuleSchema, "Schema to validate against")
}

// SchemasResult is the output of the schemas command
type SchemasResult struct {
	Schemas []string `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	File    string   `json:"file,omitempty" yaml:"file,omitempty"`
	Schema  string   `json:"schema,omitempty" yaml:"schema,omitempty"`
	Valid   bool     `json:"valid" yaml:"valid"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (r *SchemasResult) ToJSON() interface{} {
	return r
}

func (r *SchemasResult) ToText(w io.Writer) {
	st := stylesFor(w)
	if r.File == "" {
		for _, s := range r.Schemas {
			fmt.Fprintln(w, s)
		}
		return
	}
	if r.Valid {
		fmt.Fprintf(w, "%s: valid %s\n", r.File, r.Schema)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", r.File, st.warning.Render("invalid "+r.Schema))
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}

func runSchemas(cmd *cobra.Command, args []string) {
	var result *SchemasResult
	if len(args) == 0 {
		schemas, err := validation.ListAvailableSchemas()
		exitOnError("Failed to list schemas", err)
		result = &SchemasResult{Schemas: schemas, Valid: true}
	} else {
		content, err := os.ReadFile(args[0])
		exitOnError("Failed to read file", err)
		result = validateAgainstSchema(args[0], schemaName, content)
	}

	exitOnError("Failed to write output", OutputToFile(result, schemasFormat, ""))
	if !result.Valid {
		os.Exit(1)
	}
}

func validateAgainstSchema(file, schema string, content []byte) *SchemasResult {
	result := &SchemasResult{File: file, Schema: schema, Valid: true}
	err := validation.ValidateYAML(schema, content)
	if err == nil {
		return result
	}
	result.Valid = false
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		result.Errors = verr.Errors
	} else {
		result.Errors = []string{err.Error()}
	}
	return result
}
