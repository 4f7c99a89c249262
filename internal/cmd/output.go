package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/petrarca/snippet-lang/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Outputter interface for commands with structured output
type Outputter interface {
	// ToJSON returns the data structure for JSON/YAML marshaling
	ToJSON() interface{}
	// ToText writes human-readable text format
	ToText(w io.Writer)
}

// Render formats o without writing it anywhere
func Render(o Outputter, format string, pretty bool) ([]byte, error) {
	switch config.NormalizeFormat(format) {
	case config.FormatJSON:
		if !pretty {
			return json.Marshal(o.ToJSON())
		}
		data, err := json.MarshalIndent(o.ToJSON(), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case config.FormatYAML:
		return yaml.Marshal(o.ToJSON())
	default: // text
		var buf bytes.Buffer
		o.ToText(&buf)
		return buf.Bytes(), nil
	}
}

// OutputToFile handles unified output for any Outputter with optional file output
func OutputToFile(o Outputter, format string, outputFile string) error {
	// Text goes straight to a terminal so it can be styled
	if outputFile == "" && config.NormalizeFormat(format) == config.FormatText {
		o.ToText(os.Stdout)
		return nil
	}

	data, err := Render(o, format, settings.PrettyPrint)
	if err != nil {
		return fmt.Errorf("failed to render %s output: %w", format, err)
	}

	if outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	// Always show confirmation to user (like curl -o)
	fmt.Fprintf(os.Stderr, "Results written to %s\n", outputFile)
	return nil
}

// setupFormatFlag configures format flag and validation for a command
func setupFormatFlag(cmd *cobra.Command, formatPtr *string) {
	cmd.Flags().StringVarP(formatPtr, "format", "f", settings.Format, "Output format: text, json or yaml")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		*formatPtr = config.NormalizeFormat(*formatPtr)
		return config.ValidateFormat(*formatPtr)
	}
}

// setupOutputFlags configures both format and output flags for a command
func setupOutputFlags(cmd *cobra.Command, formatPtr *string, outputPtr *string) {
	setupFormatFlag(cmd, formatPtr)
	cmd.Flags().StringVarP(outputPtr, "output", "o", settings.OutputFile, "Output file path (default: stdout)")
}
