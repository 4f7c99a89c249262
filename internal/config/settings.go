package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"log/slog"
)

// Output formats understood by the CLI
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Settings holds all CLI configuration
type Settings struct {
	// Classification resources
	ModelDir string // directory holding language-classifier.yaml; empty disables the model
	RulesDir string // optional directory of rule files overriding the embedded ones

	// Output settings
	Format      string
	OutputFile  string // empty = stdout
	PrettyPrint bool

	// Scan behavior
	ExcludePatterns []string
	MaxFileSize     int64
	Workers         int
	NoCodeStats     bool
	Verbose         bool

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		ModelDir:        "",
		RulesDir:        "",
		Format:          FormatText,
		OutputFile:      "",
		PrettyPrint:     true,
		ExcludePatterns: []string{},
		MaxFileSize:     1 << 20,
		Workers:         4,
		NoCodeStats:     false,
		Verbose:         false,
		LogLevel:        slog.LevelError,
		LogFormat:       "text",
		LogFile:         "", // Empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if modelDir := os.Getenv("SNIPPETLANG_MODEL_DIR"); modelDir != "" {
		settings.ModelDir = modelDir
	}

	if rulesDir := os.Getenv("SNIPPETLANG_RULES_DIR"); rulesDir != "" {
		settings.RulesDir = rulesDir
	}

	if format := os.Getenv("SNIPPETLANG_FORMAT"); format != "" {
		settings.Format = strings.ToLower(format)
	}

	if outputFile := os.Getenv("SNIPPETLANG_OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if pretty := os.Getenv("SNIPPETLANG_PRETTY"); pretty != "" {
		settings.PrettyPrint = strings.ToLower(pretty) == "true"
	}

	if excludePatterns := os.Getenv("SNIPPETLANG_EXCLUDE"); excludePatterns != "" {
		settings.ExcludePatterns = splitList(excludePatterns)
	}

	if maxSize := os.Getenv("SNIPPETLANG_MAX_FILE_SIZE"); maxSize != "" {
		if n, err := strconv.ParseInt(maxSize, 10, 64); err == nil && n > 0 {
			settings.MaxFileSize = n
		}
	}

	if workers := os.Getenv("SNIPPETLANG_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			settings.Workers = n
		}
	}

	if noStats := os.Getenv("SNIPPETLANG_NO_CODE_STATS"); noStats != "" {
		settings.NoCodeStats = strings.ToLower(noStats) == "true"
	}

	if verbose := os.Getenv("SNIPPETLANG_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	// Logging settings
	if logLevel := os.Getenv("SNIPPETLANG_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("SNIPPETLANG_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("SNIPPETLANG_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	return settings
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up the logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// NormalizeFormat normalizes the format string to lowercase
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// ValidateFormat checks if the given output format is supported
func ValidateFormat(format string) error {
	switch NormalizeFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}
}

// Validate checks if settings are valid
func (s *Settings) Validate() error {
	if err := ValidateFormat(s.Format); err != nil {
		return err
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.MaxFileSize < 1 {
		return fmt.Errorf("max file size must be positive, got %d", s.MaxFileSize)
	}
	return nil
}
