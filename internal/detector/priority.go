package detector

import "github.com/petrarca/snippet-lang/internal/types"

// DefaultPriority is the order in which the fallback cascade tries languages.
// Scored detectors come first, then the single-pass substring checks. The first match wins.
var DefaultPriority = []types.Language{
	// scored detectors
	types.JavaScript,
	types.CSS,
	types.PHP,
	types.Go,
	types.Ruby,
	types.CPP,
	types.Java,
	types.Python,
	types.SQL,

	// linear checks
	types.Swift,
	types.CSharp,
	types.Kotlin,
	types.Bash,
	types.XML,
	types.JSON,
	types.YAML,
	types.Rust,
	types.ObjectiveC,
	types.HTML,
	types.Scala,
}
