package types

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is a lowercase identifier from the closed set of languages the detector knows
type Language string

const (
	Swift      Language = "swift"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	CPP        Language = "cpp"
	CSharp     Language = "csharp"
	Kotlin     Language = "kotlin"
	Rust       Language = "rust"
	PHP        Language = "php"
	Go         Language = "go"
	Ruby       Language = "ruby"
	ObjectiveC Language = "objective-c"
	HTML       Language = "html"
	CSS        Language = "css"
	SQL        Language = "sql"
	Bash       Language = "bash"
	XML        Language = "xml"
	JSON       Language = "json"
	YAML       Language = "yaml"
	Java       Language = "java"
	Scala      Language = "scala"
	PlainText  Language = "plaintext"
)

const unknownType = "unknown"

// LanguageInfo describes one entry of the display-name table
type LanguageInfo struct {
	ID          Language `json:"id" yaml:"id"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	// LinguistName is the name go-enry (GitHub Linguist) uses for the language
	LinguistName string `json:"linguist_name" yaml:"linguist_name"`
	// Extension is the canonical file extension, used for code statistics
	Extension string `json:"extension" yaml:"extension"`
}

// languageTable is the process-wide display-name table, in identifier order
var languageTable = []LanguageInfo{
	{Swift, "Swift", "Swift", ".swift"},
	{Python, "Python", "Python", ".py"},
	{JavaScript, "JavaScript", "JavaScript", ".js"},
	{TypeScript, "TypeScript", "TypeScript", ".ts"},
	{CPP, "C++", "C++", ".cpp"},
	{CSharp, "C#", "C#", ".cs"},
	{Kotlin, "Kotlin", "Kotlin", ".kt"},
	{Rust, "Rust", "Rust", ".rs"},
	{PHP, "PHP", "PHP", ".php"},
	{Go, "Go", "Go", ".go"},
	{Ruby, "Ruby", "Ruby", ".rb"},
	{ObjectiveC, "Objective-C", "Objective-C", ".m"},
	{HTML, "HTML", "HTML", ".html"},
	{CSS, "CSS", "CSS", ".css"},
	{SQL, "SQL", "SQL", ".sql"},
	{Bash, "Bash", "Shell", ".sh"},
	{XML, "XML", "XML", ".xml"},
	{JSON, "JSON", "JSON", ".json"},
	{YAML, "YAML", "YAML", ".yaml"},
	{Java, "Java", "Java", ".java"},
	{Scala, "Scala", "Scala", ".scala"},
	{PlainText, "Plain Text", "Text", ".txt"},
}

var (
	languagesByID   = make(map[Language]LanguageInfo, len(languageTable))
	languagesByName = make(map[string]Language, 2*len(languageTable))
)

func init() {
	for _, info := range languageTable {
		languagesByID[info.ID] = info
		languagesByName[strings.ToLower(info.DisplayName)] = info.ID
		languagesByName[strings.ToLower(info.LinguistName)] = info.ID
	}
}

// Languages returns the display-name table in identifier order
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languageTable))
	copy(out, languageTable)
	return out
}

// Lookup returns the table entry for an identifier (case-insensitive)
func Lookup(id string) (LanguageInfo, bool) {
	info, ok := languagesByID[Language(strings.ToLower(strings.TrimSpace(id)))]
	return info, ok
}

// IsKnown reports whether id is one of the closed set of identifiers
func IsKnown(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// FromName maps a display name or Linguist name (e.g. "C++", "Shell") to its identifier
func FromName(name string) (Language, bool) {
	id, ok := languagesByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Normalize maps a classifier label onto an identifier.
// Known identifiers are returned as-is, display and Linguist names are mapped back
// to their identifier and anything else passes through unchanged.
func Normalize(label string) Language {
	if info, ok := Lookup(label); ok && string(info.ID) == label {
		return info.ID
	}
	if id, ok := FromName(label); ok {
		return id
	}
	return Language(label)
}

// PrettyName returns the human-readable name for an identifier.
// Unknown identifiers are title-cased: the first letter of each word upper, the rest lower.
func PrettyName(id string) string {
	if info, ok := Lookup(id); ok {
		return info.DisplayName
	}
	return capitalize(id)
}

// capitalize title-cases s; a Caser is stateful, so one is built per call
func capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}

// String returns the identifier
func (l Language) String() string {
	return string(l)
}

// PrettyName returns the display name of the language
func (l Language) PrettyName() string {
	return PrettyName(string(l))
}

// LanguageType returns the Linguist type of the language (programming, data, markup, prose)
func (l Language) LanguageType() string {
	info, ok := languagesByID[l]
	if !ok {
		return unknownType
	}
	return LanguageTypeToString(enry.GetLanguageType(info.LinguistName))
}

// LanguageTypeToString converts enry.Type to string (programming, data, markup, prose)
func LanguageTypeToString(t enry.Type) string {
	switch t {
	case enry.Programming:
		return "programming"
	case enry.Data:
		return "data"
	case enry.Markup:
		return "markup"
	case enry.Prose:
		return "prose"
	default:
		return unknownType
	}
}
