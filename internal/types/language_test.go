package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyName(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"cpp", "C++"},
		{"csharp", "C#"},
		{"objective-c", "Objective-C"},
		{"CPP", "C++"},
		{"bash", "Bash"},
		{"plaintext", "Plain Text"},
		{"unknownlang", "Unknownlang"},
		{"unknownLang", "Unknownlang"},
		{"ELIXIR", "Elixir"},
		{"foo-bar", "Foo-Bar"},
		{"visual basic", "Visual Basic"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrettyName(tt.id))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		label    string
		expected Language
	}{
		{"go", Go},
		{"Go", Go},
		{"C++", CPP},
		{"Shell", Bash},
		{"Objective-C", ObjectiveC},
		{"Text", PlainText},
		{"Haskell", Language("Haskell")},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.label))
		})
	}
}

func TestLanguages_ClosedSet(t *testing.T) {
	languages := Languages()
	assert.Len(t, languages, 22)

	seen := make(map[Language]bool)
	for _, info := range languages {
		assert.False(t, seen[info.ID], "duplicate identifier %s", info.ID)
		seen[info.ID] = true
		assert.Equal(t, string(info.ID), string(Normalize(string(info.ID))))
		assert.NotEmpty(t, info.Extension)
	}

	// Mutating the returned slice must not affect the table
	languages[0].DisplayName = "changed"
	assert.Equal(t, "Swift", PrettyName("swift"))
}

func TestLanguage_LanguageType(t *testing.T) {
	assert.Equal(t, "programming", Go.LanguageType())
	assert.Equal(t, "data", JSON.LanguageType())
	assert.Equal(t, "markup", HTML.LanguageType())
	assert.Equal(t, "unknown", Language("brainfuck-ish").LanguageType())
}
