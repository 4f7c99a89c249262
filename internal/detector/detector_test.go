package detector

import (
	"errors"
	"sync"
	"testing"

	"github.com/petrarca/snippet-lang/internal/model"
	"github.com/petrarca/snippet-lang/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	pred  model.Prediction
	err   error
	panic bool
	calls int
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) Predict(string) (model.Prediction, error) {
	f.calls++
	if f.panic {
		panic("backend exploded")
	}
	return f.pred, f.err
}

func TestDetect_ModelFirst(t *testing.T) {
	fake := &fakeModel{pred: model.Prediction{Label: "Rust", Confidence: 0.5, Strategy: "classifier"}}
	d := newTestDetector(t, WithModel(model.Static{M: fake}))

	result := d.Detect("package main")
	assert.Equal(t, types.Rust, result.Language)
	assert.Equal(t, StageModel, result.Stage)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestDetectByPatterns_SkipsModel(t *testing.T) {
	fake := &fakeModel{pred: model.Prediction{Label: "Rust", Confidence: 0.5, Strategy: "classifier"}}
	d := newTestDetector(t, WithModel(model.Static{M: fake}))

	result := d.DetectByPatterns("")
	assert.Equal(t, types.PlainText, result.Language)
	assert.Equal(t, StageFallback, result.Stage)
	assert.Equal(t, 0, fake.calls)
}

func TestDetect_ModelLabelNormalization(t *testing.T) {
	tests := []struct {
		label    string
		expected types.Language
	}{
		{"go", types.Go},
		{"Shell", types.Bash},
		{"C++", types.CPP},
		{"Objective-C", types.ObjectiveC},
		{"Haskell", types.Language("Haskell")},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			fake := &fakeModel{pred: model.Prediction{Label: tt.label}}
			d := newTestDetector(t, WithModel(model.Static{M: fake}))

			lang, ok := d.ClassifyWithModel("anything")
			require.True(t, ok)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestDetect_ModelFailureFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
	}{
		{"error", &fakeModel{err: model.ErrUnclassifiable}},
		{"empty label", &fakeModel{pred: model.Prediction{Label: "  "}}},
		{"panic", &fakeModel{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(t, WithModel(model.Static{M: tt.model}))

			_, ok := d.ClassifyWithModel("select * from users where id = 1")
			assert.False(t, ok)

			result := d.Detect("select * from users where id = 1")
			assert.Equal(t, types.SQL, result.Language)
			assert.Equal(t, StageDetector, result.Stage)

			// The model stays enabled after a failed call
			d.Detect("x")
			assert.Equal(t, 3, tt.model.calls)
		})
	}
}

func TestDetect_NoModel(t *testing.T) {
	d := newTestDetector(t, WithModel(model.NewLoader("", nil)))

	_, ok := d.ClassifyWithModel("package main")
	assert.False(t, ok)
	assert.Equal(t, types.Go, d.DetectLanguage("package main\nimport \"fmt\"\nfunc main() {}"))
}

func TestDetect_EnryModel(t *testing.T) {
	d := newTestDetector(t, WithModel(model.Static{M: model.NewEnryModel(nil, []string{model.StrategyShebang})}))

	result := d.Detect("#!/bin/bash\necho hi\n")
	assert.Equal(t, types.Bash, result.Language)
	assert.Equal(t, StageModel, result.Stage)

	// no shebang: falls through to the cascade
	result = d.Detect("select * from users where id = 1")
	assert.Equal(t, types.SQL, result.Language)
}

func TestClassifyByPatterns_WordBoundary(t *testing.T) {
	d := newTestDetector(t)
	assert.NotEqual(t, types.Go, d.ClassifyByPatterns("variable123 = 5"))
	assert.Equal(t, types.PlainText, d.ClassifyByPatterns("variable123 = 5"))
}

func TestClassifyByPatterns_JavaScriptVersusTypeScript(t *testing.T) {
	d := newTestDetector(t)
	assert.Equal(t, types.JavaScript, d.ClassifyByPatterns("const x = 1;"))
	assert.Equal(t, types.TypeScript, d.ClassifyByPatterns("interface Foo { x: number }"))
	assert.Equal(t, types.TypeScript, d.ClassifyByPatterns("const count: number = 1;"))
}

func TestClassifyByPatterns_FunctionInProseIsDiscounted(t *testing.T) {
	d := newTestDetector(t)
	// "function" without a parameter list does not count as a JavaScript keyword
	assert.NotEqual(t, types.JavaScript, d.ClassifyByPatterns("the function of a window is to let light in"))
}

func TestClassifyByPatterns_SQLCaseInsensitive(t *testing.T) {
	d := newTestDetector(t)
	assert.Equal(t, types.SQL, d.ClassifyByPatterns("select * from users where id = 1"))
	assert.Equal(t, types.SQL, d.ClassifyByPatterns("SELECT * FROM USERS WHERE ID = 1"))
	assert.Equal(t, types.SQL, d.ClassifyByPatterns("Insert Into accounts (id) Values (1)"))
}

func TestClassifyByPatterns_PythonArrowOnlyInDef(t *testing.T) {
	d := newTestDetector(t)
	assert.Equal(t, types.Python, d.ClassifyByPatterns("def area(r: float) -> float:\n    return 3.14 * r * r"))
	assert.NotEqual(t, types.Python, d.ClassifyByPatterns("x -> y"))
}

// The Go slice feature only counts "[]" when the snippet has no "()" anywhere,
// so adding an empty call removes the third feature
func TestClassifyByPatterns_GoSliceWithoutCall(t *testing.T) {
	d := newTestDetector(t)

	withoutCall := "func handler {\n  items []string\n}"
	result := d.Detect(withoutCall)
	assert.Equal(t, types.Go, result.Language)
	assert.Contains(t, result.Reason, "slice_without_call")

	withCall := "func handler {\n  items []string\n  run()\n}"
	assert.NotEqual(t, types.Go, d.ClassifyByPatterns(withCall))
}

func TestClassifyByPatterns_PriorityOrder(t *testing.T) {
	d := newTestDetector(t)
	assert.Equal(t, types.Go, d.ClassifyByPatterns("package main\nimport \"fmt\"\nfunc main() {}"))

	// PHP runs before Go: a PHP variable assignment wins even with Go-like text around it
	assert.Equal(t, types.PHP, d.ClassifyByPatterns("$count = 1;\nfunc"))

	// JavaScript runs first, so async C# reaches its keyword threshold before C# is checked
	csharp := "public async Task LoadAsync()\n{\n    var data = await client.GetStringAsync(url);\n}"
	assert.Equal(t, types.JavaScript, d.ClassifyByPatterns(csharp))
}

func TestClassifyByPatterns_CustomPriority(t *testing.T) {
	code := "import Foundation\nprint(\"hi\")"

	d := newTestDetector(t)
	assert.Equal(t, types.Python, d.ClassifyByPatterns(code))

	// Moving the Swift check ahead of the scored detectors flips the result
	priority := append([]types.Language{types.Swift}, without(DefaultPriority, types.Swift)...)
	d = newTestDetector(t, WithPriority(priority))
	assert.Equal(t, types.Swift, d.ClassifyByPatterns(code))
	assert.Equal(t, priority, d.Priority())
}

func without(list []types.Language, drop types.Language) []types.Language {
	var out []types.Language
	for _, l := range list {
		if l != drop {
			out = append(out, l)
		}
	}
	return out
}

func TestDetect_Deterministic(t *testing.T) {
	d := newTestDetector(t)

	var wg sync.WaitGroup
	results := make([][]types.Language, 8)
	for w := range results {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for _, s := range goldenSamples {
				results[w] = append(results[w], d.DetectLanguage(s.code))
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < len(results); w++ {
		assert.Equal(t, results[0], results[w])
	}
}

func TestDetect_ResultFields(t *testing.T) {
	d := newTestDetector(t)

	result := d.Detect("#include <iostream>\nint main() { std::cout << 1; }")
	assert.Equal(t, types.CPP, result.Language)
	assert.Equal(t, "C++", result.Name)
	assert.Equal(t, StageDetector, result.Stage)
	assert.NotEmpty(t, result.Reason)

	result = d.Detect("fn main() { let x = 1; }")
	assert.Equal(t, types.Rust, result.Language)
	assert.Equal(t, StageLinear, result.Stage)

	result = d.Detect("")
	assert.Equal(t, types.PlainText, result.Language)
	assert.Equal(t, "Plain Text", result.Name)
	assert.Equal(t, StageFallback, result.Stage)
}

func TestNew_Errors(t *testing.T) {
	goRule := types.DetectionRule{Language: types.Go, Patterns: []string{`func`}}

	_, err := New([]types.DetectionRule{goRule}, WithPriority([]types.Language{types.Go, types.Rust}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule for rust")

	_, err = New([]types.DetectionRule{goRule}, WithPriority(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the priority list")

	_, err = New([]types.DetectionRule{goRule, goRule}, WithPriority([]types.Language{types.Go}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule")

	_, err = New([]types.DetectionRule{goRule}, WithPriority([]types.Language{types.Go, types.Go}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")

	bad := types.DetectionRule{Language: types.Go, Patterns: []string{`(unclosed`}}
	_, err = New([]types.DetectionRule{bad}, WithPriority([]types.Language{types.Go}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile rule go")
}

func TestNew_MinimalRuleSet(t *testing.T) {
	d, err := New([]types.DetectionRule{
		{Language: types.Go, Keywords: types.KeywordRule{Threshold: 1, Terms: []string{"func"}}},
	}, WithPriority([]types.Language{types.Go}))
	require.NoError(t, err)

	assert.Equal(t, types.Go, d.ClassifyByPatterns("func x"))
	assert.Equal(t, types.PlainText, d.ClassifyByPatterns("function"))
}

func TestDescribe(t *testing.T) {
	d := newTestDetector(t)

	s, ok := d.Describe(types.Go)
	require.True(t, ok)
	assert.Equal(t, 4, s.Position)
	assert.Equal(t, StageDetector, s.Stage)
	assert.Equal(t, 4, s.KeywordThreshold)
	assert.Contains(t, s.Keywords, `\bfunc\b`)
	assert.Contains(t, s.Keywords, `:=`)
	assert.Contains(t, s.Features, "slice_without_call")

	s, ok = d.Describe(types.JSON)
	require.True(t, ok)
	assert.Equal(t, StageLinear, s.Stage)
	assert.Equal(t, "{ | [", s.Prefixes)

	s, ok = d.Describe(types.JavaScript)
	require.True(t, ok)
	assert.NotEmpty(t, s.Refinements["typescript"])

	_, ok = d.Describe(types.PlainText)
	assert.False(t, ok)
}

func TestSafePredict(t *testing.T) {
	_, err := safePredict(&fakeModel{panic: true}, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend exploded")

	_, err = safePredict(&fakeModel{err: errors.New("boom")}, "x")
	assert.EqualError(t, err, "boom")
}
