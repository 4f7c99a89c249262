package detector

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/petrarca/snippet-lang/internal/model"
	"github.com/petrarca/snippet-lang/internal/types"
)

// Stages reported in Result
const (
	StageModel    = "model"
	StageDetector = types.StageDetector
	StageLinear   = types.StageLinear
	StageFallback = "fallback"
)

// ModelSource provides the optional trained classifier
type ModelSource interface {
	Model() (model.Model, bool)
}

// Result is a classification with the stage and reason that produced it
type Result struct {
	Language   types.Language `json:"language" yaml:"language"`
	Name       string         `json:"name" yaml:"name"`
	Stage      string         `json:"stage" yaml:"stage"`
	Reason     string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Confidence float64        `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Detector classifies snippets. It is immutable after New and safe for concurrent use.
type Detector struct {
	rules    map[types.Language]*compiledRule
	priority []types.Language
	models   ModelSource
	logger   *slog.Logger
}

// Option configures a Detector
type Option func(*Detector)

// WithModel enables the model-backed path
func WithModel(src ModelSource) Option {
	return func(d *Detector) {
		d.models = src
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPriority replaces DefaultPriority
func WithPriority(priority []types.Language) Option {
	return func(d *Detector) {
		d.priority = append([]types.Language(nil), priority...)
	}
}

// New compiles rules and returns a detector. Every language in the priority
// list needs a rule, and every rule needs a place in the priority list.
func New(rules []types.DetectionRule, opts ...Option) (*Detector, error) {
	d := &Detector{
		rules:    make(map[types.Language]*compiledRule, len(rules)),
		priority: append([]types.Language(nil), DefaultPriority...),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, rule := range rules {
		if _, dup := d.rules[rule.Language]; dup {
			return nil, fmt.Errorf("duplicate rule for %s", rule.Language)
		}
		compiled, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", rule.Language, err)
		}
		d.rules[rule.Language] = compiled
	}

	seen := make(map[types.Language]bool, len(d.priority))
	for _, lang := range d.priority {
		if seen[lang] {
			return nil, fmt.Errorf("%s appears twice in the priority list", lang)
		}
		seen[lang] = true
		if _, ok := d.rules[lang]; !ok {
			return nil, fmt.Errorf("no rule for %s in the priority list", lang)
		}
	}
	for lang := range d.rules {
		if !seen[lang] {
			return nil, fmt.Errorf("rule for %s is not in the priority list", lang)
		}
	}

	d.logger.Debug("Detector ready", "rules", len(d.rules), "model", d.models != nil)
	return d, nil
}

// DetectLanguage returns the language of code. It never fails.
func (d *Detector) DetectLanguage(code string) types.Language {
	return d.Detect(code).Language
}

// Detect classifies code with the model first, then the pattern cascade
func (d *Detector) Detect(code string) Result {
	if pred, ok := d.predict(code); ok {
		lang := types.Normalize(pred.Label)
		return Result{
			Language:   lang,
			Name:       lang.PrettyName(),
			Stage:      StageModel,
			Reason:     fmt.Sprintf("%s: %s", pred.Strategy, pred.Label),
			Confidence: pred.Confidence,
		}
	}
	return d.cascade(code)
}

// ClassifyWithModel returns the model's label mapped onto an identifier, or false
// when no model is loaded or it has no answer for code
func (d *Detector) ClassifyWithModel(code string) (types.Language, bool) {
	pred, ok := d.predict(code)
	if !ok {
		return "", false
	}
	return types.Normalize(pred.Label), true
}

// ClassifyByPatterns runs the fallback cascade only
func (d *Detector) ClassifyByPatterns(code string) types.Language {
	return d.cascade(code).Language
}

// DetectByPatterns is Detect without the model
func (d *Detector) DetectByPatterns(code string) Result {
	return d.cascade(code)
}

// Priority returns the cascade order
func (d *Detector) Priority() []types.Language {
	return append([]types.Language(nil), d.priority...)
}

func (d *Detector) cascade(code string) Result {
	lower := strings.ToLower(code)
	for _, lang := range d.priority {
		rule := d.rules[lang]
		if matched, reason, ok := rule.match(lower, code); ok {
			return Result{
				Language: matched,
				Name:     matched.PrettyName(),
				Stage:    rule.stage,
				Reason:   reason,
			}
		}
	}
	return Result{
		Language: types.PlainText,
		Name:     types.PlainText.PrettyName(),
		Stage:    StageFallback,
	}
}

func (d *Detector) predict(code string) (model.Prediction, bool) {
	if d.models == nil {
		return model.Prediction{}, false
	}
	m, ok := d.models.Model()
	if !ok {
		return model.Prediction{}, false
	}

	pred, err := safePredict(m, code)
	if err != nil || strings.TrimSpace(pred.Label) == "" {
		d.logger.Debug("Model gave no result", "backend", m.Name(), "error", err)
		return model.Prediction{}, false
	}
	return pred, true
}

// safePredict turns a panic inside the backend into an error for this call only
func safePredict(m model.Model, code string) (pred model.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model %s panicked: %v", m.Name(), r)
		}
	}()
	return m.Predict(code)
}
