package model

import (
	"bytes"

	"github.com/go-enry/go-enry/v2"
	"github.com/petrarca/snippet-lang/internal/types"
)

// Indicative confidences per strategy
const (
	confidenceExact      = 1.0
	confidenceClassifier = 0.5
)

// EnryModel classifies text with go-enry's naive Bayes classifier,
// trained on the GitHub Linguist samples
type EnryModel struct {
	candidates []string
	strategies []string
}

// NewEnryModel creates an enry-backed model. Without labels the classifier
// considers the Linguist names of every known language.
func NewEnryModel(labels, strategies []string) *EnryModel {
	if len(labels) == 0 {
		labels = DefaultLabels()
	}
	if len(strategies) == 0 {
		strategies = []string{StrategyShebang, StrategyModeline, StrategyClassifier}
	}
	return &EnryModel{
		candidates: append([]string(nil), labels...),
		strategies: append([]string(nil), strategies...),
	}
}

// DefaultLabels returns the Linguist names of the closed language set
func DefaultLabels() []string {
	var labels []string
	for _, info := range types.Languages() {
		if info.ID == types.PlainText {
			continue
		}
		labels = append(labels, info.LinguistName)
	}
	return labels
}

func (m *EnryModel) Name() string {
	return BackendEnryBayes
}

// Predict tries each configured strategy in order
func (m *EnryModel) Predict(text string) (Prediction, error) {
	content := []byte(text)
	if len(bytes.TrimSpace(content)) == 0 || enry.IsBinary(content) {
		return Prediction{}, ErrUnclassifiable
	}

	for _, strategy := range m.strategies {
		switch strategy {
		case StrategyShebang:
			if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
				return Prediction{Label: lang, Confidence: confidenceExact, Strategy: strategy}, nil
			}
		case StrategyModeline:
			if lang, safe := enry.GetLanguageByModeline(content); safe && lang != "" {
				return Prediction{Label: lang, Confidence: confidenceExact, Strategy: strategy}, nil
			}
		case StrategyClassifier:
			if langs := enry.GetLanguagesByClassifier("", content, m.candidates); len(langs) > 0 && langs[0] != "" {
				return Prediction{Label: langs[0], Confidence: confidenceClassifier, Strategy: strategy}, nil
			}
		}
	}

	return Prediction{}, ErrUnclassifiable
}
