package model

import (
	"errors"
	"fmt"
)

// ErrUnclassifiable reports that the model has no prediction for a given input
var ErrUnclassifiable = errors.New("content cannot be classified")

// Prediction is a model label with an indicative confidence
type Prediction struct {
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Strategy   string  `json:"strategy" yaml:"strategy"`
}

// Model is a trained text classifier
type Model interface {
	// Name identifies the backend
	Name() string

	// Predict returns the most likely label for text
	Predict(text string) (Prediction, error)
}

// New creates the model a manifest describes
func New(m *Manifest) (Model, error) {
	switch m.Backend {
	case BackendEnryBayes:
		return NewEnryModel(m.Labels, m.Strategies), nil
	default:
		return nil, fmt.Errorf("unsupported model backend %q", m.Backend)
	}
}
