package model

import (
	"errors"
	"log/slog"
	"sync"
)

// Loader loads the bundled model at most once, on first use
type Loader struct {
	dir    string
	logger *slog.Logger

	once  sync.Once
	model Model
	err   error
}

// NewLoader creates a loader for the manifest in dir. An empty dir means no model is bundled.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Model returns the loaded model, or false when none is available.
// A failed load is logged once and never retried.
func (l *Loader) Model() (Model, bool) {
	l.once.Do(l.load)
	return l.model, l.model != nil
}

// Err returns the load error, if any, after the first call to Model
func (l *Loader) Err() error {
	l.once.Do(l.load)
	return l.err
}

func (l *Loader) load() {
	manifest, err := LoadManifest(l.dir)
	if err != nil {
		l.err = err
		if errors.Is(err, ErrNoManifest) {
			l.logger.Debug("No language model bundled, using pattern rules", "dir", l.dir)
		} else {
			l.logger.Warn("Language model unavailable, using pattern rules", "dir", l.dir, "error", err)
		}
		return
	}

	m, err := New(manifest)
	if err != nil {
		l.err = err
		l.logger.Warn("Language model unavailable, using pattern rules", "dir", l.dir, "error", err)
		return
	}

	l.model = m
	l.logger.Debug("Language model loaded",
		"backend", m.Name(),
		"format_version", manifest.FormatVersion,
		"labels", len(manifest.Labels))
}

// Static wraps an already constructed model, for callers that build one in code
type Static struct {
	M Model
}

// Model returns the wrapped model
func (s Static) Model() (Model, bool) {
	return s.M, s.M != nil
}
