package cmd

import (
	"log/slog"
	"time"

	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/petrarca/snippet-lang/internal/model"
	"github.com/petrarca/snippet-lang/internal/rules"
)

// newDetector loads the rules (embedded, overridden by --rules-dir) and wires the
// optional model from --model-dir
func newDetector(logger *slog.Logger) (*detector.Detector, error) {
	tInit := time.Now()
	loaded, err := rules.Load(settings.RulesDir)
	if err != nil {
		return nil, err
	}

	opts := []detector.Option{detector.WithLogger(logger)}
	if settings.ModelDir != "" {
		opts = append(opts, detector.WithModel(model.NewLoader(settings.ModelDir, logger)))
	}

	d, err := detector.New(loaded, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Detector initialization completed", "rules", len(loaded), "duration", time.Since(tInit))
	return d, nil
}
