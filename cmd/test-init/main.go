package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/petrarca/snippet-lang/internal/detector"
	"github.com/petrarca/snippet-lang/internal/model"
	"github.com/petrarca/snippet-lang/internal/rules"
	"github.com/petrarca/snippet-lang/internal/validation"
)

func main() {
	modelDir := flag.String("model-dir", "", "Directory containing language-classifier.yaml")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	start := time.Now()

	t1 := time.Now()
	schemas, err := validation.ListAvailableSchemas()
	if err != nil {
		panic(err)
	}
	fmt.Printf("ListAvailableSchemas: %v (%d schemas)\n", time.Since(t1), len(schemas))

	t2 := time.Now()
	loadedRules, err := rules.LoadEmbeddedRules()
	if err != nil {
		panic(err)
	}
	fmt.Printf("LoadEmbeddedRules: %v (%d rules)\n", time.Since(t2), len(loadedRules))

	t3 := time.Now()
	loader := model.NewLoader(*modelDir, logger)
	_, available := loader.Model()
	fmt.Printf("LoadModel: %v (available: %v)\n", time.Since(t3), available)

	t4 := time.Now()
	d, err := detector.New(loadedRules, detector.WithModel(loader), detector.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	fmt.Printf("NewDetector: %v\n", time.Since(t4))

	t5 := time.Now()
	lang := d.DetectLanguage("package main\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n")
	fmt.Printf("FirstDetect: %v (%s)\n", time.Since(t5), lang)

	fmt.Printf("\nTotal init: %v\n", time.Since(start))
}
