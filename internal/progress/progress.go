package progress

import (
	"os"
	"sync"
	"time"
)

// Progress is the centralized verbose system. It is safe for concurrent use
// and serializes events to its handler.
type Progress struct {
	enabled bool
	handler Handler
	mu      sync.Mutex
}

// New creates a new progress reporter
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{enabled: enabled, handler: handler}
}

// IsEnabled returns whether progress reporting is enabled
func (p *Progress) IsEnabled() bool {
	return p != nil && p.enabled
}

// Report sends an event to the handler
func (p *Progress) Report(event Event) {
	if !p.IsEnabled() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler.Handle(event)
}

// ScanStart reports the start of a scan
func (p *Progress) ScanStart(path string, excludes string) {
	p.Report(Event{Type: EventScanStart, Path: path, Info: excludes})
}

// ScanComplete reports the end of a scan
func (p *Progress) ScanComplete(files, dirs int, duration time.Duration) {
	p.Report(Event{Type: EventScanComplete, FileCount: files, DirCount: dirs, Duration: duration})
}

// EnterDirectory reports entering a directory
func (p *Progress) EnterDirectory(path string) {
	p.Report(Event{Type: EventEnterDirectory, Path: path})
}

// FileClassified reports the language of a file
func (p *Progress) FileClassified(path, language, stage string) {
	p.Report(Event{Type: EventFileClassified, Path: path, Language: language, Stage: stage})
}

// Skipped reports a skipped file or directory
func (p *Progress) Skipped(path, reason string) {
	p.Report(Event{Type: EventSkipped, Path: path, Reason: reason})
}

// Info reports a general message
func (p *Progress) Info(message string) {
	p.Report(Event{Type: EventInfo, Info: message})
}
