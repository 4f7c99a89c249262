package metadata

import (
	"time"
)

// ScanMetadata contains information about the scan execution
type ScanMetadata struct {
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
	ScanPath      string `json:"scan_path" yaml:"scan_path"`
	SpecVersion   string `json:"spec_version" yaml:"spec_version"` // Report layout version
	DurationMs    int64  `json:"duration_ms" yaml:"duration_ms"`
	FileCount     int    `json:"file_count" yaml:"file_count"`
	SkippedCount  int    `json:"skipped_count" yaml:"skipped_count"`
	DirCount      int    `json:"dir_count" yaml:"dir_count"`
	LanguageCount int    `json:"language_count" yaml:"language_count"` // Number of distinct languages found
	Workers       int    `json:"workers" yaml:"workers"`
	Model         bool   `json:"model" yaml:"model"` // a trained model answered at least once
}

// NewScanMetadata creates a new scan metadata instance
func NewScanMetadata(scanPath string, version string) *ScanMetadata {
	return &ScanMetadata{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ScanPath:    scanPath,
		SpecVersion: version,
	}
}

// SetDuration sets the scan duration in milliseconds
func (m *ScanMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetCounts sets the classified, skipped and directory counts
func (m *ScanMetadata) SetCounts(files, skipped, dirs int) {
	m.FileCount = files
	m.SkippedCount = skipped
	m.DirCount = dirs
}

// SetLanguageCount sets the number of distinct languages
func (m *ScanMetadata) SetLanguageCount(languageCount int) {
	m.LanguageCount = languageCount
}
