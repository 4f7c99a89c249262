package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScanMetadata(t *testing.T) {
	m := NewScanMetadata("/snippets", "1.0")

	assert.Equal(t, "/snippets", m.ScanPath)
	assert.Equal(t, "1.0", m.SpecVersion)
	_, err := time.Parse(time.RFC3339, m.Timestamp)
	require.NoError(t, err)
}

func TestScanMetadata_Setters(t *testing.T) {
	m := NewScanMetadata("/snippets", "1.0")
	m.SetDuration(1500 * time.Millisecond)
	m.SetCounts(10, 2, 3)
	m.SetLanguageCount(4)

	assert.Equal(t, int64(1500), m.DurationMs)
	assert.Equal(t, 10, m.FileCount)
	assert.Equal(t, 2, m.SkippedCount)
	assert.Equal(t, 3, m.DirCount)
	assert.Equal(t, 4, m.LanguageCount)
}
