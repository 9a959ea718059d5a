package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDownloadStatus(t *testing.T) {
	tests := []struct {
		in       string
		expected DownloadStatus
	}{
		{"downloaded", StatusDownloaded},
		{"downloading", StatusDownloading},
		{"none", StatusNone},
		{" Downloaded ", StatusDownloaded},
		{"DOWNLOADING", StatusDownloading},
		{"", StatusNone},
		{"paused", StatusNone},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ParseDownloadStatus(test.in), "input %q", test.in)
	}
}

func TestDownloadStatus_IsActive(t *testing.T) {
	assert.True(t, StatusDownloading.IsActive())
	assert.False(t, StatusDownloaded.IsActive())
	assert.False(t, StatusNone.IsActive())
}

func TestStatusMap_GetDefaultsToNone(t *testing.T) {
	m := StatusMap{"ABC-123": StatusDownloaded}

	assert.Equal(t, StatusDownloaded, m.Get("ABC-123"))
	assert.Equal(t, StatusNone, m.Get("DEF-456"))

	var nilMap StatusMap
	assert.Equal(t, StatusNone, nilMap.Get("ABC-123"))
}

func TestStatusMap_CloneIsIndependent(t *testing.T) {
	m := StatusMap{"ABC-123": StatusDownloading}
	c := m.Clone()
	c["ABC-123"] = StatusDownloaded

	assert.Equal(t, StatusDownloading, m["ABC-123"])
	assert.Equal(t, StatusDownloaded, c["ABC-123"])
}
