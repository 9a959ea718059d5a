package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideo_DisplayTitle(t *testing.T) {
	assert.Equal(t, "ABC-123 Title", Video{Num: "ABC-123", Title: "Title"}.DisplayTitle())
	assert.Equal(t, "ABC-123", Video{Num: "ABC-123"}.DisplayTitle())
	assert.Equal(t, "Title", Video{Title: "Title"}.DisplayTitle())
}

func TestVideo_FormattedSize(t *testing.T) {
	assert.Equal(t, "", Video{}.FormattedSize())
	assert.Equal(t, "512 MB", Video{Size: 512 * 1024 * 1024}.FormattedSize())
	assert.Equal(t, "1.5 GB", Video{Size: 3 * 1024 * 1024 * 1024 / 2}.FormattedSize())
}

func TestDownload_PercentClamps(t *testing.T) {
	assert.Equal(t, 0, Download{Progress: -0.2}.Percent())
	assert.Equal(t, 42, Download{Progress: 0.42}.Percent())
	assert.Equal(t, 100, Download{Progress: 1.3}.Percent())
}

func TestVersionInfo_UpdateAvailable(t *testing.T) {
	assert.True(t, VersionInfo{Current: "1.0.0", Latest: "1.1.0"}.UpdateAvailable())
	assert.False(t, VersionInfo{Current: "1.1.0", Latest: "1.1.0"}.UpdateAvailable())
	assert.False(t, VersionInfo{Current: "1.1.0"}.UpdateAvailable())
}
