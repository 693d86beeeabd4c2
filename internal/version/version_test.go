package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreVersion(t *testing.T) {
	t.Helper()
	v, r, d := Version, Revision, BuildDate
	t.Cleanup(func() {
		Version, Revision, BuildDate = v, r, d
	})
}

func TestShortAndDetailed(t *testing.T) {
	restoreVersion(t)
	Version, Revision, BuildDate = "1.0.0", "abc123", ""

	assert.Equal(t, "1.0.0 (abc123)", Short())

	detailed := Detailed()
	assert.True(t, strings.HasPrefix(detailed, AppName+" 1.0.0 (abc123; "))
	assert.Contains(t, detailed, runtime.GOOS+"/"+runtime.GOARCH)
	assert.True(t, strings.HasSuffix(detailed, ")"))

	BuildDate = "2026-01-01T00:00:00Z"
	assert.Contains(t, Detailed(), "; 2026-01-01T00:00:00Z)")
}

func TestApplyBuildInfo_PopulatesDefaults(t *testing.T) {
	restoreVersion(t)
	Version, Revision, BuildDate = devVersion, "HEAD", ""

	applyBuildInfo("v9.9.9", map[string]string{
		"vcs.revision": "abcdef1234567890",
		"vcs.modified": "true",
		"vcs.time":     "2025-12-12T01:00:00Z",
	})

	assert.Equal(t, "9.9.9", Version)
	assert.Equal(t, "abcdef123456-dirty", Revision)
	assert.Equal(t, "2025-12-12T01:00:00Z", BuildDate)
}

func TestApplyBuildInfo_DoesNotOverrideLdflags(t *testing.T) {
	restoreVersion(t)
	Version, Revision, BuildDate = "1.2.3", "deadbeef", "from-ldflags"

	applyBuildInfo("v9.9.9", map[string]string{
		"vcs.revision": "abcdef",
		"vcs.time":     "2025-12-12T01:00:00Z",
	})

	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "deadbeef", Revision)
	assert.Equal(t, "from-ldflags", BuildDate)
}

func TestApplyBuildInfo_IgnoresDevelModule(t *testing.T) {
	restoreVersion(t)
	Version, Revision, BuildDate = devVersion, "HEAD", ""

	applyBuildInfo("(devel)", map[string]string{})

	assert.Equal(t, devVersion, Version)
	assert.Equal(t, "HEAD", Revision)
	assert.Empty(t, BuildDate)
}
