package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoStrings(t *testing.T) {
	i := Info{Version: "v1.0.0", GitCommit: "abc1234", BuildDate: "2026-01-01", GoVersion: "go1.24.0"}
	assert.Equal(t, "v1.0.0 (abc1234)", i.String())
	assert.Equal(t, "v1.0.0 (abc1234) built 2026-01-01 with go1.24.0", i.Full())

	i.Modified = true
	assert.Equal(t, "v1.0.0 (abc1234-dirty)", i.String())
}

func TestGetInfo(t *testing.T) {
	Version, GitCommit, BuildDate = "v1.0.0", "abc1234", "2026-01-01"
	t.Cleanup(func() { Version, GitCommit, BuildDate = "dev", "unknown", "unknown" })

	i := GetInfo()
	assert.Equal(t, "v1.0.0", i.Version)
	assert.Equal(t, "abc1234", i.GitCommit)
	assert.Equal(t, "2026-01-01", i.BuildDate)
	assert.Equal(t, runtime.Version(), i.GoVersion)
}

func TestFillFromBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-02-03T04:05:06Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	i := Info{GitCommit: "unknown", BuildDate: "unknown"}
	fillFromBuildSettings(&i, settings)
	assert.Equal(t, "0123456", i.GitCommit)
	assert.Equal(t, "2026-02-03T04:05:06Z", i.BuildDate)
	assert.True(t, i.Modified)

	// ldflags values win
	i = Info{GitCommit: "feedbee", BuildDate: "2026-01-01"}
	fillFromBuildSettings(&i, settings)
	assert.Equal(t, "feedbee", i.GitCommit)
	assert.Equal(t, "2026-01-01", i.BuildDate)
}
