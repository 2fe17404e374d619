package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	info := Info{CommitHash: "0123456789abcdef", BuildTime: "2024-05-01", Version: "dev"}
	assert.Equal(t, "dep5 dev (commit 0123456789abcdef, built 2024-05-01)", info.String())
	assert.Equal(t, "0123456", info.Short())

	info.Version = "v1.2.0"
	assert.Equal(t, "dep5 v1.2.0 (commit 0123456789abcdef, built 2024-05-01)", info.String())

	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, CommitHash, info.CommitHash)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
