package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	dev := Info{CommitHash: "0123456789abcdef", BuildTime: "now", Version: "dev"}
	assert.Equal(t, "rsbind dev (commit 0123456789abcdef, built now)", dev.String())
	assert.Equal(t, "0123456", dev.Short())
	assert.Equal(t, "rsbind dev+0123456", dev.Generator())

	tagged := Info{CommitHash: "abc", BuildTime: "now", Version: "1.2.0"}
	assert.Equal(t, "rsbind 1.2.0 (commit abc, built now)", tagged.String())
	assert.Equal(t, "abc", tagged.Short())
	assert.Equal(t, "rsbind 1.2.0", tagged.Generator())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestReleased(t *testing.T) {
	assert.False(t, Info{Version: "dev"}.Released())
	assert.True(t, Info{Version: "0.1.0"}.Released())
}
