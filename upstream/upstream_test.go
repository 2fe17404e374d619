package upstream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dep5/errors"
)

func TestBrowsableURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"git@github.com:teranos/dep5.git", "https://github.com/teranos/dep5"},
		{"ssh://git@gitlab.com/group/project.git", "https://gitlab.com/group/project"},
		{"git://example.org/repo.git", "https://example.org/repo"},
		{"https://codeberg.org/user/tool/", "https://codeberg.org/user/tool"},
		{"https://example.com/plain", "https://example.com/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BrowsableURL(tt.in))
		})
	}
}

func TestNameFromURL(t *testing.T) {
	assert.Equal(t, "dep5", NameFromURL("https://github.com/teranos/dep5"))
	assert.Equal(t, "repo", NameFromURL("git@host:org/repo.git"))
	assert.Equal(t, "tool", NameFromURL("https://codeberg.org/user/tool/"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:example/widget.git"},
	})
	require.NoError(t, err)

	nested := filepath.Join(dir, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	info, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, "widget", info.Name)
	assert.Equal(t, "https://github.com/example/widget", info.Source)
}

func TestDiscover_NotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.True(t, errors.IsNotFoundError(err))

	dir := t.TempDir()
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = Discover(dir)
	assert.True(t, errors.IsNotFoundError(err))
}
