// Package upstream derives header fields from the git checkout that holds the
// package sources.
package upstream

import (
	"path"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/teranos/dep5/errors"
)

// Info is what can be learned about the upstream project.
type Info struct {
	Name   string
	Source string
}

// Discover opens the repository enclosing dir and reads its origin remote.
func Discover(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, errors.Wrapf(errors.ErrNotFound, "no git repository at %s", dir)
		}
		return Info{}, errors.Wrapf(err, "failed to open repository at %s", dir)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return Info{}, errors.Wrapf(errors.ErrNotFound, "repository at %s has no origin remote", dir)
		}
		return Info{}, errors.Wrap(err, "failed to read origin remote")
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return Info{}, errors.Wrapf(errors.ErrNotFound, "origin remote of %s has no URL", dir)
	}
	source := BrowsableURL(urls[0])
	return Info{Name: NameFromURL(source), Source: source}, nil
}

// BrowsableURL rewrites a clone URL into one a browser can open:
// git@host:org/repo.git and ssh://git@host/org/repo become https://host/org/repo.
func BrowsableURL(raw string) string {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "git@"):
		host, rest, ok := strings.Cut(strings.TrimPrefix(u, "git@"), ":")
		if ok {
			u = "https://" + host + "/" + rest
		}
	case strings.HasPrefix(u, "ssh://"):
		u = "https://" + strings.TrimPrefix(strings.TrimPrefix(u, "ssh://"), "git@")
	case strings.HasPrefix(u, "git://"):
		u = "https://" + strings.TrimPrefix(u, "git://")
	}
	u = strings.TrimSuffix(u, "/")
	return strings.TrimSuffix(u, ".git")
}

// NameFromURL is the last path element of a repository URL, without ".git".
func NameFromURL(u string) string {
	u = strings.TrimSuffix(strings.TrimSuffix(u, "/"), ".git")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		u = u[i+1:]
	}
	return path.Clean(u)
}
