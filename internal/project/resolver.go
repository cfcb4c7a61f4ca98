// Package project resolves the name of the "current" project for a working
// directory. The core stores treat the result as an opaque lookup: a name or
// nothing, never an error.
package project

import (
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Resolve derives the project name for dir. Version-control metadata wins:
// the basename of the origin remote URL, then the repository worktree
// directory. Outside a repository the directory's own name is used. Every
// failure yields "".
func Resolve(dir string) string {
	if dir == "" {
		return ""
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		if name := remoteName(repo); name != "" {
			return name
		}
		if wt, err := repo.Worktree(); err == nil {
			if name := filepath.Base(wt.Filesystem.Root()); name != "" && name != "." && name != string(filepath.Separator) {
				return name
			}
		}
	}

	if name := filepath.Base(filepath.Clean(dir)); name != "." && name != string(filepath.Separator) {
		return name
	}
	return ""
}

// remoteName extracts a project name from the origin remote URL, handling
// both URL-style (https://host/owner/name.git) and scp-style
// (git@host:owner/name.git) forms.
func remoteName(repo *git.Repository) string {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}

	url := strings.TrimSuffix(strings.TrimRight(urls[0], "/"), ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSpace(url)
}
