package git

import (
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitInfo contains git repository information recorded with a scan
type GitInfo struct {
	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	IsDirty   bool   `json:"is_dirty" yaml:"is_dirty"`
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
	Root      string `json:"-" yaml:"-"`
}

// GetGitInfo retrieves git repository information for path or any of its parents.
// Returns nil if path is not inside a git repository.
func GetGitInfo(path string) *GitInfo {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil
	}

	gitInfo := &GitInfo{Root: worktree.Filesystem.Root()}

	head, err := repo.Head()
	if err == nil {
		// Use short hash (first 7 characters)
		gitInfo.Commit = head.Hash().String()[:7]

		if head.Name().IsBranch() {
			gitInfo.Branch = head.Name().Short()
		} else {
			gitInfo.Branch = "HEAD" // Detached HEAD
		}
	}

	// Get worktree status to check if dirty (expensive operation)
	status, err := worktree.Status()
	if err == nil {
		gitInfo.IsDirty = !status.IsClean()
	}

	remoteConfig, err := repo.Config()
	if err == nil {
		if origin := remoteConfig.Remotes["origin"]; origin != nil && len(origin.URLs) > 0 {
			gitInfo.RemoteURL = SanitizeRemoteURL(origin.URLs[0])
		}
	}

	return gitInfo
}

// SanitizeRemoteURL removes credentials from HTTP(S) remote URLs.
// SSH URLs and anything that does not parse are returned unchanged.
func SanitizeRemoteURL(remote string) string {
	if !strings.HasPrefix(remote, "http://") && !strings.HasPrefix(remote, "https://") {
		return remote
	}
	u, err := url.Parse(remote)
	if err != nil || u.User == nil {
		return remote
	}
	u.User = nil
	return u.String()
}
