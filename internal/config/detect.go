package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DetectRepository resolves "owner/name" from the origin remote of the git
// checkout enclosing dir.
func DetectRepository(dir string) (string, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open git repository: %w", err)
	}
	remote, err := r.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("lookup origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return repositoryFromRemoteURL(urls[0])
}

// repositoryFromRemoteURL accepts https, ssh and scp-like remote URLs.
func repositoryFromRemoteURL(raw string) (string, error) {
	var path string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse remote URL %q: %w", raw, err)
		}
		path = u.Path
	} else {
		// git@github.com:owner/name.git
		_, after, ok := strings.Cut(raw, ":")
		if !ok {
			return "", fmt.Errorf("unrecognized remote URL %q", raw)
		}
		path = after
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	segments := strings.Split(path, "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("remote URL %q does not name a repository", raw)
	}
	owner, name := segments[len(segments)-2], segments[len(segments)-1]
	if owner == "" || name == "" {
		return "", fmt.Errorf("remote URL %q does not name a repository", raw)
	}
	return owner + "/" + name, nil
}
