package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input string looks like a Git repository URL.
// Prioritizes .git suffix or git@ prefix.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a new temporary directory and returns
// its path. The caller removes the directory once counting is done.
func cloneGitRepo(url string, progress io.Writer, log *slog.Logger) (string, error) {
	tempDir, err := os.MkdirTemp("", "lc-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	log.Info("cloning git repository", "url", url, "dir", tempDir)
	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}
	return tempDir, nil
}
