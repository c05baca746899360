package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// fetchGitignore returns the lines of the .gitignore directly under dir with
// any leading slash removed. A missing file yields no lines and no error.
func fetchGitignore(fsys afero.Fs, dir string) ([]string, error) {
	path := filepath.Join(dir, ".gitignore")
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSuffix(line, "\r")
		patterns = append(patterns, strings.TrimPrefix(line, "/"))
	}
	return patterns, nil
}

// ignoreList matches the immediate entries of one directory against the
// patterns of that directory's own .gitignore. Ancestor files are not merged.
// A line excludes the entry named exactly like it, even when gitignore syntax
// would read it as a comment or negation, and glob lines match as in git.
type ignoreList struct {
	dir     string
	names   map[string]struct{}
	matcher gitignore.IgnoreMatcher
}

// loadIgnoreList builds the matcher for dir. It returns nil when dir has no
// .gitignore or the file has no usable patterns.
func loadIgnoreList(fsys afero.Fs, dir string) (*ignoreList, error) {
	patterns, err := fetchGitignore(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return &ignoreList{
		dir:     dir,
		names:   newSet(patterns...),
		matcher: gitignore.NewGitIgnoreFromReader(dir, strings.NewReader(strings.Join(patterns, "\n"))),
	}, nil
}

// Ignored reports whether the entry called name inside the list's directory
// is excluded. A nil list ignores nothing.
func (l *ignoreList) Ignored(name string, isDir bool) bool {
	if l == nil {
		return false
	}
	if _, ok := l.names[name]; ok {
		return true
	}
	return l.matcher.Match(filepath.Join(l.dir, name), isDir)
}
