package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"
)

// errSelectionAborted is returned when the user leaves the picker without
// choosing a directory.
var errSelectionAborted = errors.New("interactive selection aborted")

// directoryCandidates lists start and every visible directory below it.
func directoryCandidates(fsys afero.Fs, start string) ([]string, error) {
	candidates := []string{}
	err := afero.Walk(fsys, start, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			// Unreadable directories just don't show up in the picker.
			if info != nil && info.IsDir() && path != start {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != start && !IsVisible(info.Name()) {
			return filepath.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user fuzzy-pick the directory to count.
func runInteractiveFinder(fsys afero.Fs, start string) (string, error) {
	candidates, err := directoryCandidates(fsys, start)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to count. Press Enter to confirm."
			}
			infos, err := afero.ReadDir(fsys, candidates[i])
			if err != nil {
				return fmt.Sprintf("Path: %s\nError listing directory: %v", candidates[i], err)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(infos))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errSelectionAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
