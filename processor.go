package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/semaphore"
)

// WalkOptions configures a Walker.
type WalkOptions struct {
	// Fs is the filesystem walked. Nil means the OS filesystem.
	Fs afero.Fs
	// Threads caps the goroutines working on subdirectories at once.
	// Zero means GOMAXPROCS; one walks sequentially.
	Threads int
	// Gitignore drops entries listed in the .gitignore of their own directory.
	Gitignore bool
	// Tokenizer, when set, fills Measurement.Tokens.
	Tokenizer Tokenizer
	Logger    *slog.Logger
}

// Walker aggregates line, byte and token counts over a directory tree.
// Subdirectories are handed to new goroutines while the semaphore has room and
// are walked inline otherwise, so fan-out stays bounded and a parent waiting
// on its children never starves them of a slot.
type Walker struct {
	fs        afero.Fs
	sem       *semaphore.Weighted
	gitignore bool
	tokenizer Tokenizer
	log       *slog.Logger
}

// NewWalker returns a Walker for opts.
func NewWalker(opts WalkOptions) *Walker {
	w := &Walker{
		fs:        opts.Fs,
		gitignore: opts.Gitignore,
		tokenizer: opts.Tokenizer,
		log:       opts.Logger,
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	if w.log == nil {
		w.log = slog.Default()
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > 1 {
		// The calling goroutine is one of the workers.
		w.sem = semaphore.NewWeighted(int64(threads - 1))
	}
	return w
}

// Aggregate returns the total Measurement of every file below root. Only a
// failure to list root itself is returned; unreadable descendants are logged
// and left out of the total.
func (w *Walker) Aggregate(root string) (Measurement, error) {
	node, err := w.walkRoot(root, false)
	if err != nil {
		return Measurement{}, err
	}
	return node.Measurement, nil
}

// Walk is Aggregate but also returns the full node tree, with children sorted
// files first and then directories, each group by name.
func (w *Walker) Walk(root string) (*Node, error) {
	return w.walkRoot(root, true)
}

func (w *Walker) walkRoot(root string, keep bool) (*Node, error) {
	root = filepath.Clean(root)
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return w.walkDir(root, info, keep)
}

type entry struct {
	name string
	path string
	info fs.FileInfo
}

// walkDir lists dir, measures its files and recurses into its subdirectories.
// The returned node's Measurement is final: every child has been joined.
func (w *Walker) walkDir(dir string, info fs.FileInfo, keep bool) (*Node, error) {
	files, dirs, err := w.list(dir)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Name:  filepath.Base(dir),
		Path:  dir,
		IsDir: true,
		Mode:  info.Mode(),
	}

	var (
		mu    sync.Mutex
		total Measurement
		wg    sync.WaitGroup
	)

	// Subdirectories go first so their goroutines overlap with the file reads below.
	children := make([]*Node, len(dirs))
	for i, d := range dirs {
		visit := func() {
			child, err := w.walkDir(d.path, d.info, keep)
			if err != nil {
				w.log.Warn("skipping unreadable directory", "path", d.path, "error", err)
				return
			}
			mu.Lock()
			total = total.Add(child.Measurement)
			if keep {
				children[i] = child
			}
			mu.Unlock()
		}

		if w.sem != nil && w.sem.TryAcquire(1) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer w.sem.Release(1)
				visit()
			}()
			continue
		}
		visit()
	}

	for _, f := range files {
		m, err := w.measureFile(f.path)
		if err != nil {
			w.log.Warn("skipping unreadable file", "path", f.path, "error", err)
			continue
		}
		mu.Lock()
		total = total.Add(m)
		mu.Unlock()

		if keep {
			node.Files = append(node.Files, &Node{
				Name:        f.name,
				Path:        f.path,
				Mode:        f.info.Mode(),
				Category:    Classify(f.name, f.info.Mode()),
				Measurement: m,
			})
		}
	}

	wg.Wait()

	node.Measurement = total
	if keep {
		for _, child := range children {
			if child != nil {
				node.Dirs = append(node.Dirs, child)
			}
		}
	}
	return node, nil
}

// list reads dir and splits its entries into files and directories, both
// sorted by name. Symlinks are classified by what they point to; anything that
// is neither a regular file nor a directory is dropped.
func (w *Walker) list(dir string) (files, dirs []entry, err error) {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var ignore *ignoreList
	if w.gitignore {
		ignore, err = loadIgnoreList(w.fs, dir)
		if err != nil {
			w.log.Warn("could not read .gitignore", "dir", dir, "error", err)
		}
	}

	for _, info := range infos {
		name := info.Name()
		path := filepath.Join(dir, name)

		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := w.fs.Stat(path)
			if err != nil {
				w.log.Warn("skipping unresolvable link", "path", path, "error", err)
				continue
			}
			info = target
		}

		switch {
		case info.Mode().IsRegular():
			if ignore.Ignored(name, false) {
				w.log.Debug("ignored by .gitignore", "path", path)
				continue
			}
			files = append(files, entry{name: name, path: path, info: info})
		case info.IsDir():
			if ignore.Ignored(name, true) {
				w.log.Debug("ignored by .gitignore", "path", path)
				continue
			}
			dirs = append(dirs, entry{name: name, path: path, info: info})
		}
	}

	byName := func(s []entry) func(i, j int) bool {
		return func(i, j int) bool { return s[i].name < s[j].name }
	}
	sort.Slice(files, byName(files))
	sort.Slice(dirs, byName(dirs))
	return files, dirs, nil
}

// measureFile reads path once and counts it.
func (w *Walker) measureFile(path string) (Measurement, error) {
	content, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return Measurement{}, fmt.Errorf("error reading file %s: %w", path, err)
	}

	m := Measurement{
		Lines: U128(countLines(content)),
		Bytes: U128(uint64(len(content))),
	}
	if w.tokenizer != nil && len(content) > 0 {
		text := strings.ToValidUTF8(string(content), "\uFFFD")
		m.Tokens = U128(uint64(w.tokenizer.CountTokens(text)))
	}
	return m, nil
}

// countLines counts newline-terminated segments plus a trailing segment that
// has no terminator. Invalid UTF-8 never contains a newline byte, so counting
// on the raw bytes matches counting on the lossily decoded text.
func countLines(content []byte) uint64 {
	if len(content) == 0 {
		return 0
	}
	n := uint64(bytes.Count(content, []byte{'\n'}))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
