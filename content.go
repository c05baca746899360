package main

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Category is the display classification of a file. It only affects
// colouring and never the counts.
type Category int

const (
	CategoryNormal Category = iota
	CategoryCode
	CategoryMedia
	CategoryExecutable
	CategoryText
	CategoryLicense
	CategoryMakefile
)

var categoryNames = map[Category]string{
	CategoryNormal:     "normal",
	CategoryCode:       "code",
	CategoryMedia:      "media",
	CategoryExecutable: "executable",
	CategoryText:       "text",
	CategoryLicense:    "license",
	CategoryMakefile:   "makefile",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

func newSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Extension tables, built once and never mutated.
var (
	codeExtensions = newSet(
		"c", "h", "cpp", "hpp", "cc", "cxx", "hh", "hxx", "cs", "java", "class", "jar", "kt", "kts",
		"js", "jsx", "mjs", "cjs", "ts", "tsx", "py", "pyc", "pyd", "pyo", "rb", "erb",
		"php", "phar", "go", "rs", "rlib", "swift", "dart", "scala", "lua", "r", "pl", "pm", "sql",
		"html", "htm", "xhtml", "xml", "css", "scss", "sass", "json", "yaml", "yml", "toml",
		"env", "ini", "cfg", "md", "rst", "cmake", "mk", "dockerfile", "dockerignore",
		"gitignore", "gitattributes",
	)

	mediaExtensions = newSet(
		"png", "jpg", "jpeg", "gif", "bmp", "tiff", "tif", "webp", "svg", "ico", "heic", "avif",
		"mp3", "wav", "flac", "aac", "ogg", "opus", "m4a", "wma", "aiff", "alac", "amr",
		"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v", "mpeg", "mpg", "3gp", "ogv",
	)

	executableExtensions = newSet(
		"exe", "bat", "cmd", "msi", "run", "out", "bin", "app", "jar", "sh", "bash", "zsh",
		"ps1", "psm1", "psd1",
	)

	textExtensions = newSet(
		"txt", "md", "rtf", "csv", "log", "pdf", "doc", "docx", "odt", "tex", "pages",
	)
)

func inSet(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// extension returns the text after the last dot of name's base. A name with
// no dot, or whose only dot is the leading one (".gitignore"), has none.
// Matching is case-sensitive.
func extension(name string) (string, bool) {
	base := filepath.Base(name)
	if base == ".." {
		return "", false
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

// Classify maps a file name and its permission bits to a Category.
// Rules are checked in order and the first match wins. The extension and
// execute-bit rules only apply to names that have an extension.
func Classify(name string, mode fs.FileMode) Category {
	if ext, ok := extension(name); ok {
		switch {
		case inSet(codeExtensions, ext):
			return CategoryCode
		case inSet(mediaExtensions, ext):
			return CategoryMedia
		case inSet(executableExtensions, ext),
			mode.Perm()&0o111 != 0 && !inSet(textExtensions, ext):
			return CategoryExecutable
		case inSet(textExtensions, ext):
			return CategoryText
		}
	}

	switch filepath.Base(name) {
	case "LICENSE":
		return CategoryLicense
	case "Makefile":
		return CategoryMakefile
	}
	return CategoryNormal
}

// IsVisible reports whether an entry should be printed by default, i.e. its
// name does not start with a dot.
func IsVisible(name string) bool {
	if name == "." || name == ".." {
		return true
	}
	return !strings.HasPrefix(filepath.Base(name), ".")
}
