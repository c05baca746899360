package main

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		mode fs.FileMode
		want Category
	}{
		{"main.go", 0o644, CategoryCode},
		{"lib.RS", 0o644, CategoryNormal}, // extensions are case-sensitive
		{"README.md", 0o644, CategoryCode}, // md is in both code and text; code wins
		{"app.jar", 0o755, CategoryCode},   // jar is in both code and executable; code wins
		{"photo.png", 0o644, CategoryMedia},
		{"clip.mp4", 0o755, CategoryMedia},
		{"build.sh", 0o644, CategoryExecutable},
		{"setup.exe", 0o644, CategoryExecutable},
		{"lc", 0o755, CategoryNormal}, // no extension, mode is not consulted
		{"configure", 0o755, CategoryNormal},
		{"data.bin2", 0o711, CategoryExecutable},
		{"notes.txt", 0o755, CategoryText},
		{"notes.txt", 0o644, CategoryText},
		{"server.log", 0o644, CategoryText},
		{"LICENSE", 0o644, CategoryLicense},
		{"LICENSE", 0o755, CategoryLicense},
		{"Makefile", 0o644, CategoryMakefile},
		{"Makefile", 0o775, CategoryMakefile},
		{".gitignore", 0o644, CategoryNormal},
		{"src/.env", 0o755, CategoryNormal},
		{"archive.tar.gz", 0o755, CategoryExecutable},
		{"license", 0o644, CategoryNormal},
		{"data.xyz", 0o644, CategoryNormal},
		{"CHANGELOG", 0o600, CategoryNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, tt.mode))
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, CategoryMedia, Classify("a.gif", 0o755))
		assert.Equal(t, CategoryExecutable, Classify("tool.py3", 0o100))
	}
}

func TestClassify_ExecuteBitOnly(t *testing.T) {
	// Any of user, group or other execute bits counts.
	for _, mode := range []fs.FileMode{0o744, 0o654, 0o645} {
		assert.Equal(t, CategoryExecutable, Classify("script.x", mode), mode.String())
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name   string
		ext    string
		hasExt bool
	}{
		{"main.go", "go", true},
		{"dir/archive.tar.gz", "gz", true},
		{"lib.RS", "RS", true},
		{"trailing.", "", true},
		{"Makefile", "", false},
		{".gitignore", "", false},
		{"..", "", false},
	}
	for _, tt := range tests {
		ext, ok := extension(tt.name)
		assert.Equal(t, tt.hasExt, ok, tt.name)
		assert.Equal(t, tt.ext, ext, tt.name)
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "code", CategoryCode.String())
	assert.Equal(t, "normal", CategoryNormal.String())
	assert.Equal(t, "unknown", Category(99).String())
}

func TestIsVisible(t *testing.T) {
	assert.True(t, IsVisible("main.go"))
	assert.True(t, IsVisible("."))
	assert.True(t, IsVisible(".."))
	assert.False(t, IsVisible(".git"))
	assert.False(t, IsVisible(".env"))
	assert.False(t, IsVisible("/repo/.github"))
}
