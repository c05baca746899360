package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForFile(t *testing.T) {
	assert.Equal(t, "Go", languageForFile("main.go"))
	assert.Equal(t, "Rust", languageForFile("lib.rs"))
	assert.Equal(t, unknownLanguage, languageForFile("data.nosuchlanguage"))
}

func TestLanguageBreakdown(t *testing.T) {
	tree := walkFixture(t, map[string]string{
		"/proj/main.go":         "package main\n\nfunc main() {}\n",
		"/proj/pkg/util.go":     "package pkg\n",
		"/proj/src/lib.rs":      "fn a() {}\nfn b() {}\n",
		"/proj/blob.zzzunknown": "?\n",
	})

	stats := LanguageBreakdown(tree)
	require.Len(t, stats, 3)

	assert.Equal(t, "Go", stats[0].Language)
	assert.Equal(t, 2, stats[0].Files)
	assert.Equal(t, U128(4), stats[0].Measurement.Lines)

	assert.Equal(t, "Rust", stats[1].Language)
	assert.Equal(t, U128(2), stats[1].Measurement.Lines)

	assert.Equal(t, unknownLanguage, stats[2].Language)

	var sum Measurement
	for _, s := range stats {
		sum = sum.Add(s.Measurement)
	}
	assert.Equal(t, tree.Measurement, sum)
}
