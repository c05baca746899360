package main

import (
	"sort"

	"github.com/alecthomas/chroma/v2/lexers"
)

const unknownLanguage = "Other"

// LanguageStat is the combined Measurement of every file of one language.
type LanguageStat struct {
	Language    string
	Files       int
	Measurement Measurement
}

// languageForFile names the language of a file from its name alone.
func languageForFile(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return unknownLanguage
	}
	return lexer.Config().Name
}

// LanguageBreakdown groups every file under root by language. The result is
// ordered by line count, largest first, ties broken by name.
func LanguageBreakdown(root *Node) []LanguageStat {
	byLang := make(map[string]*LanguageStat)
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, f := range n.Files {
			lang := languageForFile(f.Name)
			stat, ok := byLang[lang]
			if !ok {
				stat = &LanguageStat{Language: lang}
				byLang[lang] = stat
			}
			stat.Files++
			stat.Measurement = stat.Measurement.Add(f.Measurement)
		}
		for _, d := range n.Dirs {
			visit(d)
		}
	}
	visit(root)

	stats := make([]LanguageStat, 0, len(byLang))
	for _, stat := range byLang {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if c := stats[i].Measurement.Lines.Cmp(stats[j].Measurement.Lines); c != 0 {
			return c > 0
		}
		return stats[i].Language < stats[j].Language
	})
	return stats
}
