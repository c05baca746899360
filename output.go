package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const boxWidth = 51

// Report is the summary printed at the end of a run.
type Report struct {
	Root        string
	Measurement Measurement
	HumanBytes  string
	Elapsed     time.Duration
	Languages   []LanguageStat

	noBytes bool
	tokens  bool
}

// reportDocument is the YAML shape of a Report. Counts that were not
// requested are nil and left out; a requested count of zero is kept.
type reportDocument struct {
	Root       string             `yaml:"root"`
	Lines      Uint128            `yaml:"lines"`
	Bytes      *Uint128           `yaml:"bytes,omitempty"`
	Tokens     *Uint128           `yaml:"tokens,omitempty"`
	HumanBytes string             `yaml:"human_bytes,omitempty"`
	Elapsed    time.Duration      `yaml:"elapsed"`
	Languages  []languageDocument `yaml:"languages,omitempty"`
}

type languageDocument struct {
	Language string   `yaml:"language"`
	Files    int      `yaml:"files"`
	Lines    Uint128  `yaml:"lines"`
	Bytes    *Uint128 `yaml:"bytes,omitempty"`
	Tokens   *Uint128 `yaml:"tokens,omitempty"`
}

// formatByteCount renders a byte total in SI units, e.g. "12 MB".
func formatByteCount(n Uint128) string {
	return humanize.BigBytes(n.Big())
}

func newReport(root string, m Measurement, langs []LanguageStat, elapsed time.Duration, cfg Config) Report {
	r := Report{
		Root:        root,
		Measurement: m,
		Elapsed:     elapsed,
		Languages:   langs,
		noBytes:     cfg.NoBytes,
		tokens:      cfg.Tokens,
	}
	if !cfg.NoBytes {
		r.HumanBytes = formatByteCount(m.Bytes)
	}
	return r
}

// optional returns a pointer to u when the count was requested.
func optional(u Uint128, requested bool) *Uint128 {
	if !requested {
		return nil
	}
	return &u
}

func (r Report) document() reportDocument {
	doc := reportDocument{
		Root:       r.Root,
		Lines:      r.Measurement.Lines,
		Bytes:      optional(r.Measurement.Bytes, !r.noBytes),
		Tokens:     optional(r.Measurement.Tokens, r.tokens),
		HumanBytes: r.HumanBytes,
		Elapsed:    r.Elapsed,
	}
	for _, stat := range r.Languages {
		doc.Languages = append(doc.Languages, languageDocument{
			Language: stat.Language,
			Files:    stat.Files,
			Lines:    stat.Measurement.Lines,
			Bytes:    optional(stat.Measurement.Bytes, !r.noBytes),
			Tokens:   optional(stat.Measurement.Tokens, r.tokens),
		})
	}
	return doc
}

// Format renders the report in the named format, "box" or "yaml".
func (r Report) Format(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "box":
		return r.box(), nil
	case "yaml":
		out, err := yaml.Marshal(r.document())
		if err != nil {
			return "", fmt.Errorf("error encoding report: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use 'box' or 'yaml'", format)
	}
}

func (r Report) box() string {
	rows := []string{fmt.Sprintf("Lines       :%s", r.Measurement.Lines)}
	if !r.noBytes {
		rows = append(rows, fmt.Sprintf("Bytes       :%s", r.HumanBytes))
	}
	if r.tokens {
		rows = append(rows, fmt.Sprintf("Tokens      :%s", r.Measurement.Tokens))
	}
	rows = append(rows, fmt.Sprintf("Time Taken  :%.5f Seconds", r.Elapsed.Seconds()))

	var b strings.Builder
	b.WriteString("╭" + strings.Repeat("─", boxWidth) + "╮\n")
	for _, row := range rows {
		b.WriteString("│" + runewidth.FillRight(row, boxWidth) + "│\n")
	}
	b.WriteString("╰" + strings.Repeat("─", boxWidth) + "╯\n")

	if len(r.Languages) > 0 {
		b.WriteString(r.languageTable())
	}
	return b.String()
}

func (r Report) languageTable() string {
	var b strings.Builder
	header := fmt.Sprintf("%-20s %8s %14s", "Language", "Files", "Lines")
	if !r.noBytes {
		header += fmt.Sprintf(" %12s", "Bytes")
	}
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("─", runewidth.StringWidth(header)) + "\n")
	for _, stat := range r.Languages {
		row := fmt.Sprintf("%-20s %8d %14s", runewidth.Truncate(stat.Language, 20, "…"), stat.Files, stat.Measurement.Lines)
		if !r.noBytes {
			row += fmt.Sprintf(" %12s", formatByteCount(stat.Measurement.Bytes))
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

// copyToClipboard places text on the system clipboard.
func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	return nil
}
