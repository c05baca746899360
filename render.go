package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const (
	nameColumnWidth     = 20
	filenameRenderLimit = 60
	depthStep           = 2
)

// TraversalNode is one printable line of a rendered tree.
type TraversalNode struct {
	Name        string
	Category    Category
	Measurement Measurement
	Depth       int
	IsDir       bool
	IsLast      bool
}

// RenderOptions controls what a TreeRenderer prints.
type RenderOptions struct {
	ShowHidden bool
	NoBytes    bool
	Tokens     bool
	NoColor    bool
}

// TreeRenderer turns a walked Node tree into indented lines. It runs after the
// walk has finished, so output order does not depend on goroutine scheduling.
type TreeRenderer struct {
	opts   RenderOptions
	styles map[Category]lipgloss.Style
	dir    lipgloss.Style
}

// NewTreeRenderer returns a renderer with the default palette.
func NewTreeRenderer(opts RenderOptions) *TreeRenderer {
	return &TreeRenderer{
		opts: opts,
		dir:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		styles: map[Category]lipgloss.Style{
			CategoryMedia:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			CategoryCode:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			CategoryExecutable: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			CategoryText:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D9327A")),
			CategoryLicense:    lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")),
			CategoryMakefile:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

// Flatten lists the printable entries of root depth-first: a directory line,
// then its files by name, then each subdirectory by name. Hidden entries and
// everything under a hidden directory are left out unless ShowHidden is set.
func (r *TreeRenderer) Flatten(root *Node) []TraversalNode {
	var out []TraversalNode
	r.flatten(&out, root, 0)
	return out
}

func (r *TreeRenderer) flatten(out *[]TraversalNode, dir *Node, depth int) {
	*out = append(*out, TraversalNode{
		Name:        dir.Name,
		Measurement: dir.Measurement,
		Depth:       depth,
		IsDir:       true,
	})

	files := r.visible(dir.Files)
	for i, f := range files {
		*out = append(*out, TraversalNode{
			Name:        f.Name,
			Category:    f.Category,
			Measurement: f.Measurement,
			Depth:       depth,
			IsLast:      i == len(files)-1,
		})
	}
	for _, d := range r.visible(dir.Dirs) {
		r.flatten(out, d, depth+depthStep)
	}
}

func (r *TreeRenderer) visible(nodes []*Node) []*Node {
	if r.opts.ShowHidden {
		return nodes
	}
	kept := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if !n.Hidden() {
			kept = append(kept, n)
		}
	}
	return kept
}

// Render writes the tree under root to w and returns root's Measurement.
func (r *TreeRenderer) Render(w io.Writer, root *Node) (Measurement, error) {
	for _, tn := range r.Flatten(root) {
		if _, err := fmt.Fprintln(w, r.FormatLine(tn)); err != nil {
			return Measurement{}, fmt.Errorf("error writing tree: %w", err)
		}
	}
	return root.Measurement, nil
}

// FormatLine renders a single TraversalNode.
func (r *TreeRenderer) FormatLine(tn TraversalNode) string {
	if tn.IsDir {
		name := r.paint(r.dir, tn.Name)
		if !strings.HasSuffix(tn.Name, "/") {
			name += "/"
		}
		if tn.Depth == 0 {
			return name
		}
		return "├" + strings.Repeat("─", tn.Depth) + name
	}

	connector := "├"
	if tn.IsLast {
		connector = "└"
	}
	var indent string
	if tn.Depth == 0 {
		indent = connector + "──"
	} else {
		indent = "│" + strings.Repeat(" ", tn.Depth+1) + connector + "──"
	}

	cell := runewidth.FillRight(truncateName(tn.Name), nameColumnWidth)
	if style, ok := r.styles[tn.Category]; ok {
		cell = r.paint(style, cell)
	}
	return indent + cell + " (" + r.stats(tn.Measurement) + ")"
}

func (r *TreeRenderer) stats(m Measurement) string {
	parts := []string{m.Lines.String() + "L"}
	if !r.opts.NoBytes {
		parts = append(parts, m.Bytes.String()+"B")
	}
	if r.opts.Tokens {
		parts = append(parts, m.Tokens.String()+"T")
	}
	return strings.Join(parts, ", ")
}

func (r *TreeRenderer) paint(style lipgloss.Style, s string) string {
	if r.opts.NoColor {
		return s
	}
	return style.Render(s)
}

// truncateName cuts names wider than the render limit and marks the cut.
func truncateName(name string) string {
	if runewidth.StringWidth(name) <= filenameRenderLimit {
		return name
	}
	return runewidth.Truncate(name, filenameRenderLimit, "") + "..."
}
