package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dacharyc/huntdiff"
	"github.com/dacharyc/huntdiff/internal/config"
)

// printer writes command output, colorized when the terminal supports it
// or color is forced.
type printer struct {
	w       io.Writer
	color   bool
	header  lipgloss.Style
	removed lipgloss.Style
	added   lipgloss.Style
}

func newPrinter(w io.Writer, mode string) *printer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &printer{
		w:       w,
		color:   r.ColorProfile() != termenv.Ascii,
		header:  base.Foreground(lipgloss.Color("6")),
		removed: base.Foreground(lipgloss.Color("1")),
		added:   base.Foreground(lipgloss.Color("2")),
	}
}

func (p *printer) linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// normal writes diffs in normal diff format.
func (p *printer) normal(diffs []huntdiff.Difference) error {
	if !p.color {
		return huntdiff.WriteNormal(p.w, diffs)
	}

	var sb strings.Builder
	for _, d := range diffs {
		sb.WriteString(p.header.Render(d.String()))
		sb.WriteByte('\n')
		for _, l := range d.FirstLines() {
			sb.WriteString(p.removed.Render("< " + l))
			sb.WriteByte('\n')
		}
		if d.Kind == huntdiff.Change {
			sb.WriteString("---\n")
		}
		for _, l := range d.SecondLines() {
			sb.WriteString(p.added.Render("> " + l))
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type jsonDifference struct {
	Kind        string `json:"kind"`
	FirstStart  int    `json:"first_start"`
	FirstEnd    int    `json:"first_end"`
	SecondStart int    `json:"second_start"`
	SecondEnd   int    `json:"second_end"`
	FirstText   string `json:"first_text,omitempty"`
	SecondText  string `json:"second_text,omitempty"`
}

type jsonFile struct {
	Path        string           `json:"path"`
	Status      string           `json:"status"`
	Differences []jsonDifference `json:"differences,omitempty"`
}

func toJSONDifferences(diffs []huntdiff.Difference) []jsonDifference {
	out := make([]jsonDifference, 0, len(diffs))
	for _, d := range diffs {
		out = append(out, jsonDifference{
			Kind:        strings.ToLower(d.Kind.String()),
			FirstStart:  d.FirstStart,
			FirstEnd:    d.FirstEnd,
			SecondStart: d.SecondStart,
			SecondEnd:   d.SecondEnd,
			FirstText:   d.FirstText(),
			SecondText:  d.SecondText(),
		})
	}
	return out
}
